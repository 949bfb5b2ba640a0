package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/pathless/config"
	"github.com/katalvlaran/pathless/scenario"
)

const shutdownTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Server exposes per-connection pathfinding sessions over websockets.
type Server struct {
	grid   config.GridConfig
	addr   string
	store  *scenario.Store
	logger *slog.Logger
	hub    *Hub
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore makes stored scenarios loadable by name.
func WithStore(st *scenario.Store) Option {
	return func(s *Server) { s.store = st }
}

// New creates a Server from cfg.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		grid:   cfg.Grid,
		addr:   cfg.Server.Addr(),
		logger: slog.New(slog.DiscardHandler),
		hub:    NewHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Hub returns the client registry.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP routes: /ws, /scenarios and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/scenarios", s.serveScenarios)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ip := extractIP(r)
	if !s.hub.CanAccept(ip) {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	session, err := NewSession(s.grid.Width, s.grid.Height, s.logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", ip, "err", err)
		return
	}

	client := newClient(s, conn, session, ip)
	if !s.hub.Add(client) {
		conn.Close()
		return
	}
	client.logger.Info("client connected")

	width, height := session.Size()
	client.SendJSON(MsgWelcome, WelcomeMsg{
		ID:       session.ID,
		Width:    width,
		Height:   height,
		CellSize: s.grid.CellSize,
	})
	client.SendSnapshot()

	go client.WritePump()
	go client.ReadPump(context.WithoutCancel(r.Context()))
}

// scenarioEntry is one row of the /scenarios listing.
type scenarioEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Builtin     bool   `json:"builtin"`
}

func (s *Server) serveScenarios(w http.ResponseWriter, r *http.Request) {
	var out []scenarioEntry
	for _, sc := range scenario.Builtins() {
		out = append(out, scenarioEntry{Name: sc.Name, Description: sc.Description, Builtin: true})
	}
	if s.store != nil {
		stored, err := s.store.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, sum := range stored {
			out = append(out, scenarioEntry{Name: sum.Name, Description: sum.Description})
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down the HTTP
// server and closes every websocket. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.hub.Close()
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down", "clients", s.hub.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := httpSrv.Shutdown(shutdownCtx)
	s.hub.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
