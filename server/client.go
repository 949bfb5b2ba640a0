package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/pathless/astar"
	"github.com/katalvlaran/pathless/scenario"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 64
	maxMessagesPerSec = 50
)

// frame is one queued outgoing message.
type frame struct {
	binary bool
	data   []byte
}

// Client is one websocket connection and its session.
type Client struct {
	srv        *Server
	conn       *websocket.Conn
	send       chan frame
	session    *Session
	remoteAddr string
	logger     *slog.Logger

	msgCount   int
	msgResetAt time.Time
}

func newClient(srv *Server, conn *websocket.Conn, session *Session, remoteAddr string) *Client {
	return &Client{
		srv:        srv,
		conn:       conn,
		send:       make(chan frame, sendBufSize),
		session:    session,
		remoteAddr: remoteAddr,
		logger:     srv.logger.With("session", session.ID, "remote", remoteAddr),
	}
}

// ReadPump reads and handles messages until the connection fails.
// Every reply is queued from this goroutine only.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.srv.hub.Remove(c)
		c.conn.Close()
		c.logger.Info("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "err", err)
			}
			return
		}

		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.logger.Warn("rate limit exceeded, disconnecting")
			return
		}

		c.handleMessage(ctx, message)
	}
}

// WritePump drains the send queue and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			kind := websocket.TextMessage
			if f.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, f.data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON queues an enveloped JSON message.
func (c *Client) SendJSON(t string, data any) {
	raw, err := json.Marshal(Envelope{T: t, Data: data})
	if err != nil {
		c.logger.Error("marshal failed", "type", t, "err", err)
		return
	}
	c.enqueue(frame{data: raw})
}

// SendSnapshot queues the session grid as a msgpack binary frame.
func (c *Client) SendSnapshot() {
	raw, err := msgpack.Marshal(c.session.Snapshot())
	if err != nil {
		c.logger.Error("snapshot encode failed", "err", err)
		return
	}
	c.enqueue(frame{binary: true, data: raw})
}

func (c *Client) enqueue(f frame) {
	select {
	case c.send <- f:
	default:
		// Client too slow, drop message
		c.logger.Warn("send queue full, dropping message")
	}
}

func (c *Client) sendError(err error) {
	c.SendJSON(MsgError, ErrorMsg{Msg: err.Error()})
}

// handleMessage routes one incoming envelope.
func (c *Client) handleMessage(ctx context.Context, raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendError(err)
		return
	}

	switch env.T {
	case MsgSetCell:
		c.handleSetCell(env.D)
	case MsgClear:
		c.handleClear(env.D)
	case MsgFindPath:
		c.handleFindPath(env.D)
	case MsgLoadScenario:
		c.handleLoadScenario(ctx, env.D)
	case MsgState:
		c.SendSnapshot()
	default:
		c.SendJSON(MsgError, ErrorMsg{Msg: "unknown message type " + env.T})
	}
}

// decode unmarshals an optional payload; an empty payload leaves v zero.
func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (c *Client) handleSetCell(data json.RawMessage) {
	var msg SetCellMsg
	if err := decode(data, &msg); err != nil {
		c.sendError(err)
		return
	}
	if err := c.session.SetCell(msg.X, msg.Y, msg.Kind); err != nil {
		c.sendError(err)
		return
	}
	c.SendJSON(MsgCellSet, msg)
	c.SendSnapshot()
}

func (c *Client) handleClear(data json.RawMessage) {
	var msg ClearMsg
	if err := decode(data, &msg); err != nil {
		c.sendError(err)
		return
	}
	if err := c.session.Clear(msg.What); err != nil {
		c.sendError(err)
		return
	}
	c.SendJSON(MsgCleared, msg)
	c.SendSnapshot()
}

func (c *Client) handleFindPath(data json.RawMessage) {
	var msg FindPathMsg
	if err := decode(data, &msg); err != nil {
		c.sendError(err)
		return
	}
	found, err := c.session.FindPath(msg.Optimize)
	switch {
	case err == nil:
		c.SendJSON(MsgPathFound, found)
	case errors.Is(err, astar.ErrNoPath),
		errors.Is(err, astar.ErrInvalidEndpoint),
		errors.Is(err, astar.ErrEndpointsUnset):
		c.SendJSON(MsgNoPath, NoPathMsg{Reason: err.Error()})
	default:
		c.sendError(err)
		return
	}
	c.SendSnapshot()
}

func (c *Client) handleLoadScenario(ctx context.Context, data json.RawMessage) {
	var msg LoadScenarioMsg
	if err := decode(data, &msg); err != nil {
		c.sendError(err)
		return
	}
	sc, err := scenario.Resolve(ctx, c.srv.store, msg.Name)
	if err != nil {
		c.sendError(err)
		return
	}
	if err := c.session.Load(sc); err != nil {
		c.sendError(err)
		return
	}
	c.SendJSON(MsgLoaded, msg)
	c.SendSnapshot()
}
