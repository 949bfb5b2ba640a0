package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/pathless/config"
	"github.com/katalvlaran/pathless/grid"
	"github.com/katalvlaran/pathless/scenario"
	"github.com/katalvlaran/pathless/server"
)

// ---------- helpers ----------

type testServer struct {
	srv  *server.Server
	addr string
	stop func() error
}

// startServer serves on a random local port until the test ends.
func startServer(t *testing.T, opts ...server.Option) *testServer {
	t.Helper()
	srv, err := server.New(config.DefaultConfig(), opts...)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	var stopped bool
	stop := func() error {
		if stopped {
			return nil
		}
		stopped = true
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(10 * time.Second):
			t.Fatal("server did not stop")
			return nil
		}
	}
	t.Cleanup(func() { stop() })

	return &testServer{srv: srv, addr: ln.Addr().String(), stop: stop}
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ts.addr+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	raw, err := json.Marshal(server.Envelope{T: msgType, Data: data})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
}

// readJSON reads one text frame, checks its type and decodes the payload.
func readJSON(t *testing.T, conn *websocket.Conn, wantType string, v any) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, kind, "expected a JSON frame")

	var env server.InEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, wantType, env.T, "payload %s", env.D)
	if v != nil {
		require.NoError(t, json.Unmarshal(env.D, v))
	}
}

func readSnapshot(t *testing.T, conn *websocket.Conn) server.Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, kind, "expected a snapshot frame")

	var snap server.Snapshot
	require.NoError(t, msgpack.Unmarshal(raw, &snap))
	return snap
}

func count(snap server.Snapshot, k grid.Kind) int {
	n := 0
	for _, v := range snap.Kinds {
		if grid.Kind(v) == k {
			n++
		}
	}
	return n
}

// connect dials and consumes the welcome message and first snapshot.
func connect(t *testing.T, ts *testServer) (*websocket.Conn, server.WelcomeMsg) {
	t.Helper()
	conn := ts.dial(t)
	var welcome server.WelcomeMsg
	readJSON(t, conn, server.MsgWelcome, &welcome)
	snap := readSnapshot(t, conn)
	require.Len(t, snap.Kinds, welcome.Width*welcome.Height)
	return conn, welcome
}

// ---------- tests ----------

func TestWS_Welcome(t *testing.T) {
	ts := startServer(t)
	_, w1 := connect(t, ts)
	_, w2 := connect(t, ts)

	assert.Equal(t, 30, w1.Width)
	assert.Equal(t, 30, w1.Height)
	assert.Equal(t, 1.0, w1.CellSize)
	assert.NotEmpty(t, w1.ID)
	assert.NotEqual(t, w1.ID, w2.ID, "each connection gets its own session")
	require.Eventually(t, func() bool { return ts.srv.Hub().Len() == 2 }, 2*time.Second, 10*time.Millisecond)
}

// TestWS_ScenarioFlow loads a scenario, finds a path and clears walls.
func TestWS_ScenarioFlow(t *testing.T) {
	ts := startServer(t)
	conn, _ := connect(t, ts)

	send(t, conn, server.MsgLoadScenario, server.LoadScenarioMsg{Name: "lShape"})
	readJSON(t, conn, server.MsgLoaded, nil)
	snap := readSnapshot(t, conn)
	assert.Equal(t, 20, count(snap, grid.Wall))
	assert.Equal(t, uint8(grid.Start), snap.Kinds[3*30+3])

	send(t, conn, server.MsgFindPath, server.FindPathMsg{Optimize: true})
	var found server.PathFoundMsg
	readJSON(t, conn, server.MsgPathFound, &found)
	assert.Len(t, found.Path, 36)
	assert.True(t, found.Stats.Success)
	assert.Equal(t, 36, found.Stats.PathLength)
	require.NotEmpty(t, found.Optimized)
	assert.Equal(t, found.Path[0], found.Optimized[0])
	assert.Equal(t, found.Path[len(found.Path)-1], found.Optimized[len(found.Optimized)-1])
	assert.Equal(t, 34, count(readSnapshot(t, conn), grid.Path))

	send(t, conn, server.MsgClear, server.ClearMsg{What: server.ClearWalls})
	readJSON(t, conn, server.MsgCleared, nil)
	snap = readSnapshot(t, conn)
	assert.Zero(t, count(snap, grid.Wall))
	assert.Equal(t, 34, count(snap, grid.Path))
}

// TestWS_NoPath reports an unreachable goal without an error frame.
func TestWS_NoPath(t *testing.T) {
	ts := startServer(t)
	conn, _ := connect(t, ts)

	send(t, conn, server.MsgFindPath, nil)
	var np server.NoPathMsg
	readJSON(t, conn, server.MsgNoPath, &np)
	assert.Contains(t, np.Reason, "not set")
	readSnapshot(t, conn)

	send(t, conn, server.MsgLoadScenario, server.LoadScenarioMsg{Name: "impossible"})
	readJSON(t, conn, server.MsgLoaded, nil)
	readSnapshot(t, conn)

	send(t, conn, server.MsgFindPath, server.FindPathMsg{})
	readJSON(t, conn, server.MsgNoPath, &np)
	assert.Contains(t, np.Reason, "no path found")
	assert.Zero(t, count(readSnapshot(t, conn), grid.Path))
}

// TestWS_SetCell echoes the change and reflects it in the snapshot.
func TestWS_SetCell(t *testing.T) {
	ts := startServer(t)
	conn, _ := connect(t, ts)

	send(t, conn, server.MsgSetCell, map[string]any{"x": 1, "y": 2, "kind": "traffic"})
	var set server.SetCellMsg
	readJSON(t, conn, server.MsgCellSet, &set)
	assert.Equal(t, server.SetCellMsg{X: 1, Y: 2, Kind: grid.Traffic}, set)
	snap := readSnapshot(t, conn)
	assert.Equal(t, uint8(grid.Traffic), snap.Kinds[2*30+1])

	send(t, conn, server.MsgState, nil)
	assert.Equal(t, snap, readSnapshot(t, conn))
}

// TestWS_Errors answers bad requests with error frames and stays open.
func TestWS_Errors(t *testing.T) {
	ts := startServer(t)
	conn, _ := connect(t, ts)

	cases := []struct {
		name    string
		msgType string
		data    any
		want    string
	}{
		{"OutOfBounds", server.MsgSetCell, map[string]any{"x": 99, "y": 0, "kind": "wall"}, "out of bounds"},
		{"UnknownKind", server.MsgSetCell, map[string]any{"x": 0, "y": 0, "kind": "lava"}, "lava"},
		{"UnknownClear", server.MsgClear, server.ClearMsg{What: "everything"}, "unknown clear target"},
		{"UnknownScenario", server.MsgLoadScenario, server.LoadScenarioMsg{Name: "nope"}, "unknown scenario"},
		{"UnknownType", "teleport", nil, "unknown message type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			send(t, conn, tc.msgType, tc.data)
			var e server.ErrorMsg
			readJSON(t, conn, server.MsgError, &e)
			assert.Contains(t, e.Msg, tc.want)
		})
	}

	send(t, conn, server.MsgState, nil)
	readSnapshot(t, conn)
}

// TestWS_StoredScenario loads a scenario from the SQLite store.
func TestWS_StoredScenario(t *testing.T) {
	st, err := scenario.Open(filepath.Join(t.TempDir(), "pathless.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Save(context.Background(), scenario.Scenario{
		Name:  "gate",
		Start: grid.Point{X: 0, Y: 0},
		End:   grid.Point{X: 4, Y: 0},
		Walls: []grid.Point{{X: 2, Y: 0}, {X: 2, Y: 1}},
	}))

	ts := startServer(t, server.WithStore(st))
	conn, _ := connect(t, ts)

	send(t, conn, server.MsgLoadScenario, server.LoadScenarioMsg{Name: "gate"})
	readJSON(t, conn, server.MsgLoaded, nil)
	assert.Equal(t, 2, count(readSnapshot(t, conn), grid.Wall))

	resp, err := http.Get("http://" + ts.addr + "/scenarios")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []struct {
		Name    string `json:"name"`
		Builtin bool   `json:"builtin"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 5)
	assert.Equal(t, "gate", list[4].Name)
	assert.False(t, list[4].Builtin)
	assert.True(t, list[0].Builtin)
}

// TestWS_ConnectionLimit refuses a sixth connection from one address.
func TestWS_ConnectionLimit(t *testing.T) {
	ts := startServer(t)
	for i := 0; i < 5; i++ {
		ts.dial(t)
	}
	require.Eventually(t, func() bool { return ts.srv.Hub().Len() == 5 }, 2*time.Second, 10*time.Millisecond)

	_, resp, err := websocket.DefaultDialer.Dial("ws://"+ts.addr+"/ws", nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// TestWS_RateLimit disconnects a client that floods the server.
func TestWS_RateLimit(t *testing.T) {
	ts := startServer(t)
	conn, _ := connect(t, ts)

	raw, err := json.Marshal(server.Envelope{T: server.MsgState})
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		if conn.WriteMessage(websocket.TextMessage, raw) != nil {
			break
		}
	}

	snapshots := 0
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			var ne net.Error
			if errors.As(err, &ne) {
				assert.False(t, ne.Timeout(), "connection should be closed by the server")
			}
			break
		}
		snapshots++
	}
	assert.LessOrEqual(t, snapshots, 50)
	require.Eventually(t, func() bool { return ts.srv.Hub().Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

// TestServe_Shutdown closes live connections and returns cleanly.
func TestServe_Shutdown(t *testing.T) {
	ts := startServer(t)
	conn, _ := connect(t, ts)

	require.NoError(t, ts.stop())
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	require.Eventually(t, func() bool { return ts.srv.Hub().Len() == 0 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + ts.addr + "/healthz")
	if err == nil {
		resp.Body.Close()
	}
	assert.Error(t, err, "listener closed after shutdown")
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Grid.Width = 0
	_, err := server.New(cfg)
	var cerr *config.ConfigError
	assert.ErrorAs(t, err, &cerr)
}
