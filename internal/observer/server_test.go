package observer

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/warden/internal/model"
)

func testFrame(tick uint64) Frame {
	r := NewRecorder(tick)
	r.BeginAgent(1, model.StateChasing, model.NewVec3(1, 0, 1), model.NewVec3(0, 0, 1))
	r.DrawWireSphere("green", model.NewVec3(1, 0, 1), 20)
	return r.Frame()
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var f Frame
	require.NoError(t, json.Unmarshal(msg, &f))
	return f
}

func TestServer_StreamsFrames(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Publish(testFrame(1)))
	require.NoError(t, s.Publish(testFrame(2)))

	assert.Equal(t, testFrame(1), readFrame(t, conn))
	assert.Equal(t, testFrame(2), readFrame(t, conn))
}

func TestServer_NewClientGetsLatestFrame(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	require.NoError(t, s.Publish(testFrame(1)))
	require.NoError(t, s.Publish(testFrame(9)))

	conn := dial(t, ts)
	assert.Equal(t, uint64(9), readFrame(t, conn).Tick)
}

func TestServer_ClientDisconnect(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServer_SlowClientDropsFrames(t *testing.T) {
	s := NewServer()
	_, out := s.addClient()

	for i := range ClientQueueSize + 3 {
		require.NoError(t, s.Publish(testFrame(uint64(i))))
	}

	assert.Len(t, out, ClientQueueSize)
	assert.Equal(t, uint64(3), s.Dropped())
}

func TestServer_LatestFrameEndpoint(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/frame")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NoError(t, s.Publish(testFrame(4)))

	resp, err = http.Get(ts.URL + "/frame")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var f Frame
	require.NoError(t, json.Unmarshal(body, &f))
	assert.Equal(t, uint64(4), f.Tick)
}

func TestServer_RejectsRemoteClients(t *testing.T) {
	s := NewServer()

	for _, path := range []string{"/ws", "/frame"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.RemoteAddr = "203.0.113.5:4000"
			rec := httptest.NewRecorder()

			s.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- NewServer().Serve(ctx, ln) }()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestIsLoopbackRemote(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1:5000", true},
		{"[::1]:5000", true},
		{"::1", true},
		{"10.0.0.2:5000", false},
		{"not-an-ip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, isLoopbackRemote(tt.addr))
		})
	}
}
