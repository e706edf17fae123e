package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/warden/internal/ai"
)

const (
	// ClientQueueSize is the per-client frame backlog. Frames beyond it are dropped.
	ClientQueueSize = 16

	writeTimeout    = 5 * time.Second
	readTimeout     = 60 * time.Second
	shutdownTimeout = 2 * time.Second
)

// Server streams frames as JSON over websocket to loopback clients.
type Server struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uint64]chan []byte

	nextID  atomic.Uint64
	dropped atomic.Uint64
	latest  atomic.Pointer[[]byte]
}

// NewServer creates observer server with no clients.
func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // loopback only anyway
		},
		clients: make(map[uint64]chan []byte),
	}
}

// Publish encodes f and queues it for every client. Never blocks: a client
// whose queue is full misses the frame.
func (s *Server) Publish(f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding frame %d: %w", f.Tick, err)
	}
	s.latest.Store(&b)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.clients {
		select {
		case ch <- b:
		default:
			if s.dropped.Add(1) == 1 {
				slog.Warn("observer client too slow, dropping frames", "client", id)
			} else if ai.IsDebugEnabled() {
				slog.Debug("observer frame dropped", "client", id, "tick", f.Tick)
			}
		}
	}
	return nil
}

// Clients returns number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Dropped returns number of frames dropped for slow clients.
func (s *Server) Dropped() uint64 {
	return s.dropped.Load()
}

// Handler returns the HTTP routes: /ws streams frames, /frame returns the latest one.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/frame", s.handleFrame)
	return mux
}

// Run serves Handler on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves Handler on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.Info("observer listening", "addr", ln.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down observer: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("observer server: %w", err)
	}
}

func (s *Server) handleFrame(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	b := s.latest.Load()
	if b == nil {
		rw.WriteHeader(http.StatusNoContent)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write(*b)
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id, out := s.addClient()
	defer s.removeClient(id)

	slog.Debug("observer client connected", "client", id, "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Writer goroutine.
	writeErr := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	// Reader loop: clients send nothing useful, reading detects the close.
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))

	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}

	slog.Debug("observer client disconnected", "client", id)
}

// addClient registers a queue primed with the latest frame.
func (s *Server) addClient() (uint64, chan []byte) {
	id := s.nextID.Add(1)
	ch := make(chan []byte, ClientQueueSize)
	if b := s.latest.Load(); b != nil {
		ch <- *b
	}

	s.mu.Lock()
	s.clients[id] = ch
	s.mu.Unlock()
	return id, ch
}

func (s *Server) removeClient(id uint64) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
