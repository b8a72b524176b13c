package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/thenoetrevino/corkboard/internal/commands"
)

// Dispatcher runs a named call. *commands.Registry implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, input json.RawMessage) commands.Response
}

// Server serves command calls over a unix domain socket. Each connection is
// handled by its own goroutine; requests on one connection are answered in order.
type Server struct {
	socketPath   string
	listener     *net.UnixListener
	dispatcher   Dispatcher
	logger       *slog.Logger
	metrics      *Metrics
	conns        map[net.Conn]struct{}
	mu           sync.Mutex
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
	shutdownOnce sync.Once
}

// NewServer creates the socket and returns a server ready to Start.
// A stale socket file left by a previous run is removed.
func NewServer(socketPath string, dispatcher Dispatcher, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		socketPath: socketPath,
		listener:   listener.(*net.UnixListener),
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    NewMetrics(),
		conns:      make(map[net.Conn]struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Metrics exposes the live counters.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start accepts connections until ctx is cancelled or Shutdown is called,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Daemon starting", "socket_path", s.socketPath)

	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-combinedCtx.Done():
		}
	}()

	err := s.acceptLoop(combinedCtx)
	if err != nil {
		s.logger.Error("Accept loop error", "error", err)
	}

	if shutdownErr := s.Shutdown(); shutdownErr != nil {
		return shutdownErr
	}
	return err
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Set a deadline so we can check for context cancellation
		if err := s.listener.SetDeadline(time.Now().Add(time.Second)); err != nil {
			s.logger.Warn("Error setting listener deadline", "error", err)
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		if !s.track(conn) {
			_ = conn.Close()
			return nil
		}
		s.metrics.ClientConnected()
		s.logger.Debug("Client connected", "clients", s.metrics.ConnectedClients.Load())

		s.wg.Add(1)
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// handleConn answers requests until the client hangs up or sends garbage.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.untrack(conn)
		_ = conn.Close()
		s.metrics.ClientDisconnected()
		s.logger.Debug("Client disconnected", "clients", s.metrics.ConnectedClients.Load())
	}()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				_ = encoder.Encode(Response{Error: fmt.Sprintf("malformed request: %v", err)})
			}
			return
		}

		if req.Version != 0 && req.Version != ProtocolVersion {
			s.logger.Warn("Protocol version mismatch", "got", req.Version, "want", ProtocolVersion)
		}

		resp := s.handle(ctx, req)
		s.metrics.RecordRequest(!resp.OK)
		if err := encoder.Encode(resp); err != nil {
			s.logger.Warn("Failed to write response", "command", req.Command, "error", err)
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, req Request) Response {
	var result commands.Response
	if req.Command == StatusCommand {
		result = commands.Response{OK: true, Data: s.metrics.GetSnapshot()}
	} else {
		result = s.dispatcher.Dispatch(ctx, req.Command, req.Input)
	}

	resp := Response{ID: req.ID, OK: result.OK, Error: result.Error}
	if result.OK && result.Data != nil {
		data, err := json.Marshal(result.Data)
		if err != nil {
			return Response{ID: req.ID, Error: fmt.Sprintf("failed to encode result: %v", err)}
		}
		resp.Data = data
	}
	return resp
}

// Shutdown stops accepting, closes open connections, waits for in-flight
// requests and removes the socket file.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.Info("Shutting down daemon")
		s.cancel()

		if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			s.logger.Warn("Error closing listener", "error", closeErr)
		}

		s.mu.Lock()
		for conn := range s.conns {
			if closeErr := conn.Close(); closeErr != nil {
				s.logger.Warn("Error closing client connection", "error", closeErr)
			}
		}
		s.conns = nil
		s.mu.Unlock()

		s.wg.Wait()

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			err = fmt.Errorf("failed to remove socket file: %w", removeErr)
		}
	})
	return err
}
