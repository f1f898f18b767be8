package grpc

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/auctionlaunch/auctiond/internal/core/engine"
)

// Server represents the gRPC server for auction queries.
type Server struct {
	mu sync.RWMutex

	grpcServer *grpc.Server

	// engine provides access to the auction registry
	engine *engine.Engine

	config *ServerConfig

	listener net.Listener

	log zerolog.Logger

	running bool
}

// ServerOption is a function that configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(log zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates a new gRPC server over an engine.
func NewServer(cfg *ServerConfig, e *engine.Engine, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	server := &Server{
		engine: e,
		config: cfg,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	server.grpcServer = grpc.NewServer(
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.UnaryInterceptor(server.loggingInterceptor()),
	)

	return server, nil
}

// Start starts the gRPC server and begins accepting connections.
// This method blocks until the server is stopped or an error occurs.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	s.log.Info().Str("address", listener.Addr().String()).Msg("grpc server listening")
	return s.grpcServer.Serve(listener)
}

// StartAsync starts the gRPC server in a goroutine and returns immediately.
func (s *Server) StartAsync() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	go func() {
		if err := s.grpcServer.Serve(listener); err != nil {
			s.log.Error().Err(err).Msg("grpc server stopped")
		}
	}()

	return nil
}

// Stop gracefully stops the gRPC server. It stops accepting new
// connections and waits for existing connections to complete.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.grpcServer.GracefulStop()
	s.running = false
}

// StopNow immediately stops the gRPC server without waiting for connections.
func (s *Server) StopNow() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.grpcServer.Stop()
	s.running = false
}

// IsRunning returns true if the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the address the server is listening on.
// Returns empty string if the server is not running.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) loggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			s.log.Debug().Err(err).Str("method", info.FullMethod).Msg("grpc call failed")
		}
		return resp, err
	}
}
