package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/maksimkurb/ipnorm/src/internal/log"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new API server for the handler.
func NewServer(bindAddr string, h *Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              bindAddr,
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start listens on the configured address and serves until Stop is called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener until Stop is called.
func (s *Server) Serve(ln net.Listener) error {
	log.Infof("[API] Starting server on %s", ln.Addr())
	log.Infof("[API] Example: curl --data-binary @list.txt -H 'Content-Type: text/plain' http://%s/api/v1/normalize", ln.Addr())

	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully stops the API server
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
