// Package server exposes the report pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Generation requests hold the connection while the provider chain runs, so
// the write timeout must cover the slowest per-model budget. The progress
// websocket is unaffected: it hijacks the connection on upgrade.
const writeTimeout = 5 * time.Minute

type Server struct {
	httpServer *http.Server
}

func New(port string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         port,
			Handler:      h2c.NewHandler(handler, &http2.Server{}),
			ReadTimeout:  time.Minute,
			WriteTimeout: writeTimeout,
		},
	}
}

func (s *Server) Start() error {
	log.Printf("report service listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
