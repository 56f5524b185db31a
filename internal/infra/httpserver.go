package infra

import (
	"context"
	"net"
	"net/http"
	"time"
)

// HTTPServer owns the API listener lifecycle: blocking serve plus
// context-bounded graceful shutdown.
type HTTPServer struct {
	srv *http.Server
}

// NewHTTPServer builds the server with the configured timeouts. The read
// header timeout is fixed; slow-header clients get cut off before the body
// timeouts apply.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{srv: &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}}
}

// Addr reports the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.srv.Addr
}

// Start serves until the listener closes. Returns http.ErrServerClosed after
// a graceful shutdown.
func (s *HTTPServer) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
