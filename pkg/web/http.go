package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/log"
)

// HTTPServer is an http server.
type HTTPServer struct {
	ctx   context.Context
	cfg   *config.Config
	certs *CertReloader

	Server *http.Server
}

// NewHTTPServer creates a new HTTP server. TLS is enabled when both the
// certificate and key paths are configured.
func NewHTTPServer(ctx context.Context) (*HTTPServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	logger := log.FromContext(ctx)
	router, err := NewRouter(ctx)
	if err != nil {
		return nil, err
	}

	s := &HTTPServer{
		ctx: ctx,
		cfg: cfg,
		Server: &http.Server{
			Addr:              cfg.HTTP.ListenAddr,
			Handler:           router,
			ReadHeaderTimeout: time.Second * 10,
			IdleTimeout:       time.Second * 10,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
			ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		},
	}

	if cfg.HTTP.TLSCertPath != "" && cfg.HTTP.TLSKeyPath != "" {
		s.certs, err = NewCertReloader(cfg.HTTP.TLSCertPath, cfg.HTTP.TLSKeyPath)
		if err != nil {
			return nil, err
		}
		s.Server.TLSConfig = s.certs.TLSConfig()
	}

	return s, nil
}

// ReloadCertificate reloads the TLS certificate and key from disk. It's a
// no-op when TLS is off.
func (s *HTTPServer) ReloadCertificate() error {
	if s.certs == nil {
		return nil
	}
	return s.certs.Reload()
}

// Close closes the HTTP server.
func (s *HTTPServer) Close() error {
	return s.Server.Close()
}

// ListenAndServe starts the HTTP server.
func (s *HTTPServer) ListenAndServe() error {
	if s.Server.TLSConfig != nil {
		return s.Server.ListenAndServeTLS("", "")
	}
	return s.Server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
