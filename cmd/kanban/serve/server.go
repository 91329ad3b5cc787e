package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/cron"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/jobs"
	"github.com/charmbracelet/kanban/pkg/stats"
	"github.com/charmbracelet/kanban/pkg/web"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Server is the kanban server.
type Server struct {
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Cron        *cron.Scheduler
	Config      *config.Config
	Backend     *backend.Backend
	DB          *db.DB

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server. It expects a context with
// *backend.Backend, *db.DB, *log.Logger, and *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config:  cfg,
		Backend: backend.FromContext(ctx),
		DB:      db.FromContext(ctx),
		logger:  logger,
		ctx:     ctx,
	}

	srv.Cron = cron.NewScheduler(ctx)
	jobs.Schedule(ctx, srv.Cron)

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	if cfg.Stats.ListenAddr != "" {
		srv.StatsServer, err = stats.NewStatsServer(ctx)
		if err != nil {
			return nil, fmt.Errorf("create stats server: %w", err)
		}
	}

	return srv, nil
}

// Start starts the HTTP server, the stats server and the scheduler. It
// blocks until the servers stop.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	errg.Go(func() error {
		s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
		if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if s.StatsServer != nil {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	errg.Go(func() error {
		s.Cron.Start()
		return nil
	})
	return errg.Wait()
}

// ReloadCertificate reloads the HTTP server's TLS certificate.
func (s *Server) ReloadCertificate() error {
	return s.HTTPServer.ReloadCertificate()
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	if s.StatsServer != nil {
		errg.Go(func() error {
			return s.StatsServer.Shutdown(ctx)
		})
	}
	errg.Go(func() error {
		return s.Cron.Shutdown(ctx)
	})
	return errg.Wait()
}

// Close closes the servers immediately.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	if s.StatsServer != nil {
		errg.Go(s.StatsServer.Close)
	}
	errg.Go(func() error {
		s.Cron.Stop()
		return nil
	})
	return errg.Wait()
}
