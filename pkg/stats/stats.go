// Package stats serves the Prometheus metrics endpoint and defines the
// service counters.
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AuthCounter counts authentication attempts by method and outcome.
	AuthCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanban",
		Subsystem: "http",
		Name:      "auth_total",
		Help:      "The total number of authentication attempts",
	}, []string{"method", "outcome"})

	// RequestCounter counts API requests by route and status code.
	RequestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanban",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "The total number of API requests",
	}, []string{"route", "code"})

	// SweepCounter counts rows changed by the expiry sweep.
	SweepCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanban",
		Subsystem: "jobs",
		Name:      "expired_total",
		Help:      "The total number of expired API keys and invites",
	}, []string{"kind"})
)

// StatsServer is a server for collecting and reporting statistics.
type StatsServer struct { //nolint:revive
	ctx    context.Context
	cfg    *config.Config
	server *http.Server
}

// NewStatsServer returns a new StatsServer.
func NewStatsServer(ctx context.Context) (*StatsServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &StatsServer{
		ctx: ctx,
		cfg: cfg,
		server: &http.Server{
			Addr:              cfg.Stats.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: time.Second * 10,
			ReadTimeout:       time.Second * 10,
			WriteTimeout:      time.Second * 10,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		},
	}, nil
}

// Handler returns the metrics handler.
func (s *StatsServer) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe starts the StatsServer.
func (s *StatsServer) ListenAndServe() error {
	return s.server.ListenAndServe() //nolint:wrapcheck
}

// Shutdown gracefully shuts down the StatsServer.
func (s *StatsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Close closes the StatsServer.
func (s *StatsServer) Close() error {
	return s.server.Close() //nolint:wrapcheck
}
