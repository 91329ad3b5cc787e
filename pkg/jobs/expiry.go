package jobs

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/stats"
	"github.com/charmbracelet/log"
)

const (
	// ExpirySweepJob is the name of the expiry sweep job.
	ExpirySweepJob = "expiry-sweep"

	// DefaultExpirySweepSpec is used when the config has no schedule.
	DefaultExpirySweepSpec = "@every 1h"
)

// expirySweep deactivates expired API keys and revokes expired invites.
type expirySweep struct{}

var _ Runner = expirySweep{}

// Spec implements Runner.
func (expirySweep) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	if cfg == nil || cfg.Jobs.ExpirySweep == "" {
		return DefaultExpirySweepSpec
	}
	return cfg.Jobs.ExpirySweep
}

// Func implements Runner.
func (expirySweep) Func(ctx context.Context) func() {
	be := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.expiry")
	return func() {
		res, err := be.ExpirySweep(ctx)
		if err != nil {
			logger.Error("expiry sweep failed", "err", err)
			return
		}

		stats.SweepCounter.WithLabelValues("api_key").Add(float64(res.APIKeys))
		stats.SweepCounter.WithLabelValues("invite").Add(float64(res.Invites))
		if res.APIKeys > 0 || res.Invites > 0 {
			logger.Info("expired credentials swept", "api_keys", res.APIKeys, "invites", res.Invites)
		}
	}
}
