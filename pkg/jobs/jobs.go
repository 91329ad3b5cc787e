// Package jobs holds the periodic maintenance jobs of the server.
package jobs

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/kanban/pkg/cron"
	"github.com/charmbracelet/log"
)

// Runner is a periodic job. Spec returns its cron schedule and Func the
// function to run, both resolved against the server context.
type Runner interface {
	Spec(context.Context) string
	Func(context.Context) func()
}

// Job is a named Runner.
type Job struct {
	Name   string
	Runner Runner
}

var (
	mu       sync.RWMutex
	registry = map[string]Runner{}
)

// Register adds a runner under name, replacing any runner already there.
func Register(name string, r Runner) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = r
}

// List returns the registered jobs sorted by name.
func List() []Job {
	mu.RLock()
	defer mu.RUnlock()
	js := make([]Job, 0, len(registry))
	for name, r := range registry {
		js = append(js, Job{Name: name, Runner: r})
	}
	sort.Slice(js, func(i, j int) bool { return js[i].Name < js[j].Name })
	return js
}

// Lookup returns the runner registered under name.
func Lookup(name string) (Runner, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[name]
	return r, ok
}

// Schedule adds every registered job to s. A job whose schedule does not
// parse is logged and skipped.
func Schedule(ctx context.Context, s *cron.Scheduler) {
	logger := log.FromContext(ctx).WithPrefix("jobs")
	for _, j := range List() {
		spec := j.Runner.Spec(ctx)
		if err := s.Schedule(j.Name, spec, j.Runner.Func(ctx)); err != nil {
			logger.Warn("skipping job", "job", j.Name, "spec", spec, "err", err)
			continue
		}
		logger.Debug("scheduled job", "job", j.Name, "spec", spec)
	}
}

func init() {
	Register(ExpirySweepJob, expirySweep{})
}
