// Package cron runs the server's periodic maintenance jobs.
package cron

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Entry describes a scheduled job.
type Entry struct {
	Name string
	Spec string
	Next time.Time
	Prev time.Time
}

// Scheduler runs named jobs on cron schedules. A job that is still running
// when its next tick fires is skipped, and a panicking job is logged rather
// than crashing the server.
type Scheduler struct {
	c      *cron.Cron
	logger *log.Logger

	mu    sync.Mutex
	ids   map[string]cron.EntryID
	specs map[string]string
}

// printfLogger adapts a log.Logger to the cron.Logger interface. Routine
// scheduler chatter goes to debug.
type printfLogger struct {
	l *log.Logger
}

func (p printfLogger) Info(msg string, kv ...interface{}) {
	p.l.Debug(msg, kv...)
}

func (p printfLogger) Error(err error, msg string, kv ...interface{}) {
	p.l.Error(msg, append(kv, "err", err)...)
}

// NewScheduler returns a stopped Scheduler that logs with the context logger.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := log.FromContext(ctx).WithPrefix("cron")
	cl := printfLogger{logger}
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
		ids:    map[string]cron.EntryID{},
		specs:  map[string]string{},
	}
}

// Schedule adds fn under name. Scheduling a name twice replaces the
// previous job.
func (s *Scheduler) Schedule(name, spec string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("job", name)
	id, err := s.c.AddFunc(spec, func() {
		start := time.Now()
		fn()
		logger.Debug("job finished", "took", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	if old, ok := s.ids[name]; ok {
		s.c.Remove(old)
	}
	s.ids[name] = id
	s.specs[name] = spec
	return nil
}

// Unschedule removes the job with the given name, if any.
func (s *Scheduler) Unschedule(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.ids[name]; ok {
		s.c.Remove(id)
		delete(s.ids, name)
		delete(s.specs, name)
	}
}

// Entries returns the scheduled jobs sorted by name.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	es := make([]Entry, 0, len(s.ids))
	for name, id := range s.ids {
		e := s.c.Entry(id)
		es = append(es, Entry{Name: name, Spec: s.specs[name], Next: e.Next, Prev: e.Prev})
	}
	sort.Slice(es, func(i, j int) bool { return es[i].Name < es[j].Name })
	return es
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop stops the scheduler without waiting for running jobs.
func (s *Scheduler) Stop() {
	s.c.Stop()
}

// Shutdown stops the scheduler and waits for running jobs to return or for
// ctx to be done.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	done := s.c.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
