package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/kanban/pkg/cron"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/kanban/pkg/store/database"
	"github.com/charmbracelet/kanban/pkg/test"
	"github.com/matryer/is"
)

func TestRegistered(t *testing.T) {
	is := is.New(t)
	r, ok := Lookup(ExpirySweepJob)
	is.True(ok)
	is.Equal(List()[0].Name, ExpirySweepJob)

	is.Equal(r.Spec(context.TODO()), DefaultExpirySweepSpec)

	cfg := config.DefaultConfig()
	cfg.Jobs.ExpirySweep = "@every 5m"
	is.Equal(r.Spec(config.WithContext(context.TODO(), cfg)), "@every 5m")
}

func TestExpirySweepRuns(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Auth.JWTSecret = "secret"
	ctx := config.WithContext(context.Background(), cfg)
	dbx := test.OpenDB(ctx, t)
	be, err := backend.New(ctx, cfg, dbx, database.New(ctx, dbx))
	is.NoErr(err)
	ctx = backend.WithContext(ctx, be)

	u, err := be.CreateUser(ctx, "alice", proto.UserOptions{Password: "pw"})
	is.NoErr(err)
	k, key, err := be.CreateAPIKey(ctx, u, "ci", time.Now().Add(time.Second))
	is.NoErr(err)
	is.True(k.Active)

	time.Sleep(1100 * time.Millisecond)
	r, _ := Lookup(ExpirySweepJob)
	r.Func(ctx)()

	_, err = be.UserByAPIKey(ctx, key)
	is.Equal(err, proto.ErrAPIKeyInactive)
}

type badSpec struct{}

func (badSpec) Spec(context.Context) string { return "not a schedule" }
func (badSpec) Func(context.Context) func() { return func() {} }

func TestSchedule(t *testing.T) {
	is := is.New(t)
	Register("zz-bad", badSpec{})
	t.Cleanup(func() {
		mu.Lock()
		delete(registry, "zz-bad")
		mu.Unlock()
	})

	s := cron.NewScheduler(context.TODO())
	Schedule(context.TODO(), s)

	es := s.Entries()
	is.Equal(len(es), 1)
	is.Equal(es[0].Name, ExpirySweepJob)
	is.Equal(es[0].Spec, DefaultExpirySweepSpec)
}
