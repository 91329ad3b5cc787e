package stats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/matryer/is"
)

func TestNewStatsServerNeedsConfig(t *testing.T) {
	is := is.New(t)
	_, err := NewStatsServer(context.TODO())
	is.Equal(err, config.ErrNilConfig)
}

func TestMetricsEndpoint(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	s, err := NewStatsServer(config.WithContext(context.TODO(), cfg))
	is.NoErr(err)

	AuthCounter.WithLabelValues("bearer", "ok").Inc()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	is.Equal(rec.Code, http.StatusOK)

	body, err := io.ReadAll(rec.Body)
	is.NoErr(err)
	is.True(strings.Contains(string(body), `kanban_http_auth_total{method="bearer",outcome="ok"}`))
}
