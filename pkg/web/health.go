package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/migrate"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// HealthController registers /livez and /readyz. The server is ready once
// the database answers and its schema is current.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", renderStatus(http.StatusOK)).Methods(http.MethodGet)
	r.HandleFunc("/readyz", getReadiness).Methods(http.MethodGet)
}

func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx).WithPrefix("http.health")
	dbx := db.FromContext(ctx)
	if dbx == nil {
		renderStatus(http.StatusServiceUnavailable)(w, r)
		return
	}

	if err := dbx.PingContext(ctx); err != nil {
		logger.Warn("database unreachable", "err", err)
		renderStatus(http.StatusServiceUnavailable)(w, r)
		return
	}

	v, err := migrate.Version(ctx, dbx)
	if err != nil || v < migrate.Latest() {
		logger.Warn("schema not current", "version", v, "want", migrate.Latest(), "err", err)
		renderStatus(http.StatusServiceUnavailable)(w, r)
		return
	}

	renderStatus(http.StatusOK)(w, r)
}
