package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter returns a new HTTP router.
func NewRouter(ctx context.Context) (http.Handler, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	logger := log.FromContext(ctx).WithPrefix("http")
	router := mux.NewRouter()
	withErrorHandlers(router)

	// Health routes
	HealthController(ctx, router)

	apiRouter := router.PathPrefix("/api").Subrouter()
	withErrorHandlers(apiRouter)
	apiRouter.Use(countRequests)

	// Public routes
	TokenController(ctx, apiRouter)
	PublicInviteController(ctx, apiRouter)

	// Everything else needs a user
	authed := apiRouter.NewRoute().Subrouter()
	authed.Use(withAuth)
	withErrorHandlers(authed)
	AccountController(ctx, authed)
	OrgController(ctx, authed)
	TeamController(ctx, authed)
	BoardController(ctx, authed)

	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(withAdmin)
	withErrorHandlers(admin)
	AdminController(ctx, admin)

	corsHandler, err := NewCORSHandler(cfg.HTTP.CORS)
	if err != nil {
		return nil, err
	}

	// Context handler
	// Adds context to the request
	h := NewLoggingMiddleware(router, logger)
	h = corsHandler(h)
	h = NewContextHandler(ctx)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler()(h)

	return h, nil
}

// withErrorHandlers sets the JSON 404 and 405 handlers. Subrouters do not
// inherit them from their parent.
func withErrorHandlers(r *mux.Router) {
	r.NotFoundHandler = http.HandlerFunc(renderNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(renderMethodNotAllowed)
}
