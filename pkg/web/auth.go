package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/kanban/pkg/stats"
	"github.com/charmbracelet/log"
)

// APIKeyHeader is the request header carrying an API key.
const APIKeyHeader = "X-API-Key"

var errInvalidAuthHeader = errors.New("invalid authorization header")

// bearerToken returns the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidAuthHeader
	}

	return strings.TrimSpace(parts[1]), nil
}

func authMethod(apiKey, bearer string) string {
	switch {
	case apiKey != "":
		return "api_key"
	case bearer != "":
		return "bearer"
	default:
		return "none"
	}
}

// withAuth resolves the request credentials and stores the user in the
// request context. Requests that don't resolve get a 401.
func withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.FromContext(ctx)
		be := backend.FromContext(ctx)

		apiKey := r.Header.Get(APIKeyHeader)
		bearer, err := bearerToken(r)
		if err != nil {
			stats.AuthCounter.WithLabelValues("bearer", "failure").Inc()
			renderDetail(w, http.StatusUnauthorized, err.Error())
			return
		}

		method := authMethod(apiKey, bearer)
		user, err := be.Authenticate(ctx, apiKey, bearer)
		if err != nil {
			stats.AuthCounter.WithLabelValues(method, "failure").Inc()
			switch {
			case proto.IsUnauthenticated(err), proto.IsNotFound(err):
				logger.Debug("authentication failed", "method", method, "err", err)
				renderDetail(w, http.StatusUnauthorized, err.Error())
			default:
				renderError(w, r, err)
			}
			return
		}

		stats.AuthCounter.WithLabelValues(method, "success").Inc()
		logger = logger.With("username", user.Username())
		logger.Debug("authenticated", "method", method)
		ctx = proto.WithUserContext(ctx, user)
		ctx = log.WithContext(ctx, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAdmin lets only platform admins through. It must run after withAuth.
func withAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := proto.UserFromContext(r.Context())
		if user == nil {
			renderDetail(w, http.StatusUnauthorized, proto.ErrUnauthorized.Error())
			return
		}
		if !user.IsAdmin() {
			renderDetail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
