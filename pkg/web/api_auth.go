package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/kanban/pkg/stats"
	"github.com/gorilla/mux"
)

// TokenController registers the login route. It needs no authentication.
func TokenController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/token", postToken).Methods(http.MethodPost)
}

// AccountController registers the routes acting on the caller's own
// account.
func AccountController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/me", getMe).Methods(http.MethodGet)
	r.HandleFunc("/admin/status", getAdminStatus).Methods(http.MethodGet)

	r.HandleFunc("/api-keys", getAPIKeys).Methods(http.MethodGet)
	r.HandleFunc("/api-keys", postAPIKey).Methods(http.MethodPost)
	r.HandleFunc("/api-keys/{id:[0-9]+}", deleteAPIKey).Methods(http.MethodDelete)
	r.HandleFunc("/api-keys/{id:[0-9]+}/activate", postActivateAPIKey).Methods(http.MethodPost)
}

func postToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.LoginRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	token, err := be.Login(ctx, req.Username, req.Password)
	if err != nil {
		stats.AuthCounter.WithLabelValues("password", "failure").Inc()
		if errors.Is(err, proto.ErrInvalidCredentials) {
			renderDetail(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		renderError(w, r, err)
		return
	}

	stats.AuthCounter.WithLabelValues("password", "success").Inc()
	renderJSON(w, http.StatusOK, api.Token{AccessToken: token, TokenType: "bearer"})
}

func getMe(w http.ResponseWriter, r *http.Request) {
	user := proto.UserFromContext(r.Context())
	renderJSON(w, http.StatusOK, toUser(user))
}

func getAdminStatus(w http.ResponseWriter, r *http.Request) {
	user := proto.UserFromContext(r.Context())
	renderJSON(w, http.StatusOK, api.AdminStatus{IsAdmin: user.IsAdmin()})
}

func getAPIKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	keys, err := be.APIKeys(ctx, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]api.APIKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, toAPIKey(k))
	}
	renderJSON(w, http.StatusOK, out)
}

func postAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.CreateAPIKeyRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	var expiresAt time.Time
	if req.ExpiresInDays != nil {
		if *req.ExpiresInDays < 1 {
			renderError(w, r, proto.NewValidationError("expires_in_days must be at least 1"))
			return
		}
		expiresAt = time.Now().Add(time.Duration(*req.ExpiresInDays) * 24 * time.Hour)
	}

	k, key, err := be.CreateAPIKey(ctx, proto.UserFromContext(ctx), req.Name, expiresAt)
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := toAPIKey(k)
	out.Key = key
	renderJSON(w, http.StatusOK, out)
}

func deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	setAPIKeyActive(w, r, false)
}

func postActivateAPIKey(w http.ResponseWriter, r *http.Request) {
	setAPIKeyActive(w, r, true)
}

func setAPIKeyActive(w http.ResponseWriter, r *http.Request, active bool) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	set := be.DeactivateAPIKey
	if active {
		set = be.ActivateAPIKey
	}

	k, err := set(ctx, user, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toAPIKey(k))
}
