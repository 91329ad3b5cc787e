package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/gorilla/mux"
)

// TeamController registers the team routes.
func TeamController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/teams/{id:[0-9]+}", getTeam).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id:[0-9]+}", putTeam).Methods(http.MethodPut)
	r.HandleFunc("/teams/{id:[0-9]+}", deleteTeam).Methods(http.MethodDelete)

	r.HandleFunc("/teams/{id:[0-9]+}/members", getTeamMembers).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id:[0-9]+}/members", postTeamMember).Methods(http.MethodPost)
	r.HandleFunc("/teams/{id:[0-9]+}/members/{user_id:[0-9]+}", deleteTeamMember).Methods(http.MethodDelete)
}

func getTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	team, err := be.Team(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeam(team))
}

func putTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.TeamRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	team, err := be.UpdateTeam(ctx, proto.UserFromContext(ctx), id, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeam(team))
}

func deleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteTeam(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	members, err := be.TeamMembers(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeamMembers(members))
}

func postTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.MemberRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	m, err := be.AddTeamMember(ctx, proto.UserFromContext(ctx), id, req.Username)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeamMember(m))
}

func deleteTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.RemoveTeamMember(ctx, proto.UserFromContext(ctx), id, userID); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}
