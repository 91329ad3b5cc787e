package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/gorilla/mux"
)

// AdminController registers the admin routes. Callers must wrap r with the
// admin gate.
func AdminController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/users", getAdminUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", postAdminUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}", putAdminUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id:[0-9]+}", deleteAdminUser).Methods(http.MethodDelete)
	r.HandleFunc("/users/{id:[0-9]+}/reset-password", postAdminResetPassword).Methods(http.MethodPost)

	r.HandleFunc("/organizations", getAdminOrgs).Methods(http.MethodGet)
	r.HandleFunc("/organizations", postAdminOrg).Methods(http.MethodPost)
	r.HandleFunc("/organizations/{id:[0-9]+}", putAdminOrg).Methods(http.MethodPut)
	r.HandleFunc("/organizations/{id:[0-9]+}", deleteAdminOrg).Methods(http.MethodDelete)

	r.HandleFunc("/teams", getAdminTeams).Methods(http.MethodGet)
	r.HandleFunc("/teams", postAdminTeam).Methods(http.MethodPost)
	r.HandleFunc("/teams/{id:[0-9]+}", putAdminTeam).Methods(http.MethodPut)
	r.HandleFunc("/teams/{id:[0-9]+}", deleteAdminTeam).Methods(http.MethodDelete)
	r.HandleFunc("/teams/{id:[0-9]+}/members", getAdminTeamMembers).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id:[0-9]+}/available-members", getAdminAvailableMembers).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id:[0-9]+}/members", postAdminTeamMember).Methods(http.MethodPost)
	r.HandleFunc("/teams/{id:[0-9]+}/members/{user_id:[0-9]+}", deleteAdminTeamMember).Methods(http.MethodDelete)

	r.HandleFunc("/boards", getAdminBoards).Methods(http.MethodGet)
	r.HandleFunc("/boards", postAdminBoard).Methods(http.MethodPost)
	r.HandleFunc("/boards/{id:[0-9]+}", putAdminBoard).Methods(http.MethodPut)
	r.HandleFunc("/boards/{id:[0-9]+}", deleteAdminBoard).Methods(http.MethodDelete)
}

func getAdminUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	users, err := be.Users(ctx, pageParams(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toUsers(users))
}

func postAdminUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.UserRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}
	if err := backend.ValidatePassword(req.Password); err != nil {
		renderError(w, r, err)
		return
	}

	user, err := be.CreateUser(ctx, req.Username, proto.UserOptions{
		Admin:    req.Admin,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toUser(user))
}

func putAdminUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.UserUpdateRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	user, err := be.UpdateUser(ctx, proto.UserFromContext(ctx), id, proto.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Admin:    req.Admin,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toUser(user))
}

func deleteAdminUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteUser(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func postAdminResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.PasswordRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.SetPassword(ctx, id, req.Password); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getAdminOrgs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	orgs, err := be.AdminOrgs(ctx, pageParams(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrgs(orgs))
}

func postAdminOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.OrganizationRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	org, err := be.AdminCreateOrg(ctx, req.Name, req.Slug, req.OwnerID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrg(org))
}

func putAdminOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.OrganizationRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	org, err := be.AdminUpdateOrg(ctx, id, req.Name, req.OwnerID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrg(org))
}

func deleteAdminOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.AdminDeleteOrg(ctx, id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getAdminTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	teams, err := be.AdminTeams(ctx, pageParams(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeams(teams))
}

func postAdminTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.TeamRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	team, err := be.AdminCreateTeam(ctx, req.OrganizationID, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeam(team))
}

func putAdminTeam(w http.ResponseWriter, r *http.Request) {
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

	team, err := be.AdminUpdateTeam(ctx, id, req.Name, req.OrganizationID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeam(team))
}

func deleteAdminTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.AdminDeleteTeam(ctx, id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getAdminTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	members, err := be.AdminTeamMembers(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeamMembers(members))
}

func getAdminAvailableMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	users, err := be.AdminAvailableTeamMembers(ctx, id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toUsers(users))
}

func postAdminTeamMember(w http.ResponseWriter, r *http.Request) {
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

	m, err := be.AdminAddTeamMember(ctx, id, req.Username)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeamMember(m))
}

func deleteAdminTeamMember(w http.ResponseWriter, r *http.Request) {
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

	if err := be.AdminRemoveTeamMember(ctx, id, userID); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getAdminBoards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	boards, err := be.AdminBoards(ctx, pageParams(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]api.BoardSummary, 0, len(boards))
	for _, b := range boards {
		out = append(out, toBoardSummary(b))
	}
	renderJSON(w, http.StatusOK, out)
}

func postAdminBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.BoardRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	board, err := be.AdminCreateBoard(ctx, req.Name, req.OwnerID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toBoardSummary(board))
}

func putAdminBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.BoardRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	board, err := be.AdminUpdateBoard(ctx, id, req.Name, req.OwnerID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toBoardSummary(board))
}

func deleteAdminBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.AdminDeleteBoard(ctx, id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}
