package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/gorilla/mux"
)

// OrgController registers the organization, membership and invite routes.
func OrgController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/organizations", getOrgs).Methods(http.MethodGet)
	r.HandleFunc("/organizations", postOrg).Methods(http.MethodPost)
	r.HandleFunc("/organizations/{id:[0-9]+}", getOrg).Methods(http.MethodGet)
	r.HandleFunc("/organizations/{id:[0-9]+}", putOrg).Methods(http.MethodPut)
	r.HandleFunc("/organizations/{id:[0-9]+}", deleteOrg).Methods(http.MethodDelete)

	r.HandleFunc("/organizations/{id:[0-9]+}/members", getOrgMembers).Methods(http.MethodGet)
	r.HandleFunc("/organizations/{id:[0-9]+}/members", postOrgMember).Methods(http.MethodPost)
	r.HandleFunc("/organizations/{id:[0-9]+}/members/{user_id:[0-9]+}", deleteOrgMember).Methods(http.MethodDelete)

	r.HandleFunc("/organizations/{id:[0-9]+}/teams", getOrgTeams).Methods(http.MethodGet)
	r.HandleFunc("/organizations/{id:[0-9]+}/teams", postOrgTeam).Methods(http.MethodPost)

	r.HandleFunc("/organizations/{id:[0-9]+}/invites", getInvites).Methods(http.MethodGet)
	r.HandleFunc("/organizations/{id:[0-9]+}/invites", postInvite).Methods(http.MethodPost)
	r.HandleFunc("/organizations/{id:[0-9]+}/invites/{invite_id:[0-9]+}", deleteInvite).Methods(http.MethodDelete)

	r.HandleFunc("/invites/{token}/accept", postAcceptInvite).Methods(http.MethodPost)
}

// PublicInviteController registers the invite lookup route. It needs no
// authentication.
func PublicInviteController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/invites/{token}", getInvite).Methods(http.MethodGet)
}

func getOrgs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	orgs, err := be.Orgs(ctx, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrgs(orgs))
}

func postOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.OrganizationRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	org, err := be.CreateOrg(ctx, proto.UserFromContext(ctx), req.Name, req.Slug)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrg(org))
}

func getOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	org, err := be.Org(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrg(org))
}

func putOrg(w http.ResponseWriter, r *http.Request) {
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

	org, err := be.UpdateOrg(ctx, proto.UserFromContext(ctx), id, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrg(org))
}

func deleteOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteOrg(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getOrgMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	members, err := be.OrgMembers(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]api.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toOrgMember(m))
	}
	renderJSON(w, http.StatusOK, out)
}

func postOrgMember(w http.ResponseWriter, r *http.Request) {
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

	m, err := be.AddOrgMember(ctx, proto.UserFromContext(ctx), id, req.Username)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrgMember(m))
}

func deleteOrgMember(w http.ResponseWriter, r *http.Request) {
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

	if err := be.RemoveOrgMember(ctx, proto.UserFromContext(ctx), id, userID); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getOrgTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	teams, err := be.Teams(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeams(teams))
}

func postOrgTeam(w http.ResponseWriter, r *http.Request) {
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

	team, err := be.CreateTeam(ctx, proto.UserFromContext(ctx), id, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toTeam(team))
}

func getInvites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	invites, err := be.Invites(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]api.Invite, 0, len(invites))
	for _, inv := range invites {
		out = append(out, toInvite(inv))
	}
	renderJSON(w, http.StatusOK, out)
}

func postInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.InviteRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			renderError(w, r, err)
			return
		}
	}

	inv, err := be.CreateInvite(ctx, proto.UserFromContext(ctx), id, req.Email)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toInvite(inv))
}

func deleteInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}
	inviteID, err := pathID(r, "invite_id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.RevokeInvite(ctx, proto.UserFromContext(ctx), id, inviteID); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	info, err := be.InviteByToken(ctx, mux.Vars(r)["token"])
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, api.InviteInfo{
		OrganizationID:   info.OrgID,
		OrganizationName: info.OrgName,
		Email:            nullString(info.Email),
		Status:           info.Status,
	})
}

func postAcceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	m, err := be.AcceptInvite(ctx, proto.UserFromContext(ctx), mux.Vars(r)["token"])
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toOrgMember(m))
}
