package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/api"
	"github.com/charmbracelet/kanban/pkg/backend"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/gorilla/mux"
)

// BoardController registers the board, column, card and comment routes.
func BoardController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/boards", getBoards).Methods(http.MethodGet)
	r.HandleFunc("/boards", postBoard).Methods(http.MethodPost)
	r.HandleFunc("/boards/{id:[0-9]+}", getBoard).Methods(http.MethodGet)
	r.HandleFunc("/boards/{id:[0-9]+}", putBoard).Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/boards/{id:[0-9]+}", deleteBoard).Methods(http.MethodDelete)
	r.HandleFunc("/boards/{id:[0-9]+}/share", postShareBoard).Methods(http.MethodPost)

	r.HandleFunc("/columns", postColumn).Methods(http.MethodPost)
	r.HandleFunc("/columns/{id:[0-9]+}", putColumn).Methods(http.MethodPut)
	r.HandleFunc("/columns/{id:[0-9]+}", deleteColumn).Methods(http.MethodDelete)

	r.HandleFunc("/cards", postCard).Methods(http.MethodPost)
	r.HandleFunc("/cards/{id:[0-9]+}", putCard).Methods(http.MethodPut)
	r.HandleFunc("/cards/{id:[0-9]+}", deleteCard).Methods(http.MethodDelete)

	r.HandleFunc("/cards/{id:[0-9]+}/comments", getComments).Methods(http.MethodGet)
	r.HandleFunc("/cards/{id:[0-9]+}/comments", postComment).Methods(http.MethodPost)
	r.HandleFunc("/comments/{id:[0-9]+}", deleteComment).Methods(http.MethodDelete)
}

func getBoards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	boards, err := be.Boards(ctx, proto.UserFromContext(ctx))
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]api.Board, 0, len(boards))
	for _, b := range boards {
		out = append(out, toAccessibleBoard(b))
	}
	renderJSON(w, http.StatusOK, out)
}

func postBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.BoardRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	board, err := be.CreateBoard(ctx, proto.UserFromContext(ctx), req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toBoardDetail(board))
}

func getBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	board, err := be.Board(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toBoardDetail(board))
}

func putBoard(w http.ResponseWriter, r *http.Request) {
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

	board, err := be.UpdateBoard(ctx, proto.UserFromContext(ctx), id, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toAccessibleBoard(board))
}

func deleteBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteBoard(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func postShareBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.ShareRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	board, err := be.ShareBoard(ctx, proto.UserFromContext(ctx), id, backend.ShareOptions{
		TeamID:      req.TeamID,
		OrgID:       req.OrganizationID,
		PublicToOrg: req.IsPublicToOrg,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toAccessibleBoard(board))
}

func postColumn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.ColumnRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	col, err := be.CreateColumn(ctx, proto.UserFromContext(ctx), req.BoardID, req.Name, req.Position)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toColumn(col))
}

func putColumn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.ColumnRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	col, err := be.UpdateColumn(ctx, proto.UserFromContext(ctx), id, req.Name, req.Position)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toColumn(col))
}

func deleteColumn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteColumn(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func cardOptions(req api.CardRequest) backend.CardOptions {
	return backend.CardOptions{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}
}

func postCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req api.CardRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	card, err := be.CreateCard(ctx, proto.UserFromContext(ctx), cardOptions(req))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toCard(card))
}

func putCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.CardRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	card, err := be.UpdateCard(ctx, proto.UserFromContext(ctx), id, cardOptions(req))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toCard(card))
}

func deleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteCard(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}

func getComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	comments, err := be.Comments(ctx, proto.UserFromContext(ctx), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]api.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, toComment(c))
	}
	renderJSON(w, http.StatusOK, out)
}

func postComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	var req api.CommentRequest
	if err := decode(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	c, err := be.AddComment(ctx, proto.UserFromContext(ctx), id, req.Body)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, toComment(c))
}

func deleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	id, err := pathID(r, "id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := be.DeleteComment(ctx, proto.UserFromContext(ctx), id); err != nil {
		renderError(w, r, err)
		return
	}

	renderOK(w)
}
