package store

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
)

// BoardStore is an interface for managing boards.
type BoardStore interface {
	CreateBoard(ctx context.Context, h db.Handler, ownerID int64, name string) (models.Board, error)
	GetBoardByID(ctx context.Context, h db.Handler, id int64) (models.Board, error)
	ListBoardCandidates(ctx context.Context, h db.Handler, userID int64) ([]models.Board, error)
	GetAllBoards(ctx context.Context, h db.Handler, limit, offset int) ([]models.Board, error)
	ListBoardIDsByOwner(ctx context.Context, h db.Handler, ownerID int64) ([]int64, error)
	UpdateBoard(ctx context.Context, h db.Handler, id int64, name string, ownerID int64) error
	ShareBoard(ctx context.Context, h db.Handler, id int64, teamID, orgID sql.NullInt64, public bool) error
	ClearSharedTeam(ctx context.Context, h db.Handler, teamID int64) error
	ClearBoardOrg(ctx context.Context, h db.Handler, orgID int64) error
	DeleteBoardByID(ctx context.Context, h db.Handler, id int64) error
}

// ColumnStore is an interface for managing board columns.
type ColumnStore interface {
	CreateColumn(ctx context.Context, h db.Handler, boardID int64, name string, position int) (models.Column, error)
	GetColumnByID(ctx context.Context, h db.Handler, id int64) (models.Column, error)
	ListColumnsByBoard(ctx context.Context, h db.Handler, boardID int64) ([]models.Column, error)
	UpdateColumn(ctx context.Context, h db.Handler, id int64, name string, position int) error
	DeleteColumnByID(ctx context.Context, h db.Handler, id int64) error
	DeleteColumnsByBoard(ctx context.Context, h db.Handler, boardID int64) error
}

// CardStore is an interface for managing cards and their comments.
type CardStore interface {
	CreateCard(ctx context.Context, h db.Handler, columnID int64, title string, description sql.NullString, position int) (models.Card, error)
	GetCardByID(ctx context.Context, h db.Handler, id int64) (models.Card, error)
	ListCardsByBoard(ctx context.Context, h db.Handler, boardID int64) ([]models.Card, error)
	UpdateCard(ctx context.Context, h db.Handler, card models.Card) error
	DeleteCardByID(ctx context.Context, h db.Handler, id int64) error
	DeleteCardsByColumn(ctx context.Context, h db.Handler, columnID int64) error
	DeleteCardsByBoard(ctx context.Context, h db.Handler, boardID int64) error

	CreateComment(ctx context.Context, h db.Handler, cardID, userID int64, body string) (models.Comment, error)
	GetCommentByID(ctx context.Context, h db.Handler, id int64) (models.Comment, error)
	ListCommentsByCard(ctx context.Context, h db.Handler, cardID int64) ([]models.Comment, error)
	DeleteCommentByID(ctx context.Context, h db.Handler, id int64) error
	DeleteCommentsByCard(ctx context.Context, h db.Handler, cardID int64) error
	DeleteCommentsByColumn(ctx context.Context, h db.Handler, columnID int64) error
	DeleteCommentsByBoard(ctx context.Context, h db.Handler, boardID int64) error
	DeleteCommentsByUser(ctx context.Context, h db.Handler, userID int64) error
}
