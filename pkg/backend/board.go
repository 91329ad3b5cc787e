package backend

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/kanban/pkg/access"
	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
)

// DefaultColumns are the columns every new board starts with.
var DefaultColumns = []string{"To Do", "In Progress", "Done"}

// AccessibleBoard is a board with the access level of the user who loaded
// it.
type AccessibleBoard struct {
	models.Board
	Access access.AccessLevel
}

// BoardDetail is a board with its columns and cards.
type BoardDetail struct {
	AccessibleBoard
	Columns []models.Column
	Cards   []models.Card
}

// ShareOptions describe how a board is shared. A nil TeamID removes the team
// share. PublicToOrg needs an organization, either OrgID or the team's.
type ShareOptions struct {
	TeamID      *int64
	OrgID       *int64
	PublicToOrg bool
}

func boardName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", proto.NewValidationError("board name cannot be empty")
	}
	return name, nil
}

// boardForActor loads a board and the actor in tx.
func (d *Backend) boardForActor(ctx context.Context, tx db.Handler, user proto.User, id int64) (models.Board, access.Actor, error) {
	a, err := d.actor(ctx, tx, user)
	if err != nil {
		return models.Board{}, a, err
	}

	board, err := d.store.GetBoardByID(ctx, tx, id)
	if err != nil {
		return board, a, wrapNotFound(err, proto.ErrBoardNotFound)
	}

	return board, a, nil
}

// CreateBoard creates a board owned by user with the default columns.
func (d *Backend) CreateBoard(ctx context.Context, user proto.User, name string) (BoardDetail, error) {
	if user == nil {
		return BoardDetail{}, proto.ErrUnauthorized
	}

	return d.createBoard(ctx, user.ID(), name)
}

func (d *Backend) createBoard(ctx context.Context, ownerID int64, name string) (BoardDetail, error) {
	name, err := boardName(name)
	if err != nil {
		return BoardDetail{}, err
	}

	var detail BoardDetail
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetUserByID(ctx, tx, ownerID); err != nil {
			return wrapNotFound(err, proto.ErrUserNotFound)
		}

		board, err := d.store.CreateBoard(ctx, tx, ownerID, name)
		if err != nil {
			return db.WrapError(err)
		}
		detail.AccessibleBoard = AccessibleBoard{Board: board, Access: access.OwnerAccess}

		for i, n := range DefaultColumns {
			col, err := d.store.CreateColumn(ctx, tx, board.ID, n, i)
			if err != nil {
				return db.WrapError(err)
			}
			detail.Columns = append(detail.Columns, col)
		}

		return nil
	})
	return detail, err
}

// Boards lists the boards user can access: owned, shared with one of their
// teams, or public to one of their organizations.
func (d *Backend) Boards(ctx context.Context, user proto.User) ([]AccessibleBoard, error) {
	var boards []AccessibleBoard
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		a, err := d.actor(ctx, tx, user)
		if err != nil {
			return err
		}

		candidates, err := d.store.ListBoardCandidates(ctx, tx, user.ID())
		if err != nil {
			return db.WrapError(err)
		}

		seen := make(map[int64]struct{}, len(candidates))
		for _, b := range candidates {
			if _, ok := seen[b.ID]; ok {
				continue
			}
			seen[b.ID] = struct{}{}
			if level := access.BoardAccess(a, boardFacts(b)); level >= access.ReadWriteAccess {
				boards = append(boards, AccessibleBoard{Board: b, Access: level})
			}
		}
		return nil
	})
	return boards, err
}

// Board returns a board with its columns and cards.
func (d *Backend) Board(ctx context.Context, user proto.User, id int64) (BoardDetail, error) {
	var detail BoardDetail
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		board, a, err := d.boardForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		level := access.BoardAccess(a, boardFacts(board))
		if level < access.ReadWriteAccess {
			return proto.ErrForbidden
		}

		detail, err = d.boardDetail(ctx, tx, board)
		detail.Access = level
		return err
	})
	return detail, err
}

func (d *Backend) boardDetail(ctx context.Context, tx db.Handler, board models.Board) (BoardDetail, error) {
	cols, err := d.store.ListColumnsByBoard(ctx, tx, board.ID)
	if err != nil {
		return BoardDetail{}, db.WrapError(err)
	}

	cards, err := d.store.ListCardsByBoard(ctx, tx, board.ID)
	if err != nil {
		return BoardDetail{}, db.WrapError(err)
	}

	return BoardDetail{
		AccessibleBoard: AccessibleBoard{Board: board},
		Columns:         cols,
		Cards:           cards,
	}, nil
}

// UpdateBoard renames a board.
func (d *Backend) UpdateBoard(ctx context.Context, user proto.User, id int64, name string) (AccessibleBoard, error) {
	name, err := boardName(name)
	if err != nil {
		return AccessibleBoard{}, err
	}

	var board AccessibleBoard
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		b, a, err := d.boardForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanModifyBoard(a, boardFacts(b)) {
			return proto.ErrForbidden
		}

		if err := d.store.UpdateBoard(ctx, tx, id, name, b.UserID); err != nil {
			return db.WrapError(err)
		}
		b.Name = name
		board = AccessibleBoard{Board: b, Access: access.BoardAccess(a, boardFacts(b))}
		return nil
	})
	return board, err
}

// DeleteBoard deletes a board with its columns, cards and comments. Only the
// owner may.
func (d *Backend) DeleteBoard(ctx context.Context, user proto.User, id int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		board, a, err := d.boardForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanDeleteBoard(a, boardFacts(board)) {
			return proto.ErrForbidden
		}

		return d.deleteBoardTx(ctx, tx, id)
	})
}

func (d *Backend) deleteBoardTx(ctx context.Context, tx db.Handler, id int64) error {
	for _, step := range []func(context.Context, db.Handler, int64) error{
		d.store.DeleteCommentsByBoard,
		d.store.DeleteCardsByBoard,
		d.store.DeleteColumnsByBoard,
		d.store.DeleteBoardByID,
	} {
		if err := step(ctx, tx, id); err != nil {
			return db.WrapError(err)
		}
	}
	return nil
}

// ShareBoard changes the team share and organization visibility of a board.
// Only the owner may, and only with a team or organization they belong to.
func (d *Backend) ShareBoard(ctx context.Context, user proto.User, id int64, opts ShareOptions) (AccessibleBoard, error) {
	var board AccessibleBoard
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var (
			a   access.Actor
			err error
		)
		board.Board, a, err = d.boardForActor(ctx, tx, user, id)
		if err != nil {
			return err
		}
		if !access.CanShareBoard(a, boardFacts(board.Board)) {
			return proto.ErrForbidden
		}

		var teamID, orgID sql.NullInt64
		if opts.TeamID != nil && *opts.TeamID != 0 {
			_, org, err := d.teamWithOrg(ctx, tx, *opts.TeamID)
			if err != nil {
				return err
			}
			if opts.OrgID != nil && *opts.OrgID != org.ID {
				return proto.NewValidationError("team does not belong to the given organization")
			}
			if !access.CanViewOrg(a, orgFacts(org)) {
				return proto.ErrNotOrgMember
			}
			teamID = sql.NullInt64{Int64: *opts.TeamID, Valid: true}
			orgID = sql.NullInt64{Int64: org.ID, Valid: true}
		}

		if opts.OrgID != nil && *opts.OrgID != 0 && !orgID.Valid {
			org, err := d.store.GetOrgByID(ctx, tx, *opts.OrgID)
			if err != nil {
				return wrapNotFound(err, proto.ErrOrgNotFound)
			}
			if !access.CanViewOrg(a, orgFacts(org)) {
				return proto.ErrNotOrgMember
			}
			orgID = sql.NullInt64{Int64: org.ID, Valid: true}
		}

		if opts.PublicToOrg && !orgID.Valid {
			return proto.NewValidationError("an organization is required to make a board public")
		}

		if err := d.store.ShareBoard(ctx, tx, id, teamID, orgID, opts.PublicToOrg); err != nil {
			return db.WrapError(err)
		}

		board.SharedTeamID, board.OrgID, board.IsPublicToOrg = teamID, orgID, opts.PublicToOrg
		board.Access = access.OwnerAccess
		return nil
	})
	return board, err
}

// columnBoard loads a column and its board.
func (d *Backend) columnBoard(ctx context.Context, tx db.Handler, columnID int64) (models.Column, models.Board, error) {
	col, err := d.store.GetColumnByID(ctx, tx, columnID)
	if err != nil {
		return col, models.Board{}, wrapNotFound(err, proto.ErrColumnNotFound)
	}

	board, err := d.store.GetBoardByID(ctx, tx, col.BoardID)
	if err != nil {
		return col, board, wrapNotFound(err, proto.ErrBoardNotFound)
	}

	return col, board, nil
}

// cardBoard loads a card and its board.
func (d *Backend) cardBoard(ctx context.Context, tx db.Handler, cardID int64) (models.Card, models.Board, error) {
	card, err := d.store.GetCardByID(ctx, tx, cardID)
	if err != nil {
		return card, models.Board{}, wrapNotFound(err, proto.ErrCardNotFound)
	}

	_, board, err := d.columnBoard(ctx, tx, card.ColumnID)
	return card, board, err
}

// modifyColumn runs fn for a column of a board the user may modify.
func (d *Backend) modifyColumn(ctx context.Context, user proto.User, columnID int64, fn func(tx *db.Tx, a access.Actor, col models.Column) error) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		a, err := d.actor(ctx, tx, user)
		if err != nil {
			return err
		}

		col, board, err := d.columnBoard(ctx, tx, columnID)
		if err != nil {
			return err
		}
		if !access.CanModifyBoard(a, boardFacts(board)) {
			return proto.ErrForbidden
		}

		return fn(tx, a, col)
	})
}

// CreateColumn adds a column to a board.
func (d *Backend) CreateColumn(ctx context.Context, user proto.User, boardID int64, name string, position int) (models.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Column{}, proto.NewValidationError("column name cannot be empty")
	}

	var col models.Column
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		board, a, err := d.boardForActor(ctx, tx, user, boardID)
		if err != nil {
			return err
		}
		if !access.CanModifyBoard(a, boardFacts(board)) {
			return proto.ErrForbidden
		}

		col, err = d.store.CreateColumn(ctx, tx, boardID, name, position)
		return db.WrapError(err)
	})
	return col, err
}

// UpdateColumn renames or moves a column.
func (d *Backend) UpdateColumn(ctx context.Context, user proto.User, id int64, name string, position int) (models.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Column{}, proto.NewValidationError("column name cannot be empty")
	}

	var col models.Column
	err := d.modifyColumn(ctx, user, id, func(tx *db.Tx, _ access.Actor, c models.Column) error {
		if err := d.store.UpdateColumn(ctx, tx, id, name, position); err != nil {
			return db.WrapError(err)
		}
		c.Name, c.Position = name, position
		col = c
		return nil
	})
	return col, err
}

// DeleteColumn deletes a column with its cards and their comments.
func (d *Backend) DeleteColumn(ctx context.Context, user proto.User, id int64) error {
	return d.modifyColumn(ctx, user, id, func(tx *db.Tx, _ access.Actor, _ models.Column) error {
		for _, step := range []func(context.Context, db.Handler, int64) error{
			d.store.DeleteCommentsByColumn,
			d.store.DeleteCardsByColumn,
			d.store.DeleteColumnByID,
		} {
			if err := step(ctx, tx, id); err != nil {
				return db.WrapError(err)
			}
		}
		return nil
	})
}
