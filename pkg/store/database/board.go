package database

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

type boardStore struct{}

var _ store.BoardStore = (*boardStore)(nil)

// CreateBoard implements store.BoardStore.
func (*boardStore) CreateBoard(ctx context.Context, h db.Handler, ownerID int64, name string) (models.Board, error) {
	query := h.Rebind(`
		INSERT INTO
		  boards (name, user_id, updated_at)
		VALUES
		  (?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var board models.Board
	err := h.GetContext(ctx, &board, query, name, ownerID)
	return board, err //nolint:wrapcheck
}

// GetBoardByID implements store.BoardStore.
func (*boardStore) GetBoardByID(ctx context.Context, h db.Handler, id int64) (models.Board, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  boards
		WHERE
		  id = ?
	`)
	var board models.Board
	err := h.GetContext(ctx, &board, query, id)
	return board, err //nolint:wrapcheck
}

// ListBoardCandidates implements store.BoardStore. It returns every board
// the user might reach: owned, shared with one of the user's teams, or
// public to one of the user's organizations. Callers still run the access
// rules over the result.
func (*boardStore) ListBoardCandidates(ctx context.Context, h db.Handler, userID int64) ([]models.Board, error) {
	query := h.Rebind(`
		SELECT
		  b.*
		FROM
		  boards b
		WHERE
		  b.user_id = ?
		  OR b.shared_team_id IN (
		    SELECT
		      team_id
		    FROM
		      team_members
		    WHERE
		      user_id = ?
		  )
		  OR (
		    b.is_public_to_org = ?
		    AND b.org_id IN (
		      SELECT
		        org_id
		      FROM
		        organization_members
		      WHERE
		        user_id = ?
		    )
		  )
		ORDER BY
		  b.id ASC
	`)
	var boards []models.Board
	err := h.SelectContext(ctx, &boards, query, userID, userID, true, userID)
	return boards, err //nolint:wrapcheck
}

// GetAllBoards implements store.BoardStore.
func (*boardStore) GetAllBoards(ctx context.Context, h db.Handler, limit, offset int) ([]models.Board, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  boards
		ORDER BY
		  id ASC
		LIMIT ? OFFSET ?
	`)
	var boards []models.Board
	err := h.SelectContext(ctx, &boards, query, limit, offset)
	return boards, err //nolint:wrapcheck
}

// ListBoardIDsByOwner implements store.BoardStore.
func (*boardStore) ListBoardIDsByOwner(ctx context.Context, h db.Handler, ownerID int64) ([]int64, error) {
	query := h.Rebind(`SELECT id FROM boards WHERE user_id = ?`)
	var ids []int64
	err := h.SelectContext(ctx, &ids, query, ownerID)
	return ids, err //nolint:wrapcheck
}

// UpdateBoard implements store.BoardStore.
func (*boardStore) UpdateBoard(ctx context.Context, h db.Handler, id int64, name string, ownerID int64) error {
	query := h.Rebind(`
		UPDATE
		  boards
		SET
		  name = ?,
		  user_id = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, name, ownerID, id)
	return err //nolint:wrapcheck
}

// ShareBoard implements store.BoardStore.
func (*boardStore) ShareBoard(ctx context.Context, h db.Handler, id int64, teamID, orgID sql.NullInt64, public bool) error {
	query := h.Rebind(`
		UPDATE
		  boards
		SET
		  shared_team_id = ?,
		  org_id = ?,
		  is_public_to_org = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, teamID, orgID, public, id)
	return err //nolint:wrapcheck
}

// ClearSharedTeam implements store.BoardStore.
func (*boardStore) ClearSharedTeam(ctx context.Context, h db.Handler, teamID int64) error {
	query := h.Rebind(`
		UPDATE
		  boards
		SET
		  shared_team_id = NULL,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  shared_team_id = ?
	`)
	_, err := h.ExecContext(ctx, query, teamID)
	return err //nolint:wrapcheck
}

// ClearBoardOrg implements store.BoardStore.
func (*boardStore) ClearBoardOrg(ctx context.Context, h db.Handler, orgID int64) error {
	query := h.Rebind(`
		UPDATE
		  boards
		SET
		  org_id = NULL,
		  is_public_to_org = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  org_id = ?
	`)
	_, err := h.ExecContext(ctx, query, false, orgID)
	return err //nolint:wrapcheck
}

// DeleteBoardByID implements store.BoardStore.
func (*boardStore) DeleteBoardByID(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`
		DELETE FROM boards
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}
