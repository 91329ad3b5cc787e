package database

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

type columnStore struct{}

var _ store.ColumnStore = (*columnStore)(nil)

// CreateColumn implements store.ColumnStore.
func (*columnStore) CreateColumn(ctx context.Context, h db.Handler, boardID int64, name string, position int) (models.Column, error) {
	query := h.Rebind(`
		INSERT INTO
		  columns (board_id, name, position)
		VALUES
		  (?, ?, ?) RETURNING *
	`)
	var col models.Column
	err := h.GetContext(ctx, &col, query, boardID, name, position)
	return col, err //nolint:wrapcheck
}

// GetColumnByID implements store.ColumnStore.
func (*columnStore) GetColumnByID(ctx context.Context, h db.Handler, id int64) (models.Column, error) {
	query := h.Rebind(`SELECT * FROM columns WHERE id = ?`)
	var col models.Column
	err := h.GetContext(ctx, &col, query, id)
	return col, err //nolint:wrapcheck
}

// ListColumnsByBoard implements store.ColumnStore.
func (*columnStore) ListColumnsByBoard(ctx context.Context, h db.Handler, boardID int64) ([]models.Column, error) {
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  columns
		WHERE
		  board_id = ?
		ORDER BY
		  position ASC,
		  id ASC
	`)
	var cols []models.Column
	err := h.SelectContext(ctx, &cols, query, boardID)
	return cols, err //nolint:wrapcheck
}

// UpdateColumn implements store.ColumnStore.
func (*columnStore) UpdateColumn(ctx context.Context, h db.Handler, id int64, name string, position int) error {
	query := h.Rebind(`
		UPDATE
		  columns
		SET
		  name = ?,
		  position = ?
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, name, position, id)
	return err //nolint:wrapcheck
}

// DeleteColumnByID implements store.ColumnStore.
func (*columnStore) DeleteColumnByID(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM columns WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteColumnsByBoard implements store.ColumnStore.
func (*columnStore) DeleteColumnsByBoard(ctx context.Context, h db.Handler, boardID int64) error {
	query := h.Rebind(`DELETE FROM columns WHERE board_id = ?`)
	_, err := h.ExecContext(ctx, query, boardID)
	return err //nolint:wrapcheck
}
