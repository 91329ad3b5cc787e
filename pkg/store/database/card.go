package database

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/store"
)

type cardStore struct{}

var _ store.CardStore = (*cardStore)(nil)

// CreateCard implements store.CardStore.
func (*cardStore) CreateCard(ctx context.Context, h db.Handler, columnID int64, title string, description sql.NullString, position int) (models.Card, error) {
	query := h.Rebind(`
		INSERT INTO
		  cards (column_id, title, description, position, updated_at)
		VALUES
		  (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING *
	`)
	var card models.Card
	err := h.GetContext(ctx, &card, query, columnID, title, description, position)
	return card, err //nolint:wrapcheck
}

// GetCardByID implements store.CardStore.
func (*cardStore) GetCardByID(ctx context.Context, h db.Handler, id int64) (models.Card, error) {
	query := h.Rebind(`SELECT * FROM cards WHERE id = ?`)
	var card models.Card
	err := h.GetContext(ctx, &card, query, id)
	return card, err //nolint:wrapcheck
}

// ListCardsByBoard implements store.CardStore.
func (*cardStore) ListCardsByBoard(ctx context.Context, h db.Handler, boardID int64) ([]models.Card, error) {
	query := h.Rebind(`
		SELECT
		  c.*
		FROM
		  cards c
		  JOIN columns col ON col.id = c.column_id
		WHERE
		  col.board_id = ?
		ORDER BY
		  c.column_id ASC,
		  c.position ASC,
		  c.id ASC
	`)
	var cards []models.Card
	err := h.SelectContext(ctx, &cards, query, boardID)
	return cards, err //nolint:wrapcheck
}

// UpdateCard implements store.CardStore.
func (*cardStore) UpdateCard(ctx context.Context, h db.Handler, card models.Card) error {
	query := h.Rebind(`
		UPDATE
		  cards
		SET
		  column_id = ?,
		  title = ?,
		  description = ?,
		  position = ?,
		  updated_at = CURRENT_TIMESTAMP
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, card.ColumnID, card.Title, card.Description, card.Position, card.ID)
	return err //nolint:wrapcheck
}

// DeleteCardByID implements store.CardStore.
func (*cardStore) DeleteCardByID(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM cards WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteCardsByColumn implements store.CardStore.
func (*cardStore) DeleteCardsByColumn(ctx context.Context, h db.Handler, columnID int64) error {
	query := h.Rebind(`DELETE FROM cards WHERE column_id = ?`)
	_, err := h.ExecContext(ctx, query, columnID)
	return err //nolint:wrapcheck
}

// DeleteCardsByBoard implements store.CardStore.
func (*cardStore) DeleteCardsByBoard(ctx context.Context, h db.Handler, boardID int64) error {
	query := h.Rebind(`
		DELETE FROM cards
		WHERE
		  column_id IN (
		    SELECT
		      id
		    FROM
		      columns
		    WHERE
		      board_id = ?
		  )
	`)
	_, err := h.ExecContext(ctx, query, boardID)
	return err //nolint:wrapcheck
}

// CreateComment implements store.CardStore.
func (s *cardStore) CreateComment(ctx context.Context, h db.Handler, cardID, userID int64, body string) (models.Comment, error) {
	query := h.Rebind(`
		INSERT INTO
		  comments (card_id, user_id, body)
		VALUES
		  (?, ?, ?) RETURNING id
	`)
	var id int64
	if err := h.GetContext(ctx, &id, query, cardID, userID, body); err != nil {
		return models.Comment{}, err //nolint:wrapcheck
	}

	return s.GetCommentByID(ctx, h, id)
}

const selectComments = `
		SELECT
		  cm.id,
		  cm.card_id,
		  cm.user_id,
		  u.username,
		  cm.body,
		  cm.created_at
		FROM
		  comments cm
		  JOIN users u ON u.id = cm.user_id
`

// GetCommentByID implements store.CardStore.
func (*cardStore) GetCommentByID(ctx context.Context, h db.Handler, id int64) (models.Comment, error) {
	query := h.Rebind(selectComments + `
		WHERE
		  cm.id = ?
	`)
	var c models.Comment
	err := h.GetContext(ctx, &c, query, id)
	return c, err //nolint:wrapcheck
}

// ListCommentsByCard implements store.CardStore.
func (*cardStore) ListCommentsByCard(ctx context.Context, h db.Handler, cardID int64) ([]models.Comment, error) {
	query := h.Rebind(selectComments + `
		WHERE
		  cm.card_id = ?
		ORDER BY
		  cm.id ASC
	`)
	var cs []models.Comment
	err := h.SelectContext(ctx, &cs, query, cardID)
	return cs, err //nolint:wrapcheck
}

// DeleteCommentByID implements store.CardStore.
func (*cardStore) DeleteCommentByID(ctx context.Context, h db.Handler, id int64) error {
	query := h.Rebind(`DELETE FROM comments WHERE id = ?`)
	_, err := h.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteCommentsByCard implements store.CardStore.
func (*cardStore) DeleteCommentsByCard(ctx context.Context, h db.Handler, cardID int64) error {
	query := h.Rebind(`DELETE FROM comments WHERE card_id = ?`)
	_, err := h.ExecContext(ctx, query, cardID)
	return err //nolint:wrapcheck
}

// DeleteCommentsByColumn implements store.CardStore.
func (*cardStore) DeleteCommentsByColumn(ctx context.Context, h db.Handler, columnID int64) error {
	query := h.Rebind(`
		DELETE FROM comments
		WHERE
		  card_id IN (
		    SELECT
		      id
		    FROM
		      cards
		    WHERE
		      column_id = ?
		  )
	`)
	_, err := h.ExecContext(ctx, query, columnID)
	return err //nolint:wrapcheck
}

// DeleteCommentsByBoard implements store.CardStore.
func (*cardStore) DeleteCommentsByBoard(ctx context.Context, h db.Handler, boardID int64) error {
	query := h.Rebind(`
		DELETE FROM comments
		WHERE
		  card_id IN (
		    SELECT
		      c.id
		    FROM
		      cards c
		      JOIN columns col ON col.id = c.column_id
		    WHERE
		      col.board_id = ?
		  )
	`)
	_, err := h.ExecContext(ctx, query, boardID)
	return err //nolint:wrapcheck
}

// DeleteCommentsByUser implements store.CardStore.
func (*cardStore) DeleteCommentsByUser(ctx context.Context, h db.Handler, userID int64) error {
	query := h.Rebind(`DELETE FROM comments WHERE user_id = ?`)
	_, err := h.ExecContext(ctx, query, userID)
	return err //nolint:wrapcheck
}
