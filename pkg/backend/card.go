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

// CardOptions hold the fields of a card. A zero ColumnID on update keeps
// the card in its column.
type CardOptions struct {
	ColumnID    int64
	Title       string
	Description *string
	Position    int
}

func (o CardOptions) description() sql.NullString {
	if o.Description == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *o.Description, Valid: true}
}

func cardTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", proto.NewValidationError("card title cannot be empty")
	}
	return title, nil
}

// CreateCard adds a card to a column.
func (d *Backend) CreateCard(ctx context.Context, user proto.User, opts CardOptions) (models.Card, error) {
	title, err := cardTitle(opts.Title)
	if err != nil {
		return models.Card{}, err
	}

	var card models.Card
	err = d.modifyColumn(ctx, user, opts.ColumnID, func(tx *db.Tx, _ access.Actor, col models.Column) error {
		card, err = d.store.CreateCard(ctx, tx, col.ID, title, opts.description(), opts.Position)
		return db.WrapError(err)
	})
	return card, err
}

// modifyCard runs fn for a card of a board the user may modify.
func (d *Backend) modifyCard(ctx context.Context, user proto.User, id int64, fn func(tx *db.Tx, a access.Actor, card models.Card) error) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		a, err := d.actor(ctx, tx, user)
		if err != nil {
			return err
		}

		card, board, err := d.cardBoard(ctx, tx, id)
		if err != nil {
			return err
		}
		if !access.CanModifyBoard(a, boardFacts(board)) {
			return proto.ErrForbidden
		}

		return fn(tx, a, card)
	})
}

// UpdateCard replaces the title, description and position of a card. When
// opts.ColumnID names another column the card moves there, which needs
// modify access on the target board too.
func (d *Backend) UpdateCard(ctx context.Context, user proto.User, id int64, opts CardOptions) (models.Card, error) {
	title, err := cardTitle(opts.Title)
	if err != nil {
		return models.Card{}, err
	}

	var card models.Card
	err = d.modifyCard(ctx, user, id, func(tx *db.Tx, a access.Actor, c models.Card) error {
		if opts.ColumnID != 0 && opts.ColumnID != c.ColumnID {
			col, board, err := d.columnBoard(ctx, tx, opts.ColumnID)
			if err != nil {
				return err
			}
			if !access.CanModifyBoard(a, boardFacts(board)) {
				return proto.ErrForbidden
			}
			c.ColumnID = col.ID
		}

		c.Title = title
		c.Description = opts.description()
		c.Position = opts.Position
		c.UpdatedAt = d.now().UTC()
		if err := d.store.UpdateCard(ctx, tx, c); err != nil {
			return db.WrapError(err)
		}

		card = c
		return nil
	})
	return card, err
}

// DeleteCard deletes a card and its comments.
func (d *Backend) DeleteCard(ctx context.Context, user proto.User, id int64) error {
	return d.modifyCard(ctx, user, id, func(tx *db.Tx, _ access.Actor, _ models.Card) error {
		if err := d.store.DeleteCommentsByCard(ctx, tx, id); err != nil {
			return db.WrapError(err)
		}
		return db.WrapError(d.store.DeleteCardByID(ctx, tx, id))
	})
}

// Comments lists the comments of a card, oldest first.
func (d *Backend) Comments(ctx context.Context, user proto.User, cardID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		a, err := d.actor(ctx, tx, user)
		if err != nil {
			return err
		}

		_, board, err := d.cardBoard(ctx, tx, cardID)
		if err != nil {
			return err
		}
		if !access.CanAccessBoard(a, boardFacts(board)) {
			return proto.ErrForbidden
		}

		comments, err = d.store.ListCommentsByCard(ctx, tx, cardID)
		return db.WrapError(err)
	})
	return comments, err
}

// AddComment comments on a card. Anyone who can see the board may.
func (d *Backend) AddComment(ctx context.Context, user proto.User, cardID int64, body string) (models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Comment{}, proto.NewValidationError("comment cannot be empty")
	}

	var comment models.Comment
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		a, err := d.actor(ctx, tx, user)
		if err != nil {
			return err
		}

		_, board, err := d.cardBoard(ctx, tx, cardID)
		if err != nil {
			return err
		}
		if !access.CanAccessBoard(a, boardFacts(board)) {
			return proto.ErrForbidden
		}

		comment, err = d.store.CreateComment(ctx, tx, cardID, user.ID(), body)
		return db.WrapError(err)
	})
	return comment, err
}

// DeleteComment deletes a comment. The author and the board owner may.
func (d *Backend) DeleteComment(ctx context.Context, user proto.User, id int64) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		a, err := d.actor(ctx, tx, user)
		if err != nil {
			return err
		}

		comment, err := d.store.GetCommentByID(ctx, tx, id)
		if err != nil {
			return wrapNotFound(err, proto.ErrCommentNotFound)
		}

		_, board, err := d.cardBoard(ctx, tx, comment.CardID)
		if err != nil {
			return err
		}
		if !access.CanDeleteComment(a, boardFacts(board), comment.UserID) {
			return proto.ErrForbidden
		}

		return db.WrapError(d.store.DeleteCommentByID(ctx, tx, id))
	})
}
