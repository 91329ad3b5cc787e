package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/kanban/pkg/api"
)

// Boards lists the boards the caller can see.
func (c *Client) Boards(ctx context.Context) ([]api.Board, error) {
	var bs []api.Board
	err := c.do(ctx, http.MethodGet, "/boards", nil, nil, &bs)
	return bs, err
}

// CreateBoard creates a board with the default columns.
func (c *Client) CreateBoard(ctx context.Context, name string) (api.BoardDetail, error) {
	var b api.BoardDetail
	err := c.do(ctx, http.MethodPost, "/boards", nil, api.BoardRequest{Name: name}, &b)
	return b, err
}

// Board returns a board with its columns and cards.
func (c *Client) Board(ctx context.Context, id int64) (api.BoardDetail, error) {
	var b api.BoardDetail
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%d", id), nil, nil, &b)
	return b, err
}

// RenameBoard renames a board.
func (c *Client) RenameBoard(ctx context.Context, id int64, name string) (api.Board, error) {
	var b api.Board
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/boards/%d", id), nil, api.BoardRequest{Name: name}, &b)
	return b, err
}

// DeleteBoard deletes a board and its contents.
func (c *Client) DeleteBoard(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/boards/%d", id), nil, nil, nil)
}

// ShareBoard replaces the sharing of a board.
func (c *Client) ShareBoard(ctx context.Context, id int64, req api.ShareRequest) (api.Board, error) {
	var b api.Board
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/boards/%d/share", id), nil, req, &b)
	return b, err
}

// CreateColumn adds a column to a board.
func (c *Client) CreateColumn(ctx context.Context, boardID int64, name string, position int) (api.Column, error) {
	var col api.Column
	err := c.do(ctx, http.MethodPost, "/columns", nil, api.ColumnRequest{BoardID: boardID, Name: name, Position: position}, &col)
	return col, err
}

// UpdateColumn renames and moves a column.
func (c *Client) UpdateColumn(ctx context.Context, id int64, name string, position int) (api.Column, error) {
	var col api.Column
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/columns/%d", id), nil, api.ColumnRequest{Name: name, Position: position}, &col)
	return col, err
}

// DeleteColumn deletes a column and its cards.
func (c *Client) DeleteColumn(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/columns/%d", id), nil, nil, nil)
}

// CreateCard adds a card to a column.
func (c *Client) CreateCard(ctx context.Context, req api.CardRequest) (api.Card, error) {
	var card api.Card
	err := c.do(ctx, http.MethodPost, "/cards", nil, req, &card)
	return card, err
}

// UpdateCard replaces a card. A zero ColumnID keeps it in its column.
func (c *Client) UpdateCard(ctx context.Context, id int64, req api.CardRequest) (api.Card, error) {
	var card api.Card
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cards/%d", id), nil, req, &card)
	return card, err
}

// DeleteCard deletes a card.
func (c *Client) DeleteCard(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cards/%d", id), nil, nil, nil)
}

// Comments lists the comments of a card.
func (c *Client) Comments(ctx context.Context, cardID int64) ([]api.Comment, error) {
	var cs []api.Comment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cards/%d/comments", cardID), nil, nil, &cs)
	return cs, err
}

// AddComment comments on a card.
func (c *Client) AddComment(ctx context.Context, cardID int64, body string) (api.Comment, error) {
	var cm api.Comment
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/cards/%d/comments", cardID), nil, api.CommentRequest{Body: body}, &cm)
	return cm, err
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil, nil)
}
