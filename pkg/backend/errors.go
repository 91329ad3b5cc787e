package backend

import (
	"errors"

	"github.com/charmbracelet/kanban/pkg/db"
)

// wrapNotFound normalizes a store error and replaces a missing row with
// notFound.
func wrapNotFound(err error, notFound error) error {
	err = db.WrapError(err)
	if errors.Is(err, db.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// wrapDuplicate normalizes a store error and replaces a unique violation
// with dup.
func wrapDuplicate(err error, dup error) error {
	err = db.WrapError(err)
	if errors.Is(err, db.ErrDuplicateKey) {
		return dup
	}
	return err
}
