package backend

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/kanban/pkg/db"
	"github.com/charmbracelet/kanban/pkg/db/models"
	"github.com/charmbracelet/kanban/pkg/proto"
	"github.com/charmbracelet/kanban/pkg/utils"
)

// User finds a user by username.
func (d *Backend) User(ctx context.Context, username string) (proto.User, error) {
	username = utils.SanitizeUsername(username)
	if err := utils.ValidateUsername(username); err != nil {
		return nil, proto.NewValidationError(err.Error())
	}

	m, err := d.store.FindUserByUsername(ctx, d.db, username)
	if err != nil {
		err = wrapNotFound(err, proto.ErrUserNotFound)
		if !errors.Is(err, proto.ErrUserNotFound) {
			d.logger.Error("error finding user", "username", username, "error", err)
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// UserByID finds a user by ID.
func (d *Backend) UserByID(ctx context.Context, id int64) (proto.User, error) {
	m, err := d.store.GetUserByID(ctx, d.db, id)
	if err != nil {
		err = wrapNotFound(err, proto.ErrUserNotFound)
		if !errors.Is(err, proto.ErrUserNotFound) {
			d.logger.Error("error finding user", "id", id, "error", err)
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// Users returns a page of users ordered by id.
func (d *Backend) Users(ctx context.Context, page Page) ([]proto.User, error) {
	limit, offset := page.limitOffset()
	ms, err := d.store.GetAllUsers(ctx, d.db, limit, offset)
	if err != nil {
		return nil, db.WrapError(err)
	}

	users := make([]proto.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, &user{user: m})
	}

	return users, nil
}

// CreateUser creates a new user.
func (d *Backend) CreateUser(ctx context.Context, username string, opts proto.UserOptions) (proto.User, error) {
	username = utils.SanitizeUsername(username)
	if err := utils.ValidateUsername(username); err != nil {
		return nil, proto.NewValidationError(err.Error())
	}

	var hash string
	if opts.Password != "" {
		var err error
		hash, err = HashPassword(opts.Password)
		if err != nil {
			return nil, err
		}
	}

	var id int64
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		id, err = d.store.CreateUser(ctx, tx, username, opts.Email, opts.Admin, hash)
		return err
	}); err != nil {
		return nil, wrapDuplicate(err, proto.ErrUserExist)
	}

	d.logger.Info("user created", "username", username, "admin", opts.Admin)
	return d.UserByID(ctx, id)
}

// UpdateUser changes a user's username, email or admin flag. An actor can't
// remove their own admin flag. A nil actor skips that check.
func (d *Backend) UpdateUser(ctx context.Context, actor proto.User, id int64, upd proto.UserUpdate) (proto.User, error) {
	if actor != nil && actor.ID() == id && upd.Admin != nil && !*upd.Admin {
		return nil, proto.ErrSelfDemotion
	}

	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := d.store.GetUserByID(ctx, tx, id)
		if err != nil {
			return wrapNotFound(err, proto.ErrUserNotFound)
		}

		username, email, admin := m.Username, m.Email.String, m.Admin
		if upd.Username != nil {
			username = utils.SanitizeUsername(*upd.Username)
			if err := utils.ValidateUsername(username); err != nil {
				return proto.NewValidationError(err.Error())
			}
		}
		if upd.Email != nil {
			email = *upd.Email
		}
		if upd.Admin != nil {
			admin = *upd.Admin
		}

		return wrapDuplicate(d.store.UpdateUser(ctx, tx, id, username, email, admin), proto.ErrUserExist)
	}); err != nil {
		return nil, err
	}

	return d.UserByID(ctx, id)
}

// SetAdmin sets the admin flag of a user.
func (d *Backend) SetAdmin(ctx context.Context, username string, admin bool) error {
	u, err := d.User(ctx, username)
	if err != nil {
		return err
	}

	_, err = d.UpdateUser(ctx, nil, u.ID(), proto.UserUpdate{Admin: &admin})
	return err
}

// SetPassword sets the password of a user.
func (d *Backend) SetPassword(ctx context.Context, id int64, rawPassword string) error {
	password, err := HashPassword(rawPassword)
	if err != nil {
		return err
	}

	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetUserByID(ctx, tx, id); err != nil {
			return wrapNotFound(err, proto.ErrUserNotFound)
		}

		return db.WrapError(d.store.SetUserPassword(ctx, tx, id, password))
	})
}

// DeleteUser deletes a user and everything they own: organizations with
// their teams, boards with their contents, comments, memberships, API keys
// and invites. It all happens in one transaction. An actor can't delete
// themself. A nil actor skips that check.
func (d *Backend) DeleteUser(ctx context.Context, actor proto.User, id int64) error {
	if actor != nil && actor.ID() == id {
		return proto.ErrSelfDeletion
	}

	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetUserByID(ctx, tx, id); err != nil {
			return wrapNotFound(err, proto.ErrUserNotFound)
		}

		orgs, err := d.store.ListOrgsByOwner(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}
		for _, o := range orgs {
			if err := d.deleteOrgTx(ctx, tx, o.ID); err != nil {
				return err
			}
		}

		boards, err := d.store.ListBoardIDsByOwner(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}
		for _, b := range boards {
			if err := d.deleteBoardTx(ctx, tx, b); err != nil {
				return err
			}
		}

		for _, step := range []func(context.Context, db.Handler, int64) error{
			d.store.DeleteCommentsByUser,
			d.store.RemoveUserTeamMemberships,
			d.store.RemoveUserOrgMemberships,
			d.store.DeleteAPIKeysByUserID,
			d.store.DeleteInvitesByUser,
			d.store.DeleteUserByID,
		} {
			if err := step(ctx, tx, id); err != nil {
				return db.WrapError(err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	d.logger.Info("user deleted", "id", id)
	return nil
}

// DeleteUserByUsername deletes a user by username.
func (d *Backend) DeleteUserByUsername(ctx context.Context, username string) error {
	u, err := d.User(ctx, username)
	if err != nil {
		return err
	}

	return d.DeleteUser(ctx, nil, u.ID())
}

// EnsureInitialAdmin creates the configured initial admin account when the
// users table is empty. It returns true when a user was created.
func (d *Backend) EnsureInitialAdmin(ctx context.Context) (bool, error) {
	ia := d.cfg.InitialAdmin
	if ia.Username == "" || ia.Password == "" {
		return false, nil
	}

	n, err := d.store.CountUsers(ctx, d.db)
	if err != nil {
		return false, db.WrapError(err)
	}
	if n > 0 {
		return false, nil
	}

	if _, err := d.CreateUser(ctx, ia.Username, proto.UserOptions{
		Admin:    true,
		Password: ia.Password,
	}); err != nil {
		return false, err
	}

	return true, nil
}

type user struct {
	user models.User
}

var _ proto.User = (*user)(nil)

// ID implements proto.User.
func (u *user) ID() int64 {
	return u.user.ID
}

// Username implements proto.User.
func (u *user) Username() string {
	return u.user.Username
}

// Email implements proto.User.
func (u *user) Email() string {
	return u.user.Email.String
}

// IsAdmin implements proto.User.
func (u *user) IsAdmin() bool {
	return u.user.Admin
}

// Password implements proto.User.
func (u *user) Password() string {
	return u.user.Password.String
}

// CreatedAt implements proto.User.
func (u *user) CreatedAt() time.Time {
	return u.user.CreatedAt
}
