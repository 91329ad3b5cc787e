package proto

import "time"

// User is an interface representing a user.
type User interface {
	// ID returns the user's ID.
	ID() int64
	// Username returns the user's username.
	Username() string
	// Email returns the user's email, if any.
	Email() string
	// IsAdmin returns whether the user is a platform admin.
	IsAdmin() bool
	// Password returns the user's password hash.
	Password() string
	// CreatedAt returns the time the user was created.
	CreatedAt() time.Time
}

// UserOptions are options for creating a user.
type UserOptions struct {
	// Admin is whether the user is an admin.
	Admin bool
	// Email is the user's email.
	Email string
	// Password is the plain text password. It's hashed before it's stored.
	Password string
}

// UserUpdate holds the fields an admin may change on a user. Nil fields are
// left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Admin    *bool
}
