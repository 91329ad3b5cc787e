// Package access implements the authorization rules for organizations,
// teams and boards.
package access

import (
	"errors"
	"fmt"
)

// AccessLevel is the level of access a user has to a board. Levels are
// ordered, so a higher level includes every right of the lower ones.
type AccessLevel int // nolint: revive

const (
	// NoAccess hides the board.
	NoAccess AccessLevel = iota

	// ReadWriteAccess allows viewing and editing the board, its columns and
	// its cards.
	ReadWriteAccess

	// OwnerAccess adds the owner-only actions: delete and share.
	OwnerAccess
)

var levelNames = [...]string{
	NoAccess:        "no-access",
	ReadWriteAccess: "read-write",
	OwnerAccess:     "owner",
}

// ErrInvalidAccessLevel is returned when parsing an unknown access level.
var ErrInvalidAccessLevel = errors.New("invalid access level")

func (a AccessLevel) String() string {
	if a < 0 || int(a) >= len(levelNames) {
		return fmt.Sprintf("AccessLevel(%d)", int(a))
	}
	return levelNames[a]
}

// ParseAccessLevel returns the level named s.
func ParseAccessLevel(s string) (AccessLevel, error) {
	for l, name := range levelNames {
		if name == s {
			return AccessLevel(l), nil
		}
	}
	return NoAccess, fmt.Errorf("%w: %q", ErrInvalidAccessLevel, s)
}

// MarshalText encodes the level by name.
func (a AccessLevel) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(levelNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAccessLevel, int(a))
	}
	return []byte(levelNames[a]), nil
}

// UnmarshalText decodes a level name.
func (a *AccessLevel) UnmarshalText(text []byte) error {
	l, err := ParseAccessLevel(string(text))
	if err != nil {
		return err
	}
	*a = l
	return nil
}
