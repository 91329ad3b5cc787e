package proto

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when a request carries no usable credential.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden is returned when the identity resolved but the action is
	// not permitted.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned when a username and password pair
	// doesn't match. It never tells whether the username exists.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrInvalidToken is returned when a bearer token is malformed or its
	// signature doesn't verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a bearer token is expired.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidAPIKey is returned when an API key doesn't resolve.
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrAPIKeyInactive is returned when an API key has been deactivated.
	ErrAPIKeyInactive = errors.New("API key is inactive")
	// ErrAPIKeyExpired is returned when an API key is past its expiry.
	ErrAPIKeyExpired = errors.New("API key has expired")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrOrgNotFound is returned when an organization is not found.
	ErrOrgNotFound = errors.New("organization not found")
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrBoardNotFound is returned when a board is not found.
	ErrBoardNotFound = errors.New("board not found")
	// ErrColumnNotFound is returned when a column is not found.
	ErrColumnNotFound = errors.New("column not found")
	// ErrCardNotFound is returned when a card is not found.
	ErrCardNotFound = errors.New("card not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrAPIKeyNotFound is returned when an API key is not found.
	ErrAPIKeyNotFound = errors.New("API key not found")
	// ErrInviteNotFound is returned when an invite is not found, revoked or
	// expired.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrMemberNotFound is returned when a membership row is not found.
	ErrMemberNotFound = errors.New("member not found")

	// ErrUserExist is returned when a username is taken.
	ErrUserExist = errors.New("username already exists")
	// ErrSlugExist is returned when an organization slug is taken.
	ErrSlugExist = errors.New("organization slug already exists")
	// ErrAlreadyMember is returned when a user is already a member of an
	// organization.
	ErrAlreadyMember = errors.New("user is already a member of this organization")
	// ErrAlreadyTeamMember is returned when a user is already in a team.
	ErrAlreadyTeamMember = errors.New("user is already in this team")
	// ErrNotOrgMember is returned when a user must belong to an
	// organization first.
	ErrNotOrgMember = errors.New("user is not a member of the organization")
	// ErrOwnerRemoval is returned when a member removal targets the
	// organization owner.
	ErrOwnerRemoval = errors.New("cannot remove the organization owner")
	// ErrSelfDemotion is returned when an admin tries to drop their own
	// admin flag.
	ErrSelfDemotion = errors.New("cannot remove your own admin privileges")
	// ErrSelfDeletion is returned when an admin tries to delete their own
	// account.
	ErrSelfDeletion = errors.New("cannot delete your own account")

	// ErrValidation matches every error built with NewValidationError.
	ErrValidation = errors.New("validation error")
)

type validationError struct {
	msg string
}

// NewValidationError returns an error for malformed input. It matches
// ErrValidation.
func NewValidationError(msg string) error {
	return &validationError{msg: msg}
}

// Error implements error.
func (e *validationError) Error() string {
	return e.msg
}

// Is implements errors.Is.
func (e *validationError) Is(target error) bool {
	return target == ErrValidation
}

type forbiddenError struct {
	msg string
}

// NewForbiddenError returns a refusal with a specific message. It matches
// ErrForbidden.
func NewForbiddenError(msg string) error {
	return &forbiddenError{msg: msg}
}

// Error implements error.
func (e *forbiddenError) Error() string {
	return e.msg
}

// Is implements errors.Is.
func (e *forbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// IsNotFound returns true if err is one of the not found errors.
func IsNotFound(err error) bool {
	for _, e := range []error{
		ErrUserNotFound,
		ErrOrgNotFound,
		ErrTeamNotFound,
		ErrBoardNotFound,
		ErrColumnNotFound,
		ErrCardNotFound,
		ErrCommentNotFound,
		ErrAPIKeyNotFound,
		ErrInviteNotFound,
		ErrMemberNotFound,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsUnauthenticated returns true if err means the credential didn't
// resolve to an identity.
func IsUnauthenticated(err error) bool {
	for _, e := range []error{
		ErrUnauthorized,
		ErrInvalidCredentials,
		ErrInvalidToken,
		ErrTokenExpired,
		ErrInvalidAPIKey,
		ErrAPIKeyInactive,
		ErrAPIKeyExpired,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsConflict returns true if err is a uniqueness violation.
func IsConflict(err error) bool {
	for _, e := range []error{
		ErrUserExist,
		ErrSlugExist,
		ErrAlreadyMember,
		ErrAlreadyTeamMember,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsBadRequest returns true if err is a rejected request that is neither a
// conflict nor a validation failure.
func IsBadRequest(err error) bool {
	for _, e := range []error{
		ErrNotOrgMember,
		ErrOwnerRemoval,
		ErrSelfDemotion,
		ErrSelfDeletion,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return errors.Is(err, ErrValidation)
}
