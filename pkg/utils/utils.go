package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxUsernameLength is the longest username accepted.
const MaxUsernameLength = 64

// SanitizeUsername returns a sanitized version of the given username.
func SanitizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername returns an error if the given username is invalid.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username cannot be longer than %d characters", MaxUsernameLength)
	}

	if username[0] == '-' {
		return fmt.Errorf("username cannot start with a hyphen")
	}

	for _, r := range username {
		if !isLowerAlnum(r) && r != '-' && r != '_' {
			return fmt.Errorf("username can only contain lowercase letters, numbers, hyphens, and underscores")
		}
	}

	return nil
}

// Slugify turns a display name into a URL friendly slug. Runs of anything
// other than letters and digits collapse into a single hyphen.
func Slugify(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if isLowerAlnum(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// ValidateSlug returns an error if the given slug is invalid.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}

	if slug != Slugify(slug) {
		return fmt.Errorf("slug can only contain lowercase letters, numbers, and single hyphens")
	}

	return nil
}

func isLowerAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLower(r) || unicode.IsDigit(r))
}
