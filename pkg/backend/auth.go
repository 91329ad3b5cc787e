package backend

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/charmbracelet/kanban/pkg/proto"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt can hash without
// truncation.
const MaxPasswordLength = 72

const (
	apiKeyLength       = 32
	apiKeyLookupLength = 8
	apiKeyAlphabet     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ValidatePassword returns a validation error when password can't be hashed.
func ValidatePassword(password string) error {
	if password == "" {
		return proto.NewValidationError("password cannot be empty")
	}
	if len(password) > MaxPasswordLength {
		return proto.NewValidationError(fmt.Sprintf("password cannot be longer than %d bytes", MaxPasswordLength))
	}
	return nil
}

// HashPassword hashes the password using bcrypt.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	crypt, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(crypt), nil
}

// VerifyPassword verifies the password against the hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateAPIKey returns a new random API key made of prefix followed by 32
// alphanumeric characters.
func GenerateAPIKey(prefix string) (string, error) {
	buf := make([]byte, apiKeyLength)
	max := big.NewInt(int64(len(apiKeyAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate API key: %w", err)
		}
		buf[i] = apiKeyAlphabet[n.Int64()]
	}

	return prefix + string(buf), nil
}

// APIKeyLookup returns the non-secret part of key used to find its row: the
// configured prefix plus the first 8 random characters. It returns false
// when key doesn't have the expected shape.
func APIKeyLookup(prefix, key string) (string, bool) {
	if len(key) != len(prefix)+apiKeyLength || key[:len(prefix)] != prefix {
		return "", false
	}
	return key[:len(prefix)+apiKeyLookupLength], true
}

// HashAPIKey hashes an API key for storage. Keys are hashed like passwords.
func HashAPIKey(key string) (string, error) {
	crypt, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(crypt), nil
}

// VerifyAPIKey verifies a full API key against its stored hash.
func VerifyAPIKey(key, hash string) bool {
	return VerifyPassword(key, hash)
}

// fingerprint is the cache key of a verified secret. It never leaves the
// process.
func fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
