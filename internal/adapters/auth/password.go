package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"

	"confdata/internal/domain"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher that bcrypts the hex SHA256 of salt+password.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) GenerateSalt() (string, error) {
	saltBytes := make([]byte, 32)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(saltBytes), nil
}

func (h *bcryptHasher) Hash(salt, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(prehash(salt, password)), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare also accepts Django pbkdf2_sha256 hashes carried over from the
// original user table; their salt is embedded in the hash.
func (h *bcryptHasher) Compare(hash, salt, password string) error {
	if strings.HasPrefix(hash, djangoPBKDF2Prefix) {
		return compareDjangoPBKDF2(hash, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(prehash(salt, password)))
}

const djangoPBKDF2Prefix = "pbkdf2_sha256$"

var errPasswordMismatch = errors.New("password does not match")

// compareDjangoPBKDF2 checks "pbkdf2_sha256$<iterations>$<salt>$<base64 key>".
func compareDjangoPBKDF2(encoded, password string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 {
		return errors.New("malformed pbkdf2 hash")
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return fmt.Errorf("malformed pbkdf2 iterations %q", parts[1])
	}
	want, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return fmt.Errorf("malformed pbkdf2 key: %w", err)
	}
	got := pbkdf2.Key([]byte(password), []byte(parts[2]), iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return errPasswordMismatch
	}
	return nil
}

// bcrypt truncates input at 72 bytes; the digest keeps long passwords significant.
func prehash(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
