package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// StaticSalt is the fixed shared salt appended to every password before
// hashing. Inherited from the existing credential store: stored hashes are
// sha256(password + salt) hex, so changing this invalidates every account.
const StaticSalt = "!Coderslab12"

// PasswordHasher computes and compares credential hashes.
type PasswordHasher struct {
	salt string
}

// NewPasswordHasher constructs a hasher with the given salt.
func NewPasswordHasher(salt string) PasswordHasher {
	return PasswordHasher{salt: salt}
}

// Hash returns the hex sha256 of password + salt.
func (h PasswordHasher) Hash(password string) string {
	sum := sha256.Sum256([]byte(password + h.salt))
	return hex.EncodeToString(sum[:])
}

// Compare reports whether password hashes to stored.
func (h PasswordHasher) Compare(stored, password string) bool {
	computed := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(stored), []byte(computed)) == 1
}
