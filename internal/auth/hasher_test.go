package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashIsDeterministicHex(t *testing.T) {
	hasher := NewPasswordHasher(StaticSalt)

	first := hasher.Hash("tiger")
	second := hasher.Hash("tiger")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
}

// Pins the hash of the seeded scott/tiger account so a change to the salt
// or algorithm cannot silently lock every existing user out.
func TestHashMatchesStoredCredentials(t *testing.T) {
	hasher := NewPasswordHasher(StaticSalt)
	const stored = "2e29171d5286dda300af8eaeb85b616b2b1ef114a3afbdf4b39e990d7d8e4a90"

	assert.Equal(t, stored, hasher.Hash("tiger"))
	assert.True(t, hasher.Compare(stored, "tiger"))
	assert.False(t, hasher.Compare(stored, "wrong"))
}

func TestHashDependsOnSalt(t *testing.T) {
	assert.NotEqual(t,
		NewPasswordHasher(StaticSalt).Hash("tiger"),
		NewPasswordHasher("other").Hash("tiger"))
}

func TestCompare(t *testing.T) {
	hasher := NewPasswordHasher(StaticSalt)
	stored := hasher.Hash("tiger")

	assert.True(t, hasher.Compare(stored, "tiger"))
	assert.False(t, hasher.Compare(stored, "Tiger"))
	assert.False(t, hasher.Compare(stored, ""))
}
