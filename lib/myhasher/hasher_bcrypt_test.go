package myhasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	hashed, err := hasher.Hash("Secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "Secret123", hashed)

	t.Run("Correct password verifies", func(t *testing.T) {
		assert.True(t, hasher.Verify(hashed, "Secret123"))
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		assert.False(t, hasher.Verify(hashed, "Secret124"))
	})

	t.Run("Garbage hash fails", func(t *testing.T) {
		assert.False(t, hasher.Verify("not-a-hash", "Secret123"))
	})

	t.Run("Hashes are salted", func(t *testing.T) {
		again, err := hasher.Hash("Secret123")
		assert.NoError(t, err)
		assert.NotEqual(t, hashed, again)
	})
}
