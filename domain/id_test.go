package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/users/domain"
)

func TestResolveID(t *testing.T) {
	t.Run("object id hex", func(t *testing.T) {
		id := domain.ResolveID("65f1c2a9b4d3e2f1a0b9c8d7")
		generated, ok := id.(domain.GeneratedID)
		require.True(t, ok)
		assert.Equal(t, "65f1c2a9b4d3e2f1a0b9c8d7", generated.String())
		assert.Equal(t, "65f1c2a9b4d3e2f1a0b9c8d7", generated.ObjectID().Hex())
	})

	t.Run("uppercase hex is still an object id", func(t *testing.T) {
		id := domain.ResolveID("65F1C2A9B4D3E2F1A0B9C8D7")
		_, ok := id.(domain.GeneratedID)
		assert.True(t, ok)
		assert.Equal(t, "65f1c2a9b4d3e2f1a0b9c8d7", id.String())
	})

	t.Run("24 characters but not hex", func(t *testing.T) {
		id := domain.ResolveID("zzzzzzzzzzzzzzzzzzzzzzzz")
		assert.Equal(t, domain.CustomID("zzzzzzzzzzzzzzzzzzzzzzzz"), id)
	})

	t.Run("short custom id", func(t *testing.T) {
		id := domain.ResolveID("custom-id-123")
		assert.Equal(t, domain.CustomID("custom-id-123"), id)
		assert.Equal(t, "custom-id-123", id.String())
	})

	t.Run("hex of wrong length", func(t *testing.T) {
		id := domain.ResolveID("65f1c2a9b4d3e2f1a0b9c8d7aa")
		assert.Equal(t, domain.CustomID("65f1c2a9b4d3e2f1a0b9c8d7aa"), id)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, domain.CustomID(""), domain.ResolveID(""))
	})
}

func TestUserPatchIsEmpty(t *testing.T) {
	role := "admin"
	assert.True(t, domain.UserPatch{}.IsEmpty())
	assert.False(t, domain.UserPatch{Role: &role}.IsEmpty())
}
