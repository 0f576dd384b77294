package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumhub/backend/internal/models"
)

func TestIssueAndVerify(t *testing.T) {
	gen := NewGenerator("test-secret", 10*time.Minute)

	user := &models.User{ID: 42, FullName: "Ana Li", Role: models.RoleAdmin}

	signed, err := gen.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	identity, err := gen.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, 42, identity.ID)
	assert.Equal(t, "Ana Li", identity.Name)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.True(t, identity.IsAdmin())
}

func TestVerify_Expired(t *testing.T) {
	gen := NewGenerator("test-secret", -1*time.Minute)

	signed, err := gen.Issue(&models.User{ID: 1, FullName: "Root", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = gen.Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	gen := NewGenerator("test-secret", 10*time.Minute)
	other := NewGenerator("other-secret", 10*time.Minute)

	signed, err := gen.Issue(&models.User{ID: 1, FullName: "Root", Role: models.RoleNormal})
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_TamperedPayload(t *testing.T) {
	gen := NewGenerator("test-secret", 10*time.Minute)

	signed, err := gen.Issue(&models.User{ID: 5, FullName: "Ana", Role: models.RoleNormal})
	require.NoError(t, err)

	// Swap out the payload segment; the signature no longer matches
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJ1aWQiOjEsInJvbGUiOjJ9." + parts[2]

	_, err = gen.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	gen := NewGenerator("test-secret", 10*time.Minute)

	_, err := gen.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestIdentityRoundTripForNormalUser(t *testing.T) {
	gen := NewGenerator("test-secret", 10*time.Minute)

	signed, err := gen.IssueIdentity(Identity{ID: 7, Name: "Luis", Role: models.RoleNormal})
	require.NoError(t, err)

	identity, err := gen.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 7, Name: "Luis", Role: models.RoleNormal}, identity)
	assert.False(t, identity.IsAdmin())
}
