package auth

import (
	"testing"
	"time"

	"ecommerce-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue(42, models.RoleAdmin)
	require.NoError(t, err)

	principal, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), principal.ID)
	assert.Equal(t, models.RoleAdmin, principal.Role)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).Issue(42, models.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestTokenExpiredRejected(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.Issue(42, models.RoleUser)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	_, err := tm.Verify("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestPrincipalCapabilities(t *testing.T) {
	admin := Principal{ID: 1, Role: models.RoleAdmin}
	user := Principal{ID: 2, Role: models.RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())

	assert.True(t, user.Owns(2))
	assert.False(t, user.Owns(3))

	assert.True(t, user.CanAccess(2))
	assert.False(t, user.CanAccess(1))
	assert.True(t, admin.CanAccess(2))
}
