package service

import (
	"context"
	"testing"
	"time"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newClientService(store *memStore) (*ClientService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewClientService(store, tokens, bcrypt.MinCost), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	store := newMemStore()
	svc, tokens := newClientService(store)
	ctx := context.Background()

	token, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	principal, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, principal.Role)

	// Email is normalized, so login with lowercase works.
	token, err = svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc, _ := newClientService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other", Email: "a@b.com", Password: "y"})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := newMemStore()
	svc, _ := newClientService(store)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Alice", Email: "a@b.com", Password: "s3cret"})
	require.NoError(t, err)

	client, err := store.GetClientByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NotEqual(t, "s3cret", client.PasswordHash)
	assert.True(t, auth.CheckPassword(client.PasswordHash, "s3cret"))
}

func TestRegisterRoleDefaultsToUser(t *testing.T) {
	store := newMemStore()
	svc, tokens := newClientService(store)

	token, err := svc.Register(context.Background(), RegisterInput{
		Name: "Eve", Email: "eve@b.com", Password: "x", Role: "superuser",
	})
	require.NoError(t, err)

	principal, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, principal.Role)
}

func TestClientProfileAccessControl(t *testing.T) {
	store := newMemStore()
	svc, tokens := newClientService(store)
	ctx := context.Background()

	token, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	principal, err := tokens.Verify(token)
	require.NoError(t, err)

	// Owner can read and update.
	got, err := svc.GetClient(ctx, principal, principal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	updated, err := svc.UpdateClient(ctx, principal, principal.ID, UpdateInput{Name: "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)

	// Strangers cannot.
	_, err = svc.GetClient(ctx, otherPrincipal, principal.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Listing and deleting are admin-only.
	_, err = svc.ListClients(ctx, principal)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	err = svc.DeleteClient(ctx, principal, principal.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, svc.DeleteClient(ctx, adminPrincipal, principal.ID))
	_, err = svc.GetClient(ctx, adminPrincipal, principal.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
