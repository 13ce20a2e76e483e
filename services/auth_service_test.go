package services

import (
	"context"
	"testing"
	"time"

	"burger-shop/models"
	"burger-shop/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	auth := NewAuthService(store, "test-secret", time.Hour)

	user, err := auth.Signup(ctx, models.SignupRequest{Email: " Nadia@Example.com ", Username: "nadia", Password: "burger123"})
	require.NoError(t, err)
	assert.Equal(t, "nadia@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "burger123", user.Password)

	_, err = auth.Signup(ctx, models.SignupRequest{Email: "nadia@example.com", Username: "again", Password: "burger123"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	resp, err := auth.Login(ctx, models.LoginRequest{Email: "NADIA@example.com", Password: "burger123"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := utils.ValidateToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	_, err = auth.Login(ctx, models.LoginRequest{Email: "nadia@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = auth.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "burger123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	users := NewUserService(store)

	user := &models.User{Email: "a@b.c", Username: "old", Role: models.RoleCustomer}
	require.NoError(t, store.Users().Create(ctx, user))

	name, phone := "New Name", "0812"
	updated, err := users.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Username)

	got, err := users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0812", got.Phone)

	blank := ""
	_, err = users.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{Name: &blank})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = users.GetProfile(ctx, 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
