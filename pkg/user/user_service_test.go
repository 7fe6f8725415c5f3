package user

import (
	"context"
	"testing"
	"time"

	"tmm-backend/domain"
	"tmm-backend/internal/testutil"
	"tmm-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (UserService, UserRepository, jwt.JWTService) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewUserService(repo, jwtService), repo, jwtService
}

func TestLoginAndValidateSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	created, err := svc.EnsureAdmin(ctx, "Admin@TMM.com ", "Admin", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin@tmm.com", "Admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "admin@tmm.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin@tmm.com", res.User.Email)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)

	session, err := svc.ValidateSession(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, session.UserID)
	assert.Equal(t, domain.RoleAdmin, session.Role)

	me, err := svc.Me(ctx, session.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Admin", me.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	_, err := svc.EnsureAdmin(ctx, "admin@tmm.com", "Admin", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "admin@tmm.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@tmm.com", Password: "s3cret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestValidateSessionUnknownUser(t *testing.T) {
	svc, _, jwtService := newService(t)

	token, err := jwtService.GenerateTokenUser("9b2f7a4c-7d55-4a55-b0a0-1b1f0f0e7f11", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}
