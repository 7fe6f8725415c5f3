package jwt

import (
	"testing"
	"time"

	"tmm-backend/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateTokenUser("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestExpiredToken(t *testing.T) {
	svc := &jwtService{
		secretKey: "secret",
		issuer:    issuer,
		ttl:       time.Minute,
		now:       func() time.Time { return time.Now().Add(-2 * time.Hour) },
	}

	token, err := svc.GenerateTokenUser("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	_, _, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret", time.Hour).GenerateTokenUser("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	_, _, err = NewJWTService("other", time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRejectsNoneAlgorithm(t *testing.T) {
	claims := jwtUserClaim{UserID: "user-1", Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = NewJWTService("secret", time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGarbageToken(t *testing.T) {
	_, _, err := NewJWTService("secret", time.Hour).GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
