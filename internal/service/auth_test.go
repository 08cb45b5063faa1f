package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, "Michael", "michael@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Michael", claims.Name)

	loginToken, err := svc.Login(ctx, "michael@example.com", "password123")
	require.NoError(t, err)

	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Michael", "michael@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "michael@example.com", "different")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Michael", "michael@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "michael@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	claims, err := svc.ValidateToken("not.a.token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	issuer := NewAuthService(db, "secret-a")
	token, err := issuer.Register(ctx, "Michael", "michael@example.com", "password123")
	require.NoError(t, err)

	verifier := NewAuthService(db, "secret-b")
	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
