package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret")}

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "user", user.Role)
	require.NotEqual(t, "s3cret", user.PasswordHash)

	token, logged, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims := parsed.Claims.(jwt.MapClaims)
	require.EqualValues(t, user.ID, claims["sub"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret")}

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "s3cret")
	require.ErrorIs(t, err, ErrConflict)
}

func TestLoginWrongCredentials(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret")}

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret")}

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	// Slips past the username check and hits the unique index on email,
	// exercising the duplicate-key path of the create itself.
	_, err = svc.Register(context.Background(), "bob", "alice@example.com", "s3cret")
	require.ErrorIs(t, err, ErrConflict)
}
