package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	sessions map[string]int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]int64{}}
}

func (s *fakeSessionStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	s.sessions[jti] = userID
	return nil
}

func (s *fakeSessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	_, ok := s.sessions[jti]
	return ok, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, jti string) error {
	delete(s.sessions, jti)
	return nil
}

func TestGenerateAndValidate(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewTokenService("test-secret", time.Hour, store)
	ctx := context.Background()

	token, expiresAt, err := svc.Generate(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, newFakeSessionStore())

	_, err := svc.Validate(context.Background(), "not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()

	issuer := NewTokenService("secret-a", time.Hour, store)
	token, _, err := issuer.Generate(ctx, 1)
	require.NoError(t, err)

	verifier := NewTokenService("secret-b", time.Hour, store)
	_, err = verifier.Validate(ctx, token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateRejectsExpired(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("test-secret", -time.Minute, newFakeSessionStore())

	token, _, err := svc.Generate(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestRevokeInvalidatesToken(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := NewTokenService("test-secret", time.Hour, store)

	token, _, err := svc.Generate(ctx, 7)
	require.NoError(t, err)

	claims, err := svc.Validate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, claims.ID))

	// The signature still verifies but the session is gone.
	_, err = svc.Validate(ctx, token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newFakeSessionStore()
	svc := NewTokenService("test-secret", time.Hour, store)

	tokenA, _, err := svc.Generate(ctx, 1)
	require.NoError(t, err)
	tokenB, _, err := svc.Generate(ctx, 1)
	require.NoError(t, err)

	claimsA, err := svc.Validate(ctx, tokenA)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, claimsA.ID))

	_, err = svc.Validate(ctx, tokenB)
	assert.NoError(t, err, "revoking one session must not touch another")
}
