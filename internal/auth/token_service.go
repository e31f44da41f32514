package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// SessionStore tracks which token ids (jti) are still live. A signed
// token whose jti is gone is treated as logged out, so revocation takes
// effect immediately instead of waiting for the JWT to expire.
type SessionStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Delete(ctx context.Context, jti string) error
}

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func sessionKey(jti string) string {
	return "session:" + jti
}

func (s *redisSessionStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(jti), strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, sessionKey(jti)).Err()
}

type TokenService interface {
	Generate(ctx context.Context, userID int64) (token string, expiresAt int64, err error)
	Validate(ctx context.Context, tokenStr string) (*Claims, error)
	Revoke(ctx context.Context, jti string) error
}

type tokenService struct {
	secret   []byte
	ttl      time.Duration
	sessions SessionStore
}

func NewTokenService(secret string, ttl time.Duration, sessions SessionStore) TokenService {
	return &tokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: sessions,
	}
}

func (s *tokenService) Generate(ctx context.Context, userID int64) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	jti := uuid.NewString()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}

	if err := s.sessions.Save(ctx, jti, userID, s.ttl); err != nil {
		return "", 0, err
	}

	return token, expiresAt.Unix(), nil
}

func (s *tokenService) Validate(ctx context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	exists, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		// Revoked at logout, or the store-side TTL ran out.
		return nil, ErrExpiredToken
	}

	return claims, nil
}

func (s *tokenService) Revoke(ctx context.Context, jti string) error {
	return s.sessions.Delete(ctx, jti)
}
