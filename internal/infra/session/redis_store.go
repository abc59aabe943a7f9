package session

import (
	"context"
	"encoding/json"
	"time"

	"ladx/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "auth:"
	sessionKeySuffix = ":token"
	signupKeyPrefix  = "signup:"
)

// redisStore is a SessionStore backed by Redis. Keys carry their own TTL
// so expiry needs no sweeper.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) service.SessionStore {
	return &redisStore{client: client}
}

func sessionKey(principalID uuid.UUID) string {
	return sessionKeyPrefix + principalID.String() + sessionKeySuffix
}

func signupKey(tempID uuid.UUID) string {
	return signupKeyPrefix + tempID.String()
}

func (s *redisStore) SaveSession(ctx context.Context, principalID uuid.UUID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(principalID), token, ttl).Err(); err != nil {
		return errors.Wrap(err, "save session")
	}

	return nil
}

func (s *redisStore) GetSession(ctx context.Context, principalID uuid.UUID) (string, error) {
	token, err := s.client.Get(ctx, sessionKey(principalID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", service.ErrSessionNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "get session")
	}

	return token, nil
}

func (s *redisStore) DeleteSession(ctx context.Context, principalID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(principalID)).Err(); err != nil {
		return errors.Wrap(err, "delete session")
	}

	return nil
}

func (s *redisStore) SavePendingSignup(ctx context.Context, signup *service.PendingSignup, ttl time.Duration) error {
	payload, err := json.Marshal(signup)
	if err != nil {
		return errors.Wrap(err, "marshal pending signup")
	}

	if err := s.client.Set(ctx, signupKey(signup.TempID), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "save pending signup")
	}

	return nil
}

func (s *redisStore) GetPendingSignup(ctx context.Context, tempID uuid.UUID) (*service.PendingSignup, error) {
	payload, err := s.client.Get(ctx, signupKey(tempID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrPendingSignupNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get pending signup")
	}

	var signup service.PendingSignup
	if err := json.Unmarshal(payload, &signup); err != nil {
		return nil, errors.Wrap(err, "unmarshal pending signup")
	}

	return &signup, nil
}

func (s *redisStore) DeletePendingSignup(ctx context.Context, tempID uuid.UUID) error {
	if err := s.client.Del(ctx, signupKey(tempID)).Err(); err != nil {
		return errors.Wrap(err, "delete pending signup")
	}

	return nil
}
