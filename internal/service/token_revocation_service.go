package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const RevokedTokenKeyPrefix = "revoked_token:"

// TokenRevocationService remembers admin tokens that were logged out before
// they expired.
type TokenRevocationService interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenRevocation struct {
	client *redis.Client
}

func NewRedisTokenRevocation(client *redis.Client) TokenRevocationService {
	return &redisTokenRevocation{client: client}
}

func (s *redisTokenRevocation) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, RevokedTokenKeyPrefix+tokenID, "1", ttl).Err()
}

func (s *redisTokenRevocation) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, RevokedTokenKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type memoryTokenRevocation struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryTokenRevocation keeps revocations in process; used when Redis is
// not configured.
func NewMemoryTokenRevocation() TokenRevocationService {
	return &memoryTokenRevocation{revoked: map[string]time.Time{}, now: time.Now}
}

func (s *memoryTokenRevocation) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, expiry := range s.revoked {
		if !expiry.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (s *memoryTokenRevocation) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.revoked[tokenID]
	return ok && expiry.After(s.now()), nil
}
