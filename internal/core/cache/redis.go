package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clicksoft-api/internal/domain"
)

const tokenKeyPrefix = "auth:token:"

func NewClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// TokenStore keeps access tokens in Redis. Keys expire together with the
// token, so an expired session disappears without a sweep.
type TokenStore struct {
	RDB redis.UniversalClient
	now func() time.Time
}

func NewTokenStore(rdb redis.UniversalClient) *TokenStore {
	return &TokenStore{RDB: rdb, now: time.Now}
}

func tokenKey(id string) string { return tokenKeyPrefix + id }

func (s *TokenStore) Save(ctx context.Context, at *domain.AccessToken) error {
	b, err := json.Marshal(at)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if at.ExpiresAt != nil {
		ttl = at.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}
	return s.RDB.Set(ctx, tokenKey(at.ID), b, ttl).Err()
}

func (s *TokenStore) Get(ctx context.Context, id string) (*domain.AccessToken, error) {
	b, err := s.RDB.Get(ctx, tokenKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("access token: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var at domain.AccessToken
	if err := json.Unmarshal(b, &at); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}
	return &at, nil
}

func (s *TokenStore) Touch(ctx context.Context, id string) error {
	at, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	at.LastUsedAt = &now
	b, err := json.Marshal(at)
	if err != nil {
		return err
	}
	// XX: a token revoked meanwhile stays revoked
	err = s.RDB.SetArgs(ctx, tokenKey(id), b, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("access token: %w", domain.ErrNotFound)
	}
	return err
}

func (s *TokenStore) Delete(ctx context.Context, userID uint, id string) error {
	at, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if at.UserID != userID {
		return fmt.Errorf("access token: %w", domain.ErrNotFound)
	}
	n, err := s.RDB.Del(ctx, tokenKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("access token: %w", domain.ErrNotFound)
	}
	return nil
}
