package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sefazor/travelmarket-backend/internal/models"
)

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// RedisStore keeps short-lived per-user state: staged checkouts and revoked tokens.
type RedisStore struct {
	client      *redis.Client
	checkoutTTL time.Duration
}

func NewRedisStore(client *redis.Client, checkoutTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, checkoutTTL: checkoutTTL}
}

func checkoutKey(userID uint) string {
	return fmt.Sprintf("checkout:%d", userID)
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

// StageCheckout replaces whatever the user had staged before.
func (s *RedisStore) StageCheckout(ctx context.Context, userID uint, staged models.StagedCheckout) error {
	raw, err := json.Marshal(staged)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, checkoutKey(userID), raw, s.checkoutTTL).Err()
}

// PeekCheckout reads the staged checkout without consuming it.
func (s *RedisStore) PeekCheckout(ctx context.Context, userID uint) (*models.StagedCheckout, error) {
	raw, err := s.client.Get(ctx, checkoutKey(userID)).Bytes()
	return decodeStaged(raw, err)
}

// TakeCheckout reads and deletes the staged checkout in one step.
// It returns nil when nothing is staged.
func (s *RedisStore) TakeCheckout(ctx context.Context, userID uint) (*models.StagedCheckout, error) {
	raw, err := s.client.GetDel(ctx, checkoutKey(userID)).Bytes()
	return decodeStaged(raw, err)
}

func decodeStaged(raw []byte, err error) (*models.StagedCheckout, error) {
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var staged models.StagedCheckout
	if err := json.Unmarshal(raw, &staged); err != nil {
		return nil, fmt.Errorf("decode staged checkout: %w", err)
	}
	return &staged, nil
}

func (s *RedisStore) DiscardCheckout(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, checkoutKey(userID)).Err()
}

// Revoke blacklists a token id until the token would have expired anyway.
func (s *RedisStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
