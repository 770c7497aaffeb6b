package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs sessions with Redis so the placement guard holds across
// server instances. Keys expire with the browser-session TTL instead of
// living forever.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultSessionTTL approximates a browser session; session storage is not
// meant to persist across visits.
const DefaultSessionTTL = 24 * time.Hour

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// OpenRedis connects a Redis client, failing fast when the server is not
// reachable rather than on first use.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, sessionKey(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	rk := sessionKey(sessionID)
	if err := s.client.HSet(ctx, rk, key, value).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	if err := s.client.Expire(ctx, rk, s.ttl).Err(); err != nil {
		return fmt.Errorf("session expire: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
