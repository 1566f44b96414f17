package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fudosan-dx/satei-bot/internal/domain"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "satei:session:"

// Redis implements SessionStore on a Redis instance. Sessions are stored as
// JSON under satei:session:<userID>, optionally with a TTL so abandoned
// conversations age out of the store.
type Redis struct {
	client *redis.Client
	ttl    time.Duration // 0 = no expiry
}

// NewRedis connects to the Redis instance at addr and verifies connectivity.
func NewRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

// Get returns the stored session, or (nil, nil) when absent.
func (r *Redis) Get(ctx context.Context, userID string) (*domain.Session, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		// A malformed record is treated as no session at all; the engine
		// will start the user over rather than erroring the turn.
		slog.Warn("discarding malformed session", "user_id", userID, "error", err)
		return nil, nil
	}
	return &sess, nil
}

// Set upserts the session, refreshing the TTL when one is configured.
func (r *Redis) Set(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+sess.UserID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Delete removes the session for the user, if any.
func (r *Redis) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
