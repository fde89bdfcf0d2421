package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// listClient is the part of *redis.Client the sink uses.
type listClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Redis appends audit lines to a list, keeping only the newest maxLen lines
// when maxLen > 0.
type Redis struct {
	client listClient
	key    string
	maxLen int64
}

// NewRedis connects to addr and verifies the connection.
func NewRedis(addr, key string, maxLen int64) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	slog.Info("[Sink] Redis audit sink connected", "addr", addr, "key", key, "max_len", maxLen)
	return &Redis{client: client, key: key, maxLen: maxLen}, nil
}

func (r *Redis) Write(ctx context.Context, entry Entry) error {
	if err := r.client.RPush(ctx, r.key, entry.Line).Err(); err != nil {
		return fmt.Errorf("failed to push audit line: %w", err)
	}
	if r.maxLen > 0 {
		if err := r.client.LTrim(ctx, r.key, -r.maxLen, -1).Err(); err != nil {
			return fmt.Errorf("failed to trim audit list: %w", err)
		}
	}
	return nil
}

// Ping reports whether the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
