package redisclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FailureTracker counts table soft failures in Redis. Each counter expires
// window after the most recent failure, so a healthy table drops out on its own.
type FailureTracker struct {
	client *redis.Client
	window time.Duration
}

func NewFailureTracker(client *redis.Client, window time.Duration) *FailureTracker {
	return &FailureTracker{
		client: client,
		window: window,
	}
}

func failureKey(table string) string {
	return fmt.Sprintf("dashboard:table-failures:%s", table)
}

func (t *FailureTracker) RecordFailure(ctx context.Context, table string) error {
	key := failureKey(table)

	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, t.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record failure for %s: %w", table, err)
	}
	return nil
}

// Failures returns the live failure count for each table that has one.
func (t *FailureTracker) Failures(ctx context.Context, tables []string) (map[string]int64, error) {
	out := make(map[string]int64)
	if len(tables) == 0 {
		return out, nil
	}

	keys := make([]string, len(tables))
	for i, table := range tables {
		keys[i] = failureKey(table)
	}

	vals, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read failure counters: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		out[tables[i]] = n
	}
	return out, nil
}

func (t *FailureTracker) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}
