package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKey = "jarvis:history"
	redisCap = 1000
)

// RedisStore keeps the action history in a capped Redis list, newest first.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Append(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, redisKey, payload)
	pipe.LTrim(ctx, redisKey, 0, redisCap-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	return nil
}

func (s *RedisStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = redisCap
	}

	raw, err := s.client.LRange(ctx, redisKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}

	entries := make([]Entry, 0, len(raw))

	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
