package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultKeyPrefix namespaces strategy keys in Redis.
const DefaultKeyPrefix = "hearts:strategy:"

// RedisStore keeps strategies as JSON values under prefix+key.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	log    logrus.FieldLogger
}

// NewRedisStore wraps an existing client. An empty prefix uses
// DefaultKeyPrefix; a nil logger uses the logrus standard logger.
func NewRedisStore(client redis.Cmdable, prefix string, log logrus.FieldLogger) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisStore{client: client, prefix: prefix, log: log}
}

// Lookup implements Store. redis.Nil is reported as not found.
func (s *RedisStore) Lookup(ctx context.Context, key string) (Strategy, bool, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Strategy{}, false, nil
	}
	if err != nil {
		return Strategy{}, false, fmt.Errorf("redis get: %w", err)
	}
	var st Strategy
	if err := json.Unmarshal(raw, &st); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Malformed strategy value")
		return Strategy{}, false, fmt.Errorf("decode strategy: %w", err)
	}
	return st, true, nil
}

// Put implements Writer.
func (s *RedisStore) Put(ctx context.Context, key string, st Strategy) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode strategy: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// PutAll writes many strategies in one pipeline.
func (s *RedisStore) PutAll(ctx context.Context, strategies map[string]Strategy) error {
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, st := range strategies {
			raw, err := json.Marshal(st)
			if err != nil {
				return fmt.Errorf("encode strategy %q: %w", key, err)
			}
			pipe.Set(ctx, s.prefix+key, raw, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	s.log.WithField("count", len(strategies)).Debug("Stored strategies")
	return nil
}
