package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix is prepended to the admin email to form the Redis key.
const KeyPrefix = "openclass:tokens:"

// RedisStore shares a session between processes through Redis. A zero TTL keeps the key
// until it is overwritten or cleared.
type RedisStore struct {
	redis redis.Cmdable
	key   string
	ttl   time.Duration
}

func NewRedisStore(client redis.Cmdable, adminEmail string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redis: client,
		key:   KeyPrefix + adminEmail,
		ttl:   ttl,
	}
}

// Key returns the Redis key the pair is stored under.
func (s *RedisStore) Key() string {
	return s.key
}

func (s *RedisStore) Load(ctx context.Context) (authenticationhandler.TokenPair, bool, error) {
	var pair authenticationhandler.TokenPair

	data, err := s.redis.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return pair, false, nil
	}
	if err != nil {
		return pair, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return pair, false, fmt.Errorf("decoding tokens at %s: %w", s.key, err)
	}
	return pair, true, nil
}

func (s *RedisStore) Save(ctx context.Context, pair authenticationhandler.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, s.key, data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.redis.Del(ctx, s.key).Err()
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	if s.redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
