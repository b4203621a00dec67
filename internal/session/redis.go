package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hros/ess-gateway/internal/entity"
)

const redisKeyPrefix = "session:"

// RedisInterface is the slice of the Redis client the store needs. Narrowed
// so tests can substitute a fake.
type RedisInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisStore struct {
	rdb RedisInterface
}

func NewRedisStore(rdb RedisInterface) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Create(ctx context.Context, tokenID string, sess entity.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.rdb.Set(ctx, redisKeyPrefix+tokenID, data, ttl).Err()
}

func (s *RedisStore) Lookup(ctx context.Context, tokenID string) (*entity.Session, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+tokenID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	var sess entity.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, tokenID string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+tokenID).Err()
}
