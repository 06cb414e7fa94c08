package repos

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	URL          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// OpenRedis parses the URL, applies timeouts and pings the server.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ReadTimeout = orDefault(cfg.ReadTimeout, 3*time.Second)
	opts.WriteTimeout = orDefault(cfg.WriteTimeout, 3*time.Second)
	opts.DialTimeout = orDefault(cfg.DialTimeout, 5*time.Second)

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// RedisStorageRepo keeps each visitor's storage in one hash.
type RedisStorageRepo struct{ rdb redis.UniversalClient }

func NewRedisStorageRepo(rdb redis.UniversalClient) *RedisStorageRepo {
	return &RedisStorageRepo{rdb: rdb}
}

func (r *RedisStorageRepo) For(sid string) *RedisStorage {
	return &RedisStorage{rdb: r.rdb, hash: "dealpulse:storage:" + sid}
}

type RedisStorage struct {
	rdb  redis.UniversalClient
	hash string
}

func (s *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	return s.rdb.HSet(ctx, s.hash, key, value).Err()
}

func (s *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	return s.rdb.HDel(ctx, s.hash, key).Err()
}
