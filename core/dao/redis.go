package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"miniroom/core/repo"
)

const RoomPrefix = "miniroom"

type RedisDao struct {
	repo *repo.Manager
}

func RoomKey(serial int64) string {
	return fmt.Sprintf("%s:%d", RoomPrefix, serial)
}

func (d *RedisDao) Store(ctx context.Context, key string, value string, expire time.Duration) error {
	return d.repo.Redis.Cli.Set(ctx, key, value, expire).Err()
}

func (d *RedisDao) Get(ctx context.Context, key string) (string, error) {
	value, err := d.repo.Redis.Cli.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return value, err
}

func (d *RedisDao) Delete(ctx context.Context, key string) error {
	return d.repo.Redis.Cli.Del(ctx, key).Err()
}

func NewRedisDao(m *repo.Manager) *RedisDao {
	return &RedisDao{
		repo: m,
	}
}
