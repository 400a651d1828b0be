package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"miniroom/common/config"
	"miniroom/common/logs"
)

// RedisManager 单机和集群二选一 对外统一成 redis.UniversalClient
type RedisManager struct {
	Cli redis.UniversalClient
}

func NewRedis(conf config.RedisConf) *RedisManager {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var cli redis.UniversalClient
	if len(conf.ClusterAddrs) == 0 {
		cli = redis.NewClient(&redis.Options{
			Addr:         conf.Addr,
			PoolSize:     conf.PoolSize,
			MinIdleConns: conf.MinIdleConns,
			Password:     conf.Password,
		})
	} else {
		cli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        conf.ClusterAddrs,
			PoolSize:     conf.PoolSize,
			MinIdleConns: conf.MinIdleConns,
			Password:     conf.Password,
		})
	}
	if err := cli.Ping(ctx).Err(); err != nil {
		logs.Fatal("redis connect err:%v", err)
		return nil
	}
	return &RedisManager{Cli: cli}
}

func (r *RedisManager) Close() {
	if err := r.Cli.Close(); err != nil {
		logs.Error("redis close err:%v", err)
	}
}
