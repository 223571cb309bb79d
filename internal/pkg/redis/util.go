package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 写入带 TTL 的键值对
func SetWithExpiration(ctx context.Context, key string, value any, ttl time.Duration) error {
	return Rdb.Set(ctx, key, value, ttl).Err()
}

// GetValue 读取字符串值，未命中返回空串
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// DeleteKey 删除键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}

// GetRdbClient Redis 未初始化时返回 nil，调用方据此跳过缓存
func GetRdbClient() *redis.Client {
	return Rdb
}
