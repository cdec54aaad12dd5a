package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache Redis 缓存层
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 创建 Redis 缓存
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// historyKey 用户历史缓存键
func historyKey(user string) string {
	return fmt.Sprintf("mirror:user:%s:history", user)
}

// GetHistory 获取用户历史(Redis)
func (r *RedisCache) GetHistory(user string) ([]Entry, error) {
	ctx := context.Background()

	result, err := r.client.LRange(ctx, historyKey(user), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, item := range result {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// SaveHistory 保存用户历史(Redis)
func (r *RedisCache) SaveHistory(user string, entries []Entry) error {
	key := historyKey(user)
	ctx := context.Background()

	// 清空旧数据
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return err
	}

	// 逐条插入,保持旧的在前
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			continue
		}
		if err := r.client.RPush(ctx, key, data).Err(); err != nil {
			return err
		}
	}

	// 设置过期时间
	return r.client.Expire(ctx, key, r.ttl).Err()
}

// InvalidateHistory 使用户历史缓存失效
func (r *RedisCache) InvalidateHistory(user string) error {
	return r.client.Del(context.Background(), historyKey(user)).Err()
}

// Close 关闭 Redis 连接
func (r *RedisCache) Close() error {
	return r.client.Close()
}
