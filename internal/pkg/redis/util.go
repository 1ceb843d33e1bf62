package redis

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// SetValue 设置键值对
func SetValue(ctx context.Context, key string, value interface{}) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, key, value, 0).Err()
}

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值，键不存在时返回空串
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", nil
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetJSON 序列化后写入并设置过期时间
func SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Rdb.Set(ctx, key, data, expiration).Err()
}

// GetJSON 读取并反序列化，命中返回 true
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	value, err := GetValue(ctx, key)
	if err != nil || value == "" {
		return false, err
	}
	if err = json.Unmarshal([]byte(value), dest); err != nil {
		return false, err
	}
	return true, nil
}

// TryLock 抢占分布式锁，retryTimes 为 -1 时一直重试
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if Rdb == nil {
		return true, nil
	}
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return false, nil
}

// UnLock 释放锁，只删除自己持有的锁
func UnLock(ctx context.Context, key string, value interface{}) {
	if Rdb == nil {
		return
	}
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}



// AddToSet 向集合添加成员，脏数据集合使用
func AddToSet(ctx context.Context, key string, members ...string) error {
	if Rdb == nil || len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return Rdb.SAdd(ctx, key, args...).Err()
}

// GetSet 获取集合
func GetSet(ctx context.Context, key string) ([]string, error) {
	if Rdb == nil {
		return nil, nil
	}
	return Rdb.SMembers(ctx, key).Result()
}

// MergeSet 把 src 并入 dst 后删除 src，两步在同一个事务内执行
func MergeSet(ctx context.Context, dst, src string) error {
	if Rdb == nil {
		return nil
	}
	_, err := Rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SUnionStore(ctx, dst, dst, src)
		pipe.Del(ctx, src)
		return nil
	})
	return err
}

// Rename 重命名键，源键不存在时返回错误
func Rename(ctx context.Context, oldKey string, newKey string) error {
	if Rdb == nil {
		return redis.Nil
	}
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// DeleteKey 删除一个或多个键
func DeleteKey(ctx context.Context, keys ...string) error {
	if Rdb == nil || len(keys) == 0 {
		return nil
	}
	return Rdb.Del(ctx, keys...).Err()
}

