package redis

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// GetCachedStats 读取看板统计缓存。found=false 表示缓存未命中。
func GetCachedStats(ctx context.Context, rdb *rd.Client, scope string) ([]byte, bool, error) {
	val, err := rdb.Get(ctx, StatsCacheKey(scope)).Bytes()
	if err == rd.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// PutCachedStats 写入统计缓存。统计是整体失效的读穿缓存，
// 不做部分更新，过期后下次读取重新折叠。
func PutCachedStats(ctx context.Context, rdb *rd.Client, scope string, payload []byte, ttl time.Duration) error {
	return rdb.Set(ctx, StatsCacheKey(scope), payload, ttl).Err()
}
