package redis

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// PutCheckoutSession 建立支付会话 -> 订单的映射，过期未确认即失效。
func PutCheckoutSession(ctx context.Context, rdb *rd.Client, sessionID, orderID string, ttl time.Duration) error {
	return rdb.Set(ctx, CheckoutSessionKey(sessionID), orderID, ttl).Err()
}

// GetCheckoutSession 查询支付会话归属订单。found=false 表示会话不存在或已过期。
func GetCheckoutSession(ctx context.Context, rdb *rd.Client, sessionID string) (orderID string, found bool, err error) {
	val, err := rdb.Get(ctx, CheckoutSessionKey(sessionID)).Result()
	if err == rd.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// DeleteCheckoutSession 支付确认后清理会话。
func DeleteCheckoutSession(ctx context.Context, rdb *rd.Client, sessionID string) error {
	return rdb.Del(ctx, CheckoutSessionKey(sessionID)).Err()
}
