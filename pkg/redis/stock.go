package redis

import (
	"context"

	rd "github.com/redis/go-redis/v9"
)

// luaReserveStock：Redis 内原子「读库存 → 判断 ≥ 扣减量 → DECRBY」
// KEYS[1]=库存key，ARGV[1]=扣减数量；返回扣减后的值，不足则返回 -1
const luaReserveStock = `
local key = KEYS[1]
local decr = tonumber(ARGV[1])
local current = tonumber(redis.call('GET', key) or '0')
if current >= decr then
  return redis.call('DECRBY', key, decr)
else
  return -1
end
`

// SeedStock 惰性初始化库存计数器：key 不存在时写入 DB 库存。
// 已存在时不覆盖，避免抹掉并发扣减的结果。
func SeedStock(ctx context.Context, rdb *rd.Client, productID uint, stock int64) error {
	return rdb.SetNX(ctx, StockKey(productID), stock, 0).Err()
}

// ReserveStock 原子扣减库存。ok=false 表示库存不足，未发生扣减。
func ReserveStock(ctx context.Context, rdb *rd.Client, productID uint, quantity int64) (remaining int64, ok bool, err error) {
	res, err := rdb.Eval(ctx, luaReserveStock, []string{StockKey(productID)}, quantity).Int64()
	if err != nil {
		return 0, false, err
	}
	if res < 0 {
		return 0, false, nil
	}
	return res, true, nil
}

// GetStock 查询实时库存。key 不存在视为 0。
func GetStock(ctx context.Context, rdb *rd.Client, productID uint) (int64, error) {
	val, err := rdb.Get(ctx, StockKey(productID)).Int64()
	if err == rd.Nil {
		return 0, nil
	}
	return val, err
}
