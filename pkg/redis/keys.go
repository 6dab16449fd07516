package redis

import "fmt"

// StockKey 商品实时库存计数器。
func StockKey(productID uint) string {
	return fmt.Sprintf("garment:stock:%d", productID)
}

// CompensationLockKey 标记某订单是否已做过库存回补。
func CompensationLockKey(orderID string) string {
	return fmt.Sprintf("garment:stock:compensated:%s", orderID)
}

// SessionKey bearer token -> 会话信息。
func SessionKey(token string) string {
	return fmt.Sprintf("garment:session:%s", token)
}

// UserSessionsKey 某账号全部在线 token 的集合，用于停用时整体吊销。
func UserSessionsKey(email string) string {
	return fmt.Sprintf("garment:session:user:%s", email)
}

// CheckoutSessionKey 支付会话 -> 订单 ID。
func CheckoutSessionKey(sessionID string) string {
	return fmt.Sprintf("garment:checkout:%s", sessionID)
}

// StatsCacheKey 看板统计的 JSON 缓存。
func StatsCacheKey(scope string) string {
	return fmt.Sprintf("garment:stats:%s", scope)
}
