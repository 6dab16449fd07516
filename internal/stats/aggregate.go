// Package stats 从订单/用户/商品快照折叠出看板指标。
// 所有聚合都是无副作用的纯函数，方便用字面量夹具做单测。
package stats

import (
	"garment_track/internal/lifecycle"
	"garment_track/internal/model"
)

// AdminStats 管理员看板指标。
type AdminStats struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	Revenue       float64 `json:"revenue"`
}

// ManagerStats 生产经理看板指标。
type ManagerStats struct {
	ProductCount     int     `json:"productCount"`
	OrderCount       int     `json:"orderCount"`
	UniqueBuyerCount int     `json:"uniqueBuyerCount"`
	Revenue          float64 `json:"revenue"`
}

// BuyerStats 买家看板指标。active = pending 或 approved。
type BuyerStats struct {
	OrderCount          int     `json:"orderCount"`
	ActiveOrderCount    int     `json:"activeOrderCount"`
	CompletedOrderCount int     `json:"completedOrderCount"`
	TotalSpent          float64 `json:"totalSpent"`
}

// Revenue 只累计 paymentStatus=paid 的订单金额。
// COD 订单即使履约完成也不计入（线下收款不在跟踪范围内）。
func Revenue(orders []model.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.PaymentStatus == lifecycle.PaymentPaid {
			sum += o.TotalPrice
		}
	}
	return sum
}

// ForAdmin 全量快照 -> 管理员指标。
func ForAdmin(users []model.User, products []model.Product, orders []model.Order) AdminStats {
	return AdminStats{
		TotalUsers:    len(users),
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		Revenue:       Revenue(orders),
	}
}

// ForManager 经理名下商品 + 全部订单 -> 经理指标。
func ForManager(products []model.Product, orders []model.Order) ManagerStats {
	buyers := map[string]struct{}{}
	for _, o := range orders {
		buyers[o.BuyerEmail] = struct{}{}
	}
	return ManagerStats{
		ProductCount:     len(products),
		OrderCount:       len(orders),
		UniqueBuyerCount: len(buyers),
		Revenue:          Revenue(orders),
	}
}

// ForBuyer 买家名下订单 -> 买家指标。
func ForBuyer(orders []model.Order) BuyerStats {
	s := BuyerStats{OrderCount: len(orders), TotalSpent: Revenue(orders)}
	for _, o := range orders {
		switch o.Status {
		case lifecycle.StatusPending, lifecycle.StatusApproved:
			s.ActiveOrderCount++
		case lifecycle.StatusCompleted:
			s.CompletedOrderCount++
		}
	}
	return s
}

// CountByStatus 按订单状态计数，缺失的状态补零，方便图表直接消费。
func CountByStatus(orders []model.Order) map[lifecycle.OrderStatus]int {
	out := map[lifecycle.OrderStatus]int{
		lifecycle.StatusPending:   0,
		lifecycle.StatusApproved:  0,
		lifecycle.StatusRejected:  0,
		lifecycle.StatusCancelled: 0,
		lifecycle.StatusCompleted: 0,
	}
	for _, o := range orders {
		out[o.Status]++
	}
	return out
}

// CountByRole 按用户角色计数，缺失的角色补零。
func CountByRole(users []model.User) map[lifecycle.Role]int {
	out := map[lifecycle.Role]int{
		lifecycle.RoleBuyer:   0,
		lifecycle.RoleManager: 0,
		lifecycle.RoleAdmin:   0,
	}
	for _, u := range users {
		out[u.Role]++
	}
	return out
}
