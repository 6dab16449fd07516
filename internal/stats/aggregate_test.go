package stats

import (
	"testing"

	"garment_track/internal/lifecycle"
	"garment_track/internal/model"

	"github.com/stretchr/testify/assert"
)

// 营收只认 paid：未支付的 COD 订单即使履约完成也不计入。
func TestRevenueCountsPaidOnly(t *testing.T) {
	orders := []model.Order{
		{TotalPrice: 100, PaymentStatus: lifecycle.PaymentPaid},
		{TotalPrice: 50, PaymentStatus: lifecycle.PaymentUnpaid},
	}
	assert.Equal(t, 100.00, Revenue(orders))
}

func TestRevenueEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Revenue(nil))
}

func TestForBuyer(t *testing.T) {
	orders := []model.Order{
		{Status: lifecycle.StatusPending, TotalPrice: 100, PaymentStatus: lifecycle.PaymentPaid},
		{Status: lifecycle.StatusApproved, TotalPrice: 50, PaymentStatus: lifecycle.PaymentUnpaid},
		{Status: lifecycle.StatusCompleted, TotalPrice: 75, PaymentStatus: lifecycle.PaymentPaid},
		{Status: lifecycle.StatusCancelled, TotalPrice: 20, PaymentStatus: lifecycle.PaymentUnpaid},
	}
	s := ForBuyer(orders)
	assert.Equal(t, 4, s.OrderCount)
	assert.Equal(t, 2, s.ActiveOrderCount, "pending + approved")
	assert.Equal(t, 1, s.CompletedOrderCount)
	assert.Equal(t, 175.00, s.TotalSpent)
}

func TestForManager(t *testing.T) {
	products := []model.Product{{Title: "A"}, {Title: "B"}}
	orders := []model.Order{
		{BuyerEmail: "x@a.com", TotalPrice: 10, PaymentStatus: lifecycle.PaymentPaid},
		{BuyerEmail: "x@a.com", TotalPrice: 20, PaymentStatus: lifecycle.PaymentUnpaid},
		{BuyerEmail: "y@b.com", TotalPrice: 30, PaymentStatus: lifecycle.PaymentPaid},
	}
	s := ForManager(products, orders)
	assert.Equal(t, 2, s.ProductCount)
	assert.Equal(t, 3, s.OrderCount)
	assert.Equal(t, 2, s.UniqueBuyerCount)
	assert.Equal(t, 40.00, s.Revenue)
}

func TestForAdmin(t *testing.T) {
	users := []model.User{{Email: "a"}, {Email: "b"}, {Email: "c"}}
	products := []model.Product{{Title: "A"}}
	orders := []model.Order{
		{TotalPrice: 99.5, PaymentStatus: lifecycle.PaymentPaid},
		{TotalPrice: 10, PaymentStatus: lifecycle.PaymentUnpaid},
	}
	s := ForAdmin(users, products, orders)
	assert.Equal(t, 3, s.TotalUsers)
	assert.Equal(t, 1, s.TotalProducts)
	assert.Equal(t, 2, s.TotalOrders)
	assert.Equal(t, 99.5, s.Revenue)
}

func TestCountByStatusZeroFilled(t *testing.T) {
	got := CountByStatus([]model.Order{
		{Status: lifecycle.StatusPending},
		{Status: lifecycle.StatusPending},
		{Status: lifecycle.StatusCompleted},
	})
	assert.Equal(t, 2, got[lifecycle.StatusPending])
	assert.Equal(t, 1, got[lifecycle.StatusCompleted])
	// 图表依赖零值条目存在。
	assert.Contains(t, got, lifecycle.StatusRejected)
	assert.Equal(t, 0, got[lifecycle.StatusRejected])
	assert.Len(t, got, 5)
}

func TestCountByRoleZeroFilled(t *testing.T) {
	got := CountByRole([]model.User{
		{Role: lifecycle.RoleBuyer},
		{Role: lifecycle.RoleAdmin},
	})
	assert.Equal(t, 1, got[lifecycle.RoleBuyer])
	assert.Equal(t, 0, got[lifecycle.RoleManager])
	assert.Equal(t, 1, got[lifecycle.RoleAdmin])
	assert.Len(t, got, 3)
}
