package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"garment_track/internal/lifecycle"
	"garment_track/internal/middleware"
	"garment_track/internal/model"
	"garment_track/internal/queue"
	rediskey "garment_track/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newPayFirstOrder(id, buyer string) *model.Order {
	return &model.Order{
		ID:              id,
		ProductID:       1,
		ProductTitle:    "denim jacket",
		BuyerEmail:      buyer,
		Quantity:        20,
		TotalPrice:      900,
		Status:          lifecycle.StatusPending,
		PaymentStatus:   lifecycle.PaymentUnpaid,
		PaymentMethod:   lifecycle.PayFirst,
		FirstName:       "Mina",
		LastName:        "Park",
		ContactNumber:   "010-1234",
		DeliveryAddress: "12 Factory Rd",
		OrderedAt:       time.Now(),
	}
}

// 买家刷新成功页会用同一 session_id 重放回调，必须拿回原交易号。
func TestPaymentSuccessReplayReturnsOriginalTransaction(t *testing.T) {
	db, rdb := newTestBackend(t)
	ctx := context.Background()

	order := newPayFirstOrder("ord-replay", "buyer@garment.local")
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, rediskey.PutCheckoutSession(ctx, rdb, "cs_replay", order.ID, time.Minute))

	r := gin.New()
	r.PATCH("/payment-success", paymentSuccess(db, rdb, queue.NewOutbox(rdb, "garment:order_events")))

	do := func() (int, map[string]any) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/payment-success?session_id=cs_replay", nil)
		r.ServeHTTP(w, req)
		var body struct {
			Code int            `json:"code"`
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body.Data
	}

	status, data := do()
	require.Equal(t, http.StatusOK, status)
	txn, _ := data["transactionId"].(string)
	require.NotEmpty(t, txn)

	status, data = do()
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, data["success"])
	require.Equal(t, txn, data["transactionId"])

	var got model.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&got).Error)
	require.Equal(t, lifecycle.PaymentPaid, got.PaymentStatus)
	require.Equal(t, txn, got.TransactionID)

	// 会话清掉后才按未知会话处理
	require.NoError(t, rediskey.DeleteCheckoutSession(ctx, rdb, "cs_replay"))
	status, _ = do()
	require.Equal(t, http.StatusNotFound, status)
}

func TestPaymentHistoryListsOwnPaidOrdersOnly(t *testing.T) {
	db, rdb := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.User{
		Email:  "buyer@garment.local",
		Role:   lifecycle.RoleBuyer,
		Status: lifecycle.UserActive,
	}).Error)
	require.NoError(t, rediskey.PutSession(ctx, rdb,
		rediskey.Session{Token: "tok-buyer", Email: "buyer@garment.local"}, time.Hour))

	paid := newPayFirstOrder("ord-paid", "buyer@garment.local")
	paid.PaymentStatus = lifecycle.PaymentPaid
	paid.TransactionID = "txn_abc"
	unpaid := newPayFirstOrder("ord-unpaid", "buyer@garment.local")
	someoneElse := newPayFirstOrder("ord-other", "other@garment.local")
	someoneElse.PaymentStatus = lifecycle.PaymentPaid
	someoneElse.TransactionID = "txn_other"
	for _, o := range []*model.Order{paid, unpaid, someoneElse} {
		require.NoError(t, db.Create(o).Error)
	}

	r := gin.New()
	r.GET("/payments/history", middleware.Auth(db, rdb), paymentHistory(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/history", nil)
	req.Header.Set("Authorization", "Bearer tok-buyer")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code int              `json:"code"`
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "ord-paid", body.Data[0]["orderId"])
	require.Equal(t, "txn_abc", body.Data[0]["transactionId"])
	require.InDelta(t, 900, body.Data[0]["amount"].(float64), 0.001)
}
