package router

import (
	"fmt"
	"net/http"
	"strings"

	"garment_track/internal/config"
	"garment_track/internal/lifecycle"
	"garment_track/internal/middleware"
	"garment_track/internal/model"
	"garment_track/internal/queue"
	rediskey "garment_track/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// createCheckoutSession 为 pay-first 未支付订单签发支付会话。
// 结算本身发生在外部支付网关，这里只建立 session -> 订单映射。
func createCheckoutSession(db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)

		var req struct {
			OrderID string `json:"orderId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}

		var order model.Order
		if err := db.Where("id = ?", req.OrderID).First(&order).Error; err != nil {
			respondErr(c, err)
			return
		}
		if order.BuyerEmail != p.Email {
			respondFail(c, http.StatusForbidden, "not your order")
			return
		}
		if order.PaymentMethod != lifecycle.PayFirst {
			respondErr(c, fmt.Errorf("%w: cash-on-delivery orders are settled offline", lifecycle.ErrPrecondition))
			return
		}
		if order.PaymentStatus == lifecycle.PaymentPaid {
			respondErr(c, fmt.Errorf("%w: order already paid", lifecycle.ErrPrecondition))
			return
		}

		sessionID := "cs_" + strings.ReplaceAll(uuid.New().String(), "-", "")
		if err := rediskey.PutCheckoutSession(c.Request.Context(), rdb, sessionID, order.ID, cfg.CheckoutSessionTTL); err != nil {
			respondErr(c, err)
			return
		}

		respondOK(c, gin.H{
			"sessionId": sessionID,
			"url":       fmt.Sprintf("%s/checkout?session_id=%s", cfg.CheckoutBaseURL, sessionID),
		})
	}
}

// paymentSuccess 支付回调确认：unpaid -> paid，记录交易号。
// 对已确认的会话重复调用幂等返回原交易号。
func paymentSuccess(db *gorm.DB, rdb *rd.Client, outbox *queue.Outbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			respondFail(c, http.StatusBadRequest, "session_id is required")
			return
		}

		ctx := c.Request.Context()
		orderID, found, err := rediskey.GetCheckoutSession(ctx, rdb, sessionID)
		if err != nil {
			respondErr(c, err)
			return
		}
		if !found {
			respondFail(c, http.StatusNotFound, "unknown or expired checkout session")
			return
		}

		var order model.Order
		if err := db.Where("id = ?", orderID).First(&order).Error; err != nil {
			respondErr(c, err)
			return
		}

		// 重复回调：已支付直接返回原交易号。
		if order.PaymentStatus == lifecycle.PaymentPaid {
			respondOK(c, gin.H{"success": true, "transactionId": order.TransactionID})
			return
		}

		next, err := lifecycle.ConfirmPayment(order.PaymentStatus, order.PaymentMethod)
		if err != nil {
			respondErr(c, err)
			return
		}

		txnID := "txn_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		res := db.Model(&model.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, lifecycle.PaymentUnpaid).
			Updates(map[string]any{"payment_status": next, "transaction_id": txnID})
		if res.Error != nil {
			respondErr(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			// 并发回调抢先确认，读回已落库的交易号。
			if err := db.Where("id = ?", order.ID).First(&order).Error; err != nil {
				respondErr(c, err)
				return
			}
			respondOK(c, gin.H{"success": true, "transactionId": order.TransactionID})
			return
		}

		// 会话保留到 TTL 自然过期：买家刷新成功页会重放同一
		// session_id，需要还能解析到订单并命中上面的已支付分支。

		p, _ := middleware.CurrentPrincipal(c)
		emitEvent(c, outbox, queue.NewEvent(order.ID, queue.EventPaymentConfirmed, p.Email))

		respondOK(c, gin.H{"success": true, "transactionId": txnID})
	}
}

// paymentHistory 买家支付历史：名下已支付订单，按确认时间倒序。
func paymentHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)

		var orders []model.Order
		if err := db.Where("buyer_email = ? AND payment_status = ?", p.Email, lifecycle.PaymentPaid).
			Order("updated_at DESC").Find(&orders).Error; err != nil {
			respondErr(c, err)
			return
		}

		items := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			items = append(items, gin.H{
				"orderId":       o.ID,
				"productTitle":  o.ProductTitle,
				"amount":        o.TotalPrice,
				"transactionId": o.TransactionID,
				"paidAt":        o.UpdatedAt,
			})
		}
		respondOK(c, items)
	}
}
