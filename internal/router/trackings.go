package router

import (
	"log"
	"net/http"
	"time"

	"garment_track/internal/lifecycle"
	"garment_track/internal/middleware"
	"garment_track/internal/model"
	"garment_track/internal/queue"
	"garment_track/internal/tracking"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadTrackingLog 取出订单的跟踪日志（自增主键升序即时间序）。
func loadTrackingLog(db *gorm.DB, order model.Order) (*tracking.Log, []model.TrackingUpdate, error) {
	var rows []model.TrackingUpdate
	if err := db.Where("order_id = ?", order.ID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	updates := make([]tracking.Update, 0, len(rows))
	for _, r := range rows {
		updates = append(updates, tracking.Update{
			Stage:      r.Stage,
			Note:       r.Note,
			ActorEmail: r.ActorEmail,
			Timestamp:  r.Timestamp,
		})
	}
	return tracking.NewLog(order.ID, order.Status, updates), rows, nil
}

// appendTracking manager/admin 追加一条生产阶段更新。
// 守卫在 tracking.Log 内统一检查；阶段到达 Delivered 时
// 订单自动 approved -> completed。
func appendTracking(db *gorm.DB, outbox *queue.Outbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)

		var req struct {
			Status    string    `json:"status" binding:"required"`
			Note      string    `json:"note"`
			Timestamp time.Time `json:"timestamp"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}

		var order model.Order
		if err := db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
			respondErr(c, err)
			return
		}

		logEntry, _, err := loadTrackingLog(db, order)
		if err != nil {
			respondErr(c, err)
			return
		}
		u, err := logEntry.Append(req.Status, req.Note, p.Role, p.Email, req.Timestamp)
		if err != nil {
			respondErr(c, err)
			return
		}

		row := &model.TrackingUpdate{
			OrderID:    order.ID,
			Stage:      u.Stage,
			Note:       u.Note,
			ActorEmail: u.ActorEmail,
			Timestamp:  u.Timestamp,
		}
		if err := db.Create(row).Error; err != nil {
			respondErr(c, err)
			return
		}

		ev := queue.NewEvent(order.ID, queue.EventTrackingAppended, p.Email)
		ev.Stage = u.Stage
		ev.Note = u.Note
		emitEvent(c, outbox, ev)

		// Delivered 视为生产链路终点，订单自动完成。
		if logEntry.Delivered() {
			next, err := lifecycle.Complete(order.Status)
			if err == nil {
				err = applyTransition(db, &order, next)
			}
			if err != nil {
				log.Printf("auto-complete order=%s: %v", order.ID, err)
			} else {
				emitEvent(c, outbox, queue.NewEvent(order.ID, queue.EventOrderCompleted, p.Email))
			}
		}

		respondOK(c, gin.H{"orderId": order.ID, "update": row, "orderStatus": order.Status})
	}
}

// getTracking 订单完整跟踪历史，时间正序；倒序展示交给前端。
// 买家只能看自己的订单，员工都可见。
func getTracking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)

		var order model.Order
		if err := db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
			respondErr(c, err)
			return
		}
		if !p.Role.Can(lifecycle.ActionViewAllOrders) && order.BuyerEmail != p.Email {
			respondFail(c, http.StatusForbidden, "not your order")
			return
		}

		_, rows, err := loadTrackingLog(db, order)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, gin.H{"orderId": order.ID, "updates": rows})
	}
}
