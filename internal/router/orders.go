package router

import (
	"fmt"
	"log"
	"net/http"
	"time"

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

// emitEvent 把生命周期事件写入 outbox。
// 事件只用于审计，失败记日志不回滚业务。
func emitEvent(c *gin.Context, outbox *queue.Outbox, e queue.Event) {
	if err := outbox.Append(c.Request.Context(), e); err != nil {
		log.Printf("outbox append %s order=%s: %v", e.Type, e.OrderID, err)
	}
}

// createOrder 买家下单。
// 关键流程：
// 1. 角色守卫 + 本地校验（MOQ/库存/必填字段），失败时不发生任何扣减
// 2. Redis Lua 原子扣减实时库存（key 缺失时先用 DB 库存惰性播种）
// 3. DB 权威库存条件扣减，失败即回补 Redis
// 4. 落订单（pending/unpaid）+ outbox 事件
// 5. pay-first 订单返回支付跳转信号
func createOrder(db *gorm.DB, rdb *rd.Client, outbox *queue.Outbox, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		if err := lifecycle.CanCreateOrder(p.Role); err != nil {
			respondErr(c, err)
			return
		}

		var req struct {
			ProductID       uint   `json:"productId" binding:"required,min=1"`
			Quantity        int    `json:"quantity" binding:"required,min=1"`
			FirstName       string `json:"firstName"`
			LastName        string `json:"lastName"`
			ContactNumber   string `json:"contactNumber"`
			DeliveryAddress string `json:"deliveryAddress"`
			Notes           string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}

		var prod model.Product
		if err := db.First(&prod, req.ProductID).Error; err != nil {
			respondErr(c, err)
			return
		}

		in := lifecycle.NewOrderInput{
			Quantity:        req.Quantity,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			ContactNumber:   req.ContactNumber,
			DeliveryAddress: req.DeliveryAddress,
		}
		if err := lifecycle.ValidateNewOrder(in, prod.MOQ, prod.Quantity); err != nil {
			respondErr(c, err)
			return
		}

		ctx := c.Request.Context()
		orderID := uuid.New().String()

		// 实时库存扣减：计数器缺失时先按 DB 播种，已存在则不覆盖。
		if err := rediskey.SeedStock(ctx, rdb, prod.ID, prod.Quantity); err != nil {
			respondErr(c, err)
			return
		}
		_, ok, err := rediskey.ReserveStock(ctx, rdb, prod.ID, int64(req.Quantity))
		if err != nil {
			respondErr(c, err)
			return
		}
		if !ok {
			respondFail(c, http.StatusUnprocessableEntity, "insufficient stock")
			return
		}

		// DB 权威库存条件扣减；并发下扣不到就回补 Redis。
		res := db.Model(&model.Product{}).
			Where("id = ? AND quantity >= ?", prod.ID, req.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", req.Quantity))
		if res.Error != nil || res.RowsAffected == 0 {
			_, _ = rediskey.CompensateStockOnce(ctx, rdb, orderID, prod.ID, int64(req.Quantity))
			if res.Error != nil {
				respondErr(c, res.Error)
			} else {
				respondFail(c, http.StatusUnprocessableEntity, "insufficient stock")
			}
			return
		}

		order := &model.Order{
			ID:              orderID,
			ProductID:       prod.ID,
			ProductTitle:    prod.Title,
			BuyerEmail:      p.Email,
			Quantity:        req.Quantity,
			TotalPrice:      float64(req.Quantity) * prod.Price,
			Status:          lifecycle.StatusPending,
			PaymentStatus:   lifecycle.PaymentUnpaid,
			PaymentMethod:   prod.PaymentOption,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			ContactNumber:   req.ContactNumber,
			DeliveryAddress: req.DeliveryAddress,
			Notes:           req.Notes,
			OrderedAt:       time.Now(),
		}
		if err := db.Create(order).Error; err != nil {
			// 落单失败：幂等回补两侧库存，避免“扣了库存却无订单”。
			_, _ = rediskey.CompensateStockOnce(ctx, rdb, orderID, prod.ID, int64(req.Quantity))
			_ = db.Model(&model.Product{}).Where("id = ?", prod.ID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error
			respondErr(c, err)
			return
		}

		emitEvent(c, outbox, queue.NewEvent(order.ID, queue.EventOrderCreated, p.Email))

		data := gin.H{"id": order.ID, "status": order.Status}
		if order.PaymentMethod == lifecycle.PayFirst {
			data["checkoutUrl"] = fmt.Sprintf("%s/payment/%s", cfg.CheckoutBaseURL, order.ID)
		}
		respondOK(c, data)
	}
}

// myOrders 买家名下订单，按下单时间倒序。
func myOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		var orders []model.Order
		if err := db.Where("buyer_email = ?", p.Email).
			Order("ordered_at DESC").Find(&orders).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, orders)
	}
}

// getOrder 单个订单。买家只能看自己的，员工都可见。
func getOrder(db *gorm.DB) gin.HandlerFunc {
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
		respondOK(c, order)
	}
}

// cancelOrder 买家取消自己的 pending 订单，并幂等回补库存。
func cancelOrder(db *gorm.DB, rdb *rd.Client, outbox *queue.Outbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		var order model.Order
		if err := db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
			respondErr(c, err)
			return
		}

		next, err := lifecycle.Cancel(order.Status, p.Role, p.Email, order.BuyerEmail)
		if err != nil {
			respondErr(c, err)
			return
		}

		if err := applyTransition(db, &order, next); err != nil {
			respondErr(c, err)
			return
		}

		restock(c, db, rdb, order)
		emitEvent(c, outbox, queue.NewEvent(order.ID, queue.EventOrderCancelled, p.Email))
		respondOK(c, order)
	}
}

// approveOrder manager/admin 审批 pending 订单。
// 跟踪档案不在此处创建，首条跟踪更新时才惰性建档。
func approveOrder(db *gorm.DB, outbox *queue.Outbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		var order model.Order
		if err := db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
			respondErr(c, err)
			return
		}

		next, err := lifecycle.Approve(order.Status, p.Role)
		if err != nil {
			respondErr(c, err)
			return
		}
		if err := applyTransition(db, &order, next); err != nil {
			respondErr(c, err)
			return
		}

		emitEvent(c, outbox, queue.NewEvent(order.ID, queue.EventOrderApproved, p.Email))
		respondOK(c, order)
	}
}

// rejectOrder manager/admin 驳回 pending 订单，并幂等回补库存。
func rejectOrder(db *gorm.DB, rdb *rd.Client, outbox *queue.Outbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		var order model.Order
		if err := db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
			respondErr(c, err)
			return
		}

		next, err := lifecycle.Reject(order.Status, p.Role)
		if err != nil {
			respondErr(c, err)
			return
		}
		if err := applyTransition(db, &order, next); err != nil {
			respondErr(c, err)
			return
		}

		restock(c, db, rdb, order)
		emitEvent(c, outbox, queue.NewEvent(order.ID, queue.EventOrderRejected, p.Email))
		respondOK(c, order)
	}
}

// ordersByStatus 员工侧按状态的订单清单。
func ordersByStatus(db *gorm.DB, status lifecycle.OrderStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []model.Order
		if err := db.Where("status = ?", status).
			Order("ordered_at DESC").Find(&orders).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, orders)
	}
}

// listOrders 全量订单清单，支持 status 过滤与标题/邮箱模糊搜索。
func listOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&model.Order{})
		if s := c.Query("status"); s != "" {
			if !lifecycle.OrderStatus(s).Valid() {
				respondFail(c, http.StatusBadRequest, fmt.Sprintf("unknown status %q", s))
				return
			}
			q = q.Where("status = ?", s)
		}
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			q = q.Where("product_title LIKE ? OR buyer_email LIKE ?", like, like)
		}
		var orders []model.Order
		if err := q.Order("ordered_at DESC").Find(&orders).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, orders)
	}
}

// applyTransition 乐观落库：WHERE 带上旧状态，
// 并发下被抢先迁移时按非法迁移处理，订单状态保持不变。
func applyTransition(db *gorm.DB, order *model.Order, next lifecycle.OrderStatus) error {
	res := db.Model(&model.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order %s is no longer %s", lifecycle.ErrInvalidTransition, order.ID, order.Status)
	}
	order.Status = next
	return nil
}

// restock 取消/驳回后回补两侧库存。Redis 侧用订单号做幂等锁，
// DB 侧跟随 Redis 的首次回补结果，避免重复加库存。
func restock(c *gin.Context, db *gorm.DB, rdb *rd.Client, order model.Order) {
	first, err := rediskey.CompensateStockOnce(c.Request.Context(), rdb, order.ID, order.ProductID, int64(order.Quantity))
	if err != nil {
		log.Printf("restock redis order=%s: %v", order.ID, err)
		return
	}
	if !first {
		return
	}
	if err := db.Model(&model.Product{}).Where("id = ?", order.ProductID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", order.Quantity)).Error; err != nil {
		log.Printf("restock db order=%s: %v", order.ID, err)
	}
}
