package router

import (
	"net/http"

	"garment_track/internal/config"
	"garment_track/internal/lifecycle"
	"garment_track/internal/middleware"
	"garment_track/internal/queue"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup 注册全部 HTTP 路由。
func Setup(r *gin.Engine, db *gorm.DB, rdb *rd.Client, outbox *queue.Outbox, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	// 公开目录
	r.GET("/products", listProducts(db))
	r.GET("/products/:id", getProduct(db))

	// 会话签发由外部身份源的可信后端调用（X-Admin-Token 保护）
	r.POST("/auth/sessions", createSession(db, rdb, cfg))

	auth := r.Group("", middleware.Auth(db, rdb))
	auth.DELETE("/auth/sessions", deleteSession(rdb))
	auth.GET("/users/:id/role", getUserRole(db))
	auth.GET("/dashboard/stats", dashboardStats(db))

	// 订单：买家侧
	auth.POST("/orders",
		middleware.RedisRateLimit(rdb, cfg.OrderRateLimit, cfg.OrderRateWindow),
		createOrder(db, rdb, outbox, cfg))
	auth.GET("/orders/my-orders", myOrders(db))
	auth.GET("/orders/:id", getOrder(db))
	auth.PATCH("/orders/:id/cancel", cancelOrder(db, rdb, outbox))

	// 订单：员工侧
	staff := auth.Group("", middleware.RequireRole(lifecycle.RoleManager, lifecycle.RoleAdmin))
	staff.GET("/orders/pending", ordersByStatus(db, lifecycle.StatusPending))
	staff.GET("/orders/approved", ordersByStatus(db, lifecycle.StatusApproved))
	staff.PATCH("/orders/:id/approve", approveOrder(db, outbox))
	staff.PATCH("/orders/:id/reject", rejectOrder(db, rdb, outbox))
	staff.GET("/orders/manager/all", listOrders(db))
	staff.POST("/trackings/:id", appendTracking(db, outbox))

	auth.GET("/trackings/:id", getTracking(db))

	// 商品管理：经理侧
	staff.POST("/products", createProduct(db, rdb))
	staff.PUT("/products/:id", updateProduct(db))
	staff.GET("/products/manager/my-products", myProducts(db))
	staff.DELETE("/products/manager/:id", deleteOwnProduct(db))

	// 管理员
	admin := auth.Group("", middleware.RequireRole(lifecycle.RoleAdmin))
	admin.GET("/orders/all", listOrders(db))
	admin.GET("/orders/stats", orderStats(db, rdb, cfg))
	admin.GET("/users", listUsers(db))
	admin.PATCH("/users/:id/role", updateUserRole(db))
	admin.PATCH("/users/:id/status", updateUserStatus(db, rdb))
	admin.GET("/users/stats", userStats(db, rdb, cfg))
	admin.GET("/products/admin/all", adminListProducts(db))
	admin.DELETE("/products/admin/:id", adminDeleteProduct(db))
	admin.PATCH("/products/:id/toggle-home", toggleProductHome(db))
	admin.GET("/products/stats", productStats(db, rdb, cfg))

	// 支付
	auth.POST("/create-checkout-session", createCheckoutSession(db, rdb, cfg))
	auth.PATCH("/payment-success", paymentSuccess(db, rdb, outbox))
	auth.GET("/payments/history", paymentHistory(db))
}
