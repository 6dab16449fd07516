package router

import (
	"encoding/json"
	"log"
	"time"

	"garment_track/internal/config"
	"garment_track/internal/lifecycle"
	"garment_track/internal/middleware"
	"garment_track/internal/model"
	"garment_track/internal/stats"
	rediskey "garment_track/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// dashboardStats 按当前角色折叠看板指标。
// 聚合本身是纯函数，这里只负责取快照。
func dashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)

		switch p.Role {
		case lifecycle.RoleAdmin:
			var users []model.User
			var products []model.Product
			var orders []model.Order
			if err := firstErr(
				db.Find(&users).Error,
				db.Find(&products).Error,
				db.Find(&orders).Error,
			); err != nil {
				respondErr(c, err)
				return
			}
			respondOK(c, stats.ForAdmin(users, products, orders))

		case lifecycle.RoleManager:
			var products []model.Product
			var orders []model.Order
			if err := firstErr(
				db.Where("manager_email = ?", p.Email).Find(&products).Error,
				db.Find(&orders).Error,
			); err != nil {
				respondErr(c, err)
				return
			}
			respondOK(c, stats.ForManager(products, orders))

		default:
			var orders []model.Order
			if err := db.Where("buyer_email = ?", p.Email).Find(&orders).Error; err != nil {
				respondErr(c, err)
				return
			}
			respondOK(c, stats.ForBuyer(orders))
		}
	}
}

// orderStats 管理员订单统计：总量、各状态计数、营收。
func orderStats(db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) gin.HandlerFunc {
	return cachedStats(rdb, "orders", cfg.StatsCacheTTL, func(c *gin.Context) (any, error) {
		var orders []model.Order
		if err := db.Find(&orders).Error; err != nil {
			return nil, err
		}
		byStatus := stats.CountByStatus(orders)
		return gin.H{
			"total":     len(orders),
			"pending":   byStatus[lifecycle.StatusPending],
			"approved":  byStatus[lifecycle.StatusApproved],
			"rejected":  byStatus[lifecycle.StatusRejected],
			"cancelled": byStatus[lifecycle.StatusCancelled],
			"completed": byStatus[lifecycle.StatusCompleted],
			"revenue":   stats.Revenue(orders),
		}, nil
	})
}

// userStats 管理员用户统计：总量、各角色计数、本月新增。
func userStats(db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) gin.HandlerFunc {
	return cachedStats(rdb, "users", cfg.StatsCacheTTL, func(c *gin.Context) (any, error) {
		var users []model.User
		if err := db.Find(&users).Error; err != nil {
			return nil, err
		}
		byRole := stats.CountByRole(users)

		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		newThisMonth := 0
		for _, u := range users {
			if !u.CreatedAt.Before(monthStart) {
				newThisMonth++
			}
		}

		return gin.H{
			"total":        len(users),
			"buyers":       byRole[lifecycle.RoleBuyer],
			"managers":     byRole[lifecycle.RoleManager],
			"admins":       byRole[lifecycle.RoleAdmin],
			"newThisMonth": newThisMonth,
		}, nil
	})
}

// productStats 管理员商品统计。
func productStats(db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) gin.HandlerFunc {
	return cachedStats(rdb, "products", cfg.StatsCacheTTL, func(c *gin.Context) (any, error) {
		var total, onHome int64
		if err := db.Model(&model.Product{}).Count(&total).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&model.Product{}).Where("show_on_home = ?", true).Count(&onHome).Error; err != nil {
			return nil, err
		}
		return gin.H{"total": total, "showOnHome": onHome}, nil
	})
}

// cachedStats 读穿缓存包装：命中直接吐缓存 JSON，
// 未命中折叠后回填。缓存故障只记日志，不影响响应。
func cachedStats(rdb *rd.Client, scope string, ttl time.Duration, load func(*gin.Context) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if payload, found, err := rediskey.GetCachedStats(ctx, rdb, scope); err == nil && found {
			var data json.RawMessage = payload
			respondOK(c, data)
			return
		} else if err != nil {
			log.Printf("stats cache get %s: %v", scope, err)
		}

		data, err := load(c)
		if err != nil {
			respondErr(c, err)
			return
		}

		if payload, err := json.Marshal(data); err == nil {
			if err := rediskey.PutCachedStats(ctx, rdb, scope, payload, ttl); err != nil {
				log.Printf("stats cache put %s: %v", scope, err)
			}
		}
		respondOK(c, data)
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
