package router

import (
	"errors"
	"net/http"

	"garment_track/internal/config"
	"garment_track/internal/lifecycle"
	"garment_track/internal/middleware"
	"garment_track/internal/model"
	rediskey "garment_track/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// createSession 为已通过外部身份源认证的邮箱签发 bearer token。
// 调用方是身份源回调后端，用 X-Admin-Token 识别；
// 账号不存在时按 active buyer 落库（身份源已为其背书）。
func createSession(db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Token") != cfg.AdminToken {
			respondFail(c, http.StatusUnauthorized, "admin token invalid")
			return
		}

		var req struct {
			Email string `json:"email" binding:"required,email"`
			Name  string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}

		var u model.User
		err := db.Where("email = ?", req.Email).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = model.User{
				Email:  req.Email,
				Name:   req.Name,
				Role:   lifecycle.RoleBuyer,
				Status: lifecycle.UserActive,
			}
			err = db.Create(&u).Error
		}
		if err != nil {
			respondErr(c, err)
			return
		}

		token := uuid.New().String()
		sess := rediskey.Session{Token: token, Email: u.Email}
		if err := rediskey.PutSession(c.Request.Context(), rdb, sess, cfg.SessionTTL); err != nil {
			respondErr(c, err)
			return
		}

		respondOK(c, gin.H{
			"token":      token,
			"expires_in": int64(cfg.SessionTTL.Seconds()),
			"role":       u.Role,
			"status":     u.Status,
		})
	}
}

// deleteSession 注销当前 token。
func deleteSession(rdb *rd.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		if err := rediskey.DeleteSession(c.Request.Context(), rdb, p.Token, p.Email); err != nil {
			respondErr(c, err)
			return
		}
		respondMsg(c, "session revoked")
	}
}

// getUserRole 查询邮箱对应的角色与账号状态。只允许查自己，
// admin 例外。路径参数承载邮箱。
func getUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := middleware.CurrentPrincipal(c)
		email := c.Param("id")
		if email == p.Email {
			respondOK(c, gin.H{"role": p.Role, "status": p.Status})
			return
		}
		if p.Role != lifecycle.RoleAdmin {
			respondFail(c, http.StatusForbidden, "may only query own role")
			return
		}
		var u model.User
		if err := db.Where("email = ?", email).First(&u).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, gin.H{"role": u.Role, "status": u.Status})
	}
}
