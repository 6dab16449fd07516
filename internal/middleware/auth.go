package middleware

import (
	"net/http"
	"strings"

	"garment_track/internal/lifecycle"
	"garment_track/internal/model"
	rediskey "garment_track/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Principal 当前请求的已认证主体。
type Principal struct {
	Email  string
	Name   string
	Role   lifecycle.Role
	Status lifecycle.UserStatus
	Token  string
}

const principalKey = "auth.principal"

// Auth 解析 Bearer token，装配 Principal。
// 401：缺失/未知 token；403 + account suspended：被停用账号，
// 服务端同时吊销其全部会话。
func Auth(db *gorm.DB, rdb *rd.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "missing bearer token"})
			return
		}

		sess, found, err := rediskey.GetSession(c.Request.Context(), rdb, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "invalid or expired token"})
			return
		}

		var u model.User
		if err := db.Where("email = ?", sess.Email).First(&u).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "unknown account"})
			return
		}

		if u.Status == lifecycle.UserSuspended {
			// 停用是唯一带专属处理的 403：吊销会话并附上原因与反馈。
			_ = rediskey.RevokeUserSessions(c.Request.Context(), rdb, u.Email)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":     403,
				"msg":      "account suspended",
				"reason":   u.SuspendReason,
				"feedback": u.SuspendFeedback,
			})
			return
		}

		c.Set(principalKey, Principal{
			Email:  u.Email,
			Name:   u.Name,
			Role:   u.Role,
			Status: u.Status,
			Token:  token,
		})
		c.Next()
	}
}

// CurrentPrincipal 取出 Auth 装配的主体。ok=false 说明路由没挂 Auth。
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// RequireRole 限定路由只允许给定角色。
// pending 状态的员工账号在管理员核验前同样拒绝。
func RequireRole(roles ...lifecycle.Role) gin.HandlerFunc {
	allowed := map[lifecycle.Role]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "authentication required"})
			return
		}
		if !allowed[p.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": 403, "msg": "insufficient role"})
			return
		}
		if p.Role != lifecycle.RoleBuyer && p.Status == lifecycle.UserPending {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": 403, "msg": "account pending verification"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
