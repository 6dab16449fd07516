package router

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

// listUsers 管理员用户清单，支持角色过滤与邮箱/姓名搜索。
func listUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&model.User{})
		if role := c.Query("role"); role != "" {
			if !lifecycle.Role(role).Valid() {
				respondFail(c, http.StatusBadRequest, "unknown role")
				return
			}
			q = q.Where("role = ?", role)
		}
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			q = q.Where("email LIKE ? OR name LIKE ?", like, like)
		}
		var users []model.User
		if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, users)
	}
}

// updateUserRole 管理员调整账号角色。
// 提为 manager 的账号置为 pending，等待核验后才可用员工侧接口。
func updateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Role string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		role := lifecycle.Role(req.Role)
		if !role.Valid() {
			respondFail(c, http.StatusBadRequest, "unknown role")
			return
		}

		id, err := paramID(c, "id")
		if err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		var u model.User
		if err := db.First(&u, id).Error; err != nil {
			respondErr(c, err)
			return
		}

		updates := map[string]any{"role": role}
		if role == lifecycle.RoleManager && u.Role != lifecycle.RoleManager {
			updates["status"] = lifecycle.UserPending
		}
		if err := db.Model(&u).Updates(updates).Error; err != nil {
			respondErr(c, err)
			return
		}
		u.Role = role
		if s, ok := updates["status"]; ok {
			u.Status = s.(lifecycle.UserStatus)
		}
		respondOK(c, u)
	}
}

// updateUserStatus 管理员激活/停用账号。
// 停用时吊销其全部会话并记录原因与反馈；重新激活时清掉两者。
func updateUserStatus(db *gorm.DB, rdb *rd.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status          string `json:"status" binding:"required"`
			SuspendReason   string `json:"suspendReason"`
			SuspendFeedback string `json:"suspendFeedback"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		status := lifecycle.UserStatus(req.Status)
		if !status.Valid() {
			respondFail(c, http.StatusBadRequest, "unknown status")
			return
		}
		if status == lifecycle.UserSuspended && strings.TrimSpace(req.SuspendReason) == "" {
			respondFail(c, http.StatusBadRequest, "suspendReason is required when suspending")
			return
		}

		id, err := paramID(c, "id")
		if err != nil {
			respondFail(c, http.StatusBadRequest, err.Error())
			return
		}
		var u model.User
		if err := db.First(&u, id).Error; err != nil {
			respondErr(c, err)
			return
		}

		updates := map[string]any{
			"status":           status,
			"suspend_reason":   "",
			"suspend_feedback": "",
		}
		if status == lifecycle.UserSuspended {
			updates["suspend_reason"] = req.SuspendReason
			updates["suspend_feedback"] = req.SuspendFeedback
		}
		if err := db.Model(&u).Updates(updates).Error; err != nil {
			respondErr(c, err)
			return
		}
		u.Status = status
		u.SuspendReason = updates["suspend_reason"].(string)
		u.SuspendFeedback = updates["suspend_feedback"].(string)

		if status == lifecycle.UserSuspended {
			if err := rediskey.RevokeUserSessions(c.Request.Context(), rdb, u.Email); err != nil {
				respondErr(c, err)
				return
			}
		}
		respondOK(c, u)
	}
}
