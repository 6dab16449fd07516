package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"garment_track/internal/lifecycle"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// paramID 解析数字主键路径参数。
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// respondOK 统一成功信封 {code:0, data}。
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "data": data})
}

func respondMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "msg": msg})
}

func respondFail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"code": status, "msg": msg})
}

// respondErr 按错误分类映射 HTTP 状态码。
// 校验 422、越权 403、守卫外动作与非法迁移 409、缺失 404，其余 500。
// 错误一律带原始信息返回，不静默吞掉。
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrValidation):
		respondFail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, lifecycle.ErrPermission):
		respondFail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, lifecycle.ErrPrecondition), errors.Is(err, lifecycle.ErrInvalidTransition):
		respondFail(c, http.StatusConflict, err.Error())
	case errors.Is(err, lifecycle.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		respondFail(c, http.StatusNotFound, err.Error())
	default:
		respondFail(c, http.StatusInternalServerError, err.Error())
	}
}
