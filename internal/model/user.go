package model

import (
	"time"

	"garment_track/internal/lifecycle"
)

// User 账号，身份认证在外部完成，这里只存角色与状态。
// Email 是订单归属的外键。
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name  string         `gorm:"size:128" json:"name"`
	Role  lifecycle.Role `gorm:"size:16;not null;default:buyer;index" json:"role"`

	Status lifecycle.UserStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	// 停用原因与反馈随 403 响应返回给被停用账号。
	SuspendReason   string `gorm:"size:255" json:"suspendReason,omitempty"`
	SuspendFeedback string `gorm:"size:512" json:"suspendFeedback,omitempty"`
}

func (User) TableName() string { return "users" }
