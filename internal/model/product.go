package model

import (
	"time"

	"garment_track/internal/lifecycle"

	"gorm.io/gorm"
)

// Product 成衣商品：标题、单价、库存、起订量、结算方式。
// Quantity 表示 DB 内的权威库存；下单实时扣减走 Redis 计数器。
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"size:2048" json:"description"`
	Category    string  `gorm:"size:64;index" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int64   `gorm:"not null;default:0" json:"quantity"` // 库存
	MOQ         int     `gorm:"column:moq;not null;default:1" json:"moq"`

	PaymentOption lifecycle.PaymentMethod `gorm:"size:32;not null;default:cash-on-delivery" json:"paymentOption"`

	ManagerEmail string `gorm:"size:255;not null;index" json:"managerEmail"`
	ShowOnHome   bool   `gorm:"not null;default:false" json:"showOnHome"`
	DemoVideo    string `gorm:"size:512" json:"demoVideo,omitempty"`
}

func (Product) TableName() string { return "products" }
