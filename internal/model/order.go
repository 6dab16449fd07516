package model

import (
	"time"

	"garment_track/internal/lifecycle"
)

// Order 成衣订单。下单时快照商品标题与单价，
// 状态只沿迁移表前进，订单永不删除。
type Order struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ProductID    uint   `gorm:"not null;index" json:"productId"`
	ProductTitle string `gorm:"size:255;not null" json:"productTitle"`
	BuyerEmail   string `gorm:"size:255;not null;index" json:"buyerEmail"`

	Quantity   int     `gorm:"not null" json:"quantity"`
	TotalPrice float64 `gorm:"not null" json:"totalPrice"` // quantity × 下单时单价

	Status        lifecycle.OrderStatus   `gorm:"size:16;not null;default:pending;index" json:"status"`
	PaymentStatus lifecycle.PaymentStatus `gorm:"size:16;not null;default:unpaid" json:"paymentStatus"`
	PaymentMethod lifecycle.PaymentMethod `gorm:"size:32;not null" json:"paymentMethod"`
	TransactionID string                  `gorm:"size:64" json:"transactionId,omitempty"`

	// 收货信息
	FirstName       string `gorm:"size:64;not null" json:"firstName"`
	LastName        string `gorm:"size:64;not null" json:"lastName"`
	ContactNumber   string `gorm:"size:32;not null" json:"contactNumber"`
	DeliveryAddress string `gorm:"size:512;not null" json:"deliveryAddress"`
	Notes           string `gorm:"size:512" json:"notes,omitempty"`

	OrderedAt time.Time `gorm:"not null" json:"orderedAt"`
}

func (Order) TableName() string { return "orders" }
