package model

import "time"

// OrderEvent 由 Kafka 消费者落库的生命周期事件审计行。
// EventID 唯一索引保证重复消费幂等。
type OrderEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EventID    string    `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	OrderID    string    `gorm:"size:36;not null;index" json:"order_id"`
	Type       string    `gorm:"size:32;not null;index" json:"type"`
	ActorEmail string    `gorm:"size:255" json:"actor_email"`
	Stage      string    `gorm:"size:32" json:"stage,omitempty"`
	Note       string    `gorm:"size:512" json:"note,omitempty"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
}

func (OrderEvent) TableName() string { return "order_events" }
