package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType 订单生命周期事件类型。
type EventType string

const (
	EventOrderCreated     EventType = "order_created"
	EventOrderApproved    EventType = "order_approved"
	EventOrderRejected    EventType = "order_rejected"
	EventOrderCancelled   EventType = "order_cancelled"
	EventOrderCompleted   EventType = "order_completed"
	EventPaymentConfirmed EventType = "payment_confirmed"
	EventTrackingAppended EventType = "tracking_appended"
)

// Event 是写入 outbox/Kafka 的生命周期事件。
// EventID 作为整条链路的幂等主键。
type Event struct {
	EventID    string    `json:"event_id"`
	OrderID    string    `json:"order_id"`
	Type       EventType `json:"type"`
	ActorEmail string    `json:"actor_email"`
	Stage      string    `json:"stage,omitempty"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent 生成带新 EventID 与当前时间戳的事件。
func NewEvent(orderID string, t EventType, actorEmail string) Event {
	return Event{
		EventID:    uuid.New().String(),
		OrderID:    orderID,
		Type:       t,
		ActorEmail: actorEmail,
		OccurredAt: time.Now().UTC(),
	}
}

// Validate 做最小字段校验，防止消费者处理脏消息。
func (e Event) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if e.OrderID == "" {
		return fmt.Errorf("order_id is required")
	}
	switch e.Type {
	case EventOrderCreated, EventOrderApproved, EventOrderRejected,
		EventOrderCancelled, EventOrderCompleted,
		EventPaymentConfirmed, EventTrackingAppended:
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("occurred_at is required")
	}
	return nil
}
