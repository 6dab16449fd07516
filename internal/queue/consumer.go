package queue

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"garment_track/internal/model"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// Consumer 消费生命周期事件并落成 order_events 审计行。
type Consumer struct {
	r  *kafka.Reader
	db *gorm.DB
}

func NewConsumer(brokers []string, topic, groupID string, db *gorm.DB) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
		}),
		db: db,
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancel / 连接断开等
		}

		var e Event
		if err := json.Unmarshal(m.Value, &e); err != nil {
			log.Printf("consumer unmarshal: %v", err)
			continue
		}
		if err := e.Validate(); err != nil {
			log.Printf("consumer invalid event: %v", err)
			continue
		}

		row := &model.OrderEvent{
			EventID:    e.EventID,
			OrderID:    e.OrderID,
			Type:       string(e.Type),
			ActorEmail: e.ActorEmail,
			Stage:      e.Stage,
			Note:       e.Note,
			OccurredAt: e.OccurredAt,
		}

		if err := c.db.Create(row).Error; err != nil {
			// 幂等：重复消息导致 UNIQUE 冲突，直接当作成功
			if errorsLikeUnique(err) {
				continue
			}
			log.Printf("consumer db create: %v", err)
			continue
		}
	}
}

func errorsLikeUnique(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")
}
