package queue

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// Outbox 在请求内把生命周期事件原子写入 Redis Stream，
// 由 Relay 异步转发到 Kafka。写入失败只影响审计，不回滚业务。
type Outbox struct {
	rdb    *rd.Client
	stream string
}

func NewOutbox(rdb *rd.Client, stream string) *Outbox {
	return &Outbox{rdb: rdb, stream: stream}
}

// Append 把事件追加到 stream 尾部。
func (o *Outbox) Append(ctx context.Context, e Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return o.rdb.XAdd(ctx, &rd.XAddArgs{
		Stream: o.stream,
		Values: streamValues(e),
	}).Err()
}

// streamValues Event -> Stream 字段。与 parseEvent 对偶。
func streamValues(e Event) map[string]interface{} {
	return map[string]interface{}{
		"event_id":    e.EventID,
		"order_id":    e.OrderID,
		"type":        string(e.Type),
		"actor_email": e.ActorEmail,
		"stage":       e.Stage,
		"note":        e.Note,
		"occurred_at": e.OccurredAt.Format(time.RFC3339Nano),
	}
}
