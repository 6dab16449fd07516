// Package tracking 维护单个订单的生产阶段历史。
// 历史只追加：不重排、不原地修改，纠错以新条目追加。
package tracking

import (
	"fmt"
	"time"

	"garment_track/internal/lifecycle"
)

// Update 一条阶段更新。
type Update struct {
	Stage      string
	Note       string
	ActorEmail string
	Timestamp  time.Time
}

// Log 某个订单的跟踪日志。首条更新到来时才惰性建档，
// 所以空 updates 的 Log 是合法状态。
type Log struct {
	orderID     string
	orderStatus lifecycle.OrderStatus
	updates     []Update
}

// NewLog 用订单当前状态与已有历史构建日志。
// existing 必须已按时间序排列（自增主键升序即满足）。
func NewLog(orderID string, status lifecycle.OrderStatus, existing []Update) *Log {
	l := &Log{orderID: orderID, orderStatus: status}
	l.updates = append(l.updates, existing...)
	return l
}

func (l *Log) OrderID() string { return l.orderID }

// Append 追加一条阶段更新。
// 守卫：actor 必须是 manager/admin；订单必须处于 approved；
// stage 必须在固定词表内。阶段允许回访，不强制单调推进。
func (l *Log) Append(stage, note string, actor lifecycle.Role, actorEmail string, at time.Time) (Update, error) {
	if err := lifecycle.CanAppendTracking(l.orderStatus, actor); err != nil {
		return Update{}, err
	}
	if !lifecycle.ValidStage(stage) {
		return Update{}, fmt.Errorf("%w: unknown production stage %q", lifecycle.ErrValidation, stage)
	}
	if at.IsZero() {
		at = time.Now()
	}
	u := Update{Stage: stage, Note: note, ActorEmail: actorEmail, Timestamp: at}
	l.updates = append(l.updates, u)
	return u, nil
}

// Latest 最近一条更新；历史为空时 ok=false。
// 用于预填“当前状态”。
func (l *Log) Latest() (Update, bool) {
	if len(l.updates) == 0 {
		return Update{}, false
	}
	return l.updates[len(l.updates)-1], true
}

// History 按时间序返回全部历史的副本。
// 倒序展示是展示层的事情。
func (l *Log) History() []Update {
	out := make([]Update, len(l.updates))
	copy(out, l.updates)
	return out
}

// Delivered reports whether the latest stage is Delivered,
// 即订单应当自动迁移到 completed。
func (l *Log) Delivered() bool {
	u, ok := l.Latest()
	return ok && u.Stage == lifecycle.StageDelivered
}
