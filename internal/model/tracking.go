package model

import "time"

// TrackingUpdate 生产跟踪记录的一条追加项。
// 行只插入不修改：自增主键即时间序，纠错以新条目追加。
type TrackingUpdate struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`

	OrderID    string    `gorm:"size:36;not null;index" json:"orderId"`
	Stage      string    `gorm:"size:32;not null" json:"status"`
	Note       string    `gorm:"size:512" json:"note"`
	ActorEmail string    `gorm:"size:255;not null" json:"-"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}

func (TrackingUpdate) TableName() string { return "tracking_updates" }
