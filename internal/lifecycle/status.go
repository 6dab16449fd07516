package lifecycle

// OrderStatus 订单生命周期状态。pending 为初始态，
// rejected/cancelled/completed 为终态。
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusRejected  OrderStatus = "rejected"
	StatusCancelled OrderStatus = "cancelled"
	StatusCompleted OrderStatus = "completed"
)

// validNext 枚举全部合法状态迁移，表外一律拒绝。
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusApproved: true, StatusRejected: true, StatusCancelled: true},
	StatusApproved:  {StatusCompleted: true},
	StatusRejected:  {},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether from -> to is in the transition table.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return validNext[s][to]
}

// Terminal 终态不再接受任何状态或跟踪变更。
func (s OrderStatus) Terminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// PaymentStatus 支付状态，只允许 unpaid -> paid，无逆向迁移。
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// PaymentMethod 下单时从商品快照得到的结算方式。
// cash-on-delivery 订单在整个生命周期内保持 unpaid。
type PaymentMethod string

const (
	PayCashOnDelivery PaymentMethod = "cash-on-delivery"
	PayFirst          PaymentMethod = "pay-first"
)

func (m PaymentMethod) Valid() bool {
	return m == PayCashOnDelivery || m == PayFirst
}

// Stages 生产跟踪阶段的固定顺序词表。阶段允许被重复记录，
// 不强制单调推进；Delivered 视为生产链路终点。
var Stages = []string{
	"Cutting",
	"Sewing",
	"Finishing",
	"Quality Check",
	"Packing",
	"Shipped",
	"Delivered",
}

// StageDelivered 触发 approved -> completed 的自动完成。
const StageDelivered = "Delivered"

// ValidStage reports whether stage is one of the fixed production stages.
func ValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}
