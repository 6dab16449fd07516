package lifecycle

import (
	"fmt"
	"strings"
)

// NewOrderInput 下单请求中需要本地校验的字段。
// 校验必须发生在任何库存扣减或远程调用之前。
type NewOrderInput struct {
	Quantity        int
	FirstName       string
	LastName        string
	ContactNumber   string
	DeliveryAddress string
}

// ValidateNewOrder 校验下单前置条件：数量 ≥ MOQ、数量 ≤ 实时库存、
// 联系信息齐全。任何失败都返回 ErrValidation，调用方不得继续扣库存。
func ValidateNewOrder(in NewOrderInput, moq int, stock int64) error {
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	if moq > 0 && in.Quantity < moq {
		return fmt.Errorf("%w: quantity %d below minimum order quantity %d", ErrValidation, in.Quantity, moq)
	}
	if int64(in.Quantity) > stock {
		return fmt.Errorf("%w: quantity %d exceeds available stock %d", ErrValidation, in.Quantity, stock)
	}
	required := []struct{ name, value string }{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"contactNumber", in.ContactNumber},
		{"deliveryAddress", in.DeliveryAddress},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}

// CanCreateOrder 只有 buyer 角色可以下单。
func CanCreateOrder(actor Role) error {
	if !actor.Can(ActionCreateOrder) {
		return fmt.Errorf("%w: role %s may not create orders", ErrPermission, actor)
	}
	return nil
}

// Approve 校验并执行 pending -> approved。
func Approve(current OrderStatus, actor Role) (OrderStatus, error) {
	if !actor.Can(ActionApproveOrder) {
		return current, fmt.Errorf("%w: role %s may not approve orders", ErrPermission, actor)
	}
	return transition(current, StatusApproved)
}

// Reject 校验并执行 pending -> rejected。
func Reject(current OrderStatus, actor Role) (OrderStatus, error) {
	if !actor.Can(ActionRejectOrder) {
		return current, fmt.Errorf("%w: role %s may not reject orders", ErrPermission, actor)
	}
	return transition(current, StatusRejected)
}

// Cancel 校验并执行 pending -> cancelled。
// 只有订单归属 buyer 本人可以取消，且仅限 pending 状态。
func Cancel(current OrderStatus, actor Role, actorEmail, buyerEmail string) (OrderStatus, error) {
	if !actor.Can(ActionCancelOrder) {
		return current, fmt.Errorf("%w: role %s may not cancel orders", ErrPermission, actor)
	}
	if actorEmail != buyerEmail {
		return current, fmt.Errorf("%w: only the ordering buyer may cancel", ErrPermission)
	}
	return transition(current, StatusCancelled)
}

// Complete 执行 approved -> completed。
// 由跟踪记录到达 Delivered 阶段时触发，不暴露为独立接口。
func Complete(current OrderStatus) (OrderStatus, error) {
	return transition(current, StatusCompleted)
}

// CanAppendTracking 跟踪追加的双重守卫：
// 角色必须是 manager/admin，订单必须处于 approved。
func CanAppendTracking(orderStatus OrderStatus, actor Role) error {
	if !actor.Can(ActionAppendTracking) {
		return fmt.Errorf("%w: role %s may not append tracking updates", ErrPermission, actor)
	}
	if orderStatus != StatusApproved {
		return fmt.Errorf("%w: tracking requires an approved order, got %s", ErrPrecondition, orderStatus)
	}
	return nil
}

// ConfirmPayment 校验 unpaid -> paid。仅 pay-first 订单可达 paid。
func ConfirmPayment(current PaymentStatus, method PaymentMethod) (PaymentStatus, error) {
	if method != PayFirst {
		return current, fmt.Errorf("%w: payment confirmation requires a pay-first order", ErrPrecondition)
	}
	if current == PaymentPaid {
		return current, fmt.Errorf("%w: order already paid", ErrPrecondition)
	}
	return PaymentPaid, nil
}

// transition 迁移表之外的任何尝试都原样返回当前状态。
func transition(from, to OrderStatus) (OrderStatus, error) {
	if !from.CanTransition(to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}
