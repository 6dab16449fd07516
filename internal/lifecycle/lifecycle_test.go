package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []OrderStatus{
	StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted,
}

// 迁移表穷举：表外的任何触发都必须失败且不改变状态。
func TestTransitionTable(t *testing.T) {
	const buyer = "buyer@x.com"

	type trigger struct {
		name      string
		from      OrderStatus
		transFunc func(OrderStatus) (OrderStatus, error)
		want      OrderStatus
	}

	var triggers []trigger
	for _, from := range allStatuses {
		triggers = append(triggers,
			trigger{
				name: "approve from " + string(from),
				from: from,
				transFunc: func(s OrderStatus) (OrderStatus, error) {
					return Approve(s, RoleManager)
				},
				want: StatusApproved,
			},
			trigger{
				name: "reject from " + string(from),
				from: from,
				transFunc: func(s OrderStatus) (OrderStatus, error) {
					return Reject(s, RoleAdmin)
				},
				want: StatusRejected,
			},
			trigger{
				name: "cancel from " + string(from),
				from: from,
				transFunc: func(s OrderStatus) (OrderStatus, error) {
					return Cancel(s, RoleBuyer, buyer, buyer)
				},
				want: StatusCancelled,
			},
			trigger{
				name:      "complete from " + string(from),
				from:      from,
				transFunc: Complete,
				want:      StatusCompleted,
			},
		)
	}

	for _, tc := range triggers {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.transFunc(tc.from)
			if tc.from.CanTransition(tc.want) {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tc.from, got, "failed transition must not change state")
		})
	}
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}

func TestApproveRejectPermissions(t *testing.T) {
	for _, role := range []Role{RoleManager, RoleAdmin} {
		got, err := Approve(StatusPending, role)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, got)
	}

	got, err := Approve(StatusPending, RoleBuyer)
	require.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, StatusPending, got)

	got, err = Reject(StatusPending, RoleBuyer)
	require.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, StatusPending, got)
}

func TestCancelOwnership(t *testing.T) {
	// 只有订单归属 buyer 本人可以取消。
	got, err := Cancel(StatusPending, RoleBuyer, "other@x.com", "owner@x.com")
	require.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, StatusPending, got)

	// manager 没有 cancel 动作。
	got, err = Cancel(StatusPending, RoleManager, "owner@x.com", "owner@x.com")
	require.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, StatusPending, got)

	// approved 订单拒绝取消。
	got, err = Cancel(StatusApproved, RoleBuyer, "owner@x.com", "owner@x.com")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusApproved, got)
}

func TestValidateNewOrder(t *testing.T) {
	valid := NewOrderInput{
		Quantity:        50,
		FirstName:       "Ada",
		LastName:        "Rahman",
		ContactNumber:   "+880123456",
		DeliveryAddress: "12 Mill Road, Dhaka",
	}

	tests := []struct {
		name    string
		mutate  func(*NewOrderInput)
		moq     int
		stock   int64
		wantErr bool
	}{
		{name: "valid", moq: 10, stock: 100},
		{name: "quantity below moq", mutate: func(in *NewOrderInput) { in.Quantity = 5 }, moq: 10, stock: 100, wantErr: true},
		{name: "quantity exceeds stock", mutate: func(in *NewOrderInput) { in.Quantity = 200 }, moq: 10, stock: 100, wantErr: true},
		{name: "zero quantity", mutate: func(in *NewOrderInput) { in.Quantity = 0 }, moq: 10, stock: 100, wantErr: true},
		{name: "quantity equals moq", mutate: func(in *NewOrderInput) { in.Quantity = 10 }, moq: 10, stock: 100},
		{name: "quantity equals stock", mutate: func(in *NewOrderInput) { in.Quantity = 100 }, moq: 10, stock: 100},
		{name: "missing first name", mutate: func(in *NewOrderInput) { in.FirstName = " " }, moq: 10, stock: 100, wantErr: true},
		{name: "missing contact", mutate: func(in *NewOrderInput) { in.ContactNumber = "" }, moq: 10, stock: 100, wantErr: true},
		{name: "missing address", mutate: func(in *NewOrderInput) { in.DeliveryAddress = "" }, moq: 10, stock: 100, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			if tc.mutate != nil {
				tc.mutate(&in)
			}
			err := ValidateNewOrder(in, tc.moq, tc.stock)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	got, err := ConfirmPayment(PaymentUnpaid, PayFirst)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, got)

	// COD 订单不可达 paid。
	got, err = ConfirmPayment(PaymentUnpaid, PayCashOnDelivery)
	require.ErrorIs(t, err, ErrPrecondition)
	assert.Equal(t, PaymentUnpaid, got)

	// 无逆向或重复迁移。
	_, err = ConfirmPayment(PaymentPaid, PayFirst)
	require.ErrorIs(t, err, ErrPrecondition)
}

func TestStageVocabulary(t *testing.T) {
	for _, s := range Stages {
		assert.True(t, ValidStage(s), s)
	}
	assert.False(t, ValidStage("Dyeing"))
	assert.False(t, ValidStage("cutting")) // 大小写敏感
	assert.Equal(t, StageDelivered, Stages[len(Stages)-1])
}
