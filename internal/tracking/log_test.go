package tracking

import (
	"testing"
	"time"

	"garment_track/internal/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedLog() *Log {
	return NewLog("ord-1", lifecycle.StatusApproved, nil)
}

func TestAppendRequiresApprovedOrder(t *testing.T) {
	for _, status := range []lifecycle.OrderStatus{
		lifecycle.StatusPending,
		lifecycle.StatusRejected,
		lifecycle.StatusCancelled,
		lifecycle.StatusCompleted,
	} {
		l := NewLog("ord-1", status, nil)
		_, err := l.Append("Cutting", "", lifecycle.RoleManager, "m@x.com", time.Now())
		require.ErrorIs(t, err, lifecycle.ErrPrecondition, "status %s", status)
		assert.Empty(t, l.History())
	}
}

func TestAppendRequiresStaffRole(t *testing.T) {
	l := approvedLog()
	_, err := l.Append("Cutting", "", lifecycle.RoleBuyer, "b@x.com", time.Now())
	require.ErrorIs(t, err, lifecycle.ErrPermission)
	assert.Empty(t, l.History())
}

func TestAppendRejectsUnknownStage(t *testing.T) {
	l := approvedLog()
	_, err := l.Append("Bleaching", "", lifecycle.RoleManager, "m@x.com", time.Now())
	require.ErrorIs(t, err, lifecycle.ErrValidation)
	assert.Empty(t, l.History())
}

// 三条更新按序追加，history 原样返回，latest 为最后一条。
func TestHistoryPreservesAppendOrder(t *testing.T) {
	l := approvedLog()
	base := time.Now()
	for i, stage := range []string{"Cutting", "Sewing", "Finishing"} {
		_, err := l.Append(stage, "", lifecycle.RoleManager, "m@x.com", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	h := l.History()
	require.Len(t, h, 3)
	assert.Equal(t, "Cutting", h[0].Stage)
	assert.Equal(t, "Sewing", h[1].Stage)
	assert.Equal(t, "Finishing", h[2].Stage)

	latest, ok := l.Latest()
	require.True(t, ok)
	assert.Equal(t, "Finishing", latest.Stage)
}

func TestLatestOnEmptyLog(t *testing.T) {
	_, ok := approvedLog().Latest()
	assert.False(t, ok)
}

// 阶段允许回访，不强制单调推进。
func TestStagesMayBeRevisited(t *testing.T) {
	l := approvedLog()
	for _, stage := range []string{"Sewing", "Cutting", "Sewing"} {
		_, err := l.Append(stage, "rework", lifecycle.RoleAdmin, "a@x.com", time.Now())
		require.NoError(t, err)
	}
	assert.Len(t, l.History(), 3)
}

func TestHistoryReturnsCopy(t *testing.T) {
	l := approvedLog()
	_, err := l.Append("Cutting", "", lifecycle.RoleManager, "m@x.com", time.Now())
	require.NoError(t, err)

	h := l.History()
	h[0].Stage = "tampered"

	fresh := l.History()
	assert.Equal(t, "Cutting", fresh[0].Stage)
}

func TestDelivered(t *testing.T) {
	l := approvedLog()
	assert.False(t, l.Delivered())

	_, err := l.Append("Shipped", "", lifecycle.RoleManager, "m@x.com", time.Now())
	require.NoError(t, err)
	assert.False(t, l.Delivered())

	_, err = l.Append("Delivered", "", lifecycle.RoleManager, "m@x.com", time.Now())
	require.NoError(t, err)
	assert.True(t, l.Delivered())
}

func TestAppendDefaultsTimestamp(t *testing.T) {
	l := approvedLog()
	u, err := l.Append("Cutting", "", lifecycle.RoleManager, "m@x.com", time.Time{})
	require.NoError(t, err)
	assert.False(t, u.Timestamp.IsZero())
}

// 端到端：下单 -> 审批 -> 首条跟踪 -> 买家尝试取消必须失败，
// 订单保持 approved。
func TestApprovedOrderCannotBeCancelledAfterTracking(t *testing.T) {
	const buyer = "buyer@x.com"

	status := lifecycle.StatusPending

	status, err := lifecycle.Approve(status, lifecycle.RoleManager)
	require.NoError(t, err)
	require.Equal(t, lifecycle.StatusApproved, status)

	l := NewLog("ord-7", status, nil)
	_, err = l.Append("Cutting", "first batch on the table", lifecycle.RoleManager, "m@x.com", time.Now())
	require.NoError(t, err)

	got, err := lifecycle.Cancel(status, lifecycle.RoleBuyer, buyer, buyer)
	require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.Equal(t, lifecycle.StatusApproved, got)
}
