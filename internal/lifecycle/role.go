package lifecycle

// Role 封闭的角色集合，每个角色携带自己的许可动作集，
// 统一在生命周期边界检查，避免散落在各处的字符串比较。
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Action 生命周期边界上可被授权的动作。
type Action string

const (
	ActionCreateOrder    Action = "create_order"
	ActionCancelOrder    Action = "cancel_order"
	ActionApproveOrder   Action = "approve_order"
	ActionRejectOrder    Action = "reject_order"
	ActionAppendTracking Action = "append_tracking"
	ActionViewAllOrders  Action = "view_all_orders"
	ActionManageProducts Action = "manage_products"
	ActionManageUsers    Action = "manage_users"
)

var permitted = map[Role]map[Action]bool{
	RoleBuyer: {
		ActionCreateOrder: true,
		ActionCancelOrder: true,
	},
	RoleManager: {
		ActionApproveOrder:   true,
		ActionRejectOrder:    true,
		ActionAppendTracking: true,
		ActionViewAllOrders:  true,
		ActionManageProducts: true,
	},
	RoleAdmin: {
		ActionApproveOrder:   true,
		ActionRejectOrder:    true,
		ActionAppendTracking: true,
		ActionViewAllOrders:  true,
		ActionManageProducts: true,
		ActionManageUsers:    true,
	},
}

// Can reports whether the role may invoke the action.
func (r Role) Can(a Action) bool {
	return permitted[r][a]
}

func (r Role) Valid() bool {
	_, ok := permitted[r]
	return ok
}

// UserStatus 账号状态。pending 的 manager 账号在管理员核验前
// 不能使用员工侧接口；suspended 账号会被强制下线。
type UserStatus string

const (
	UserPending   UserStatus = "pending"
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	return s == UserPending || s == UserActive || s == UserSuspended
}
