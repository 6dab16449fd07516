package lifecycle

import "errors"

// 统一错误分类：路由层据此映射 HTTP 状态码，
// 业务层用 errors.Is 判断，不比较字符串。
var (
	// ErrValidation 输入不合法（数量低于 MOQ、缺少必填字段等）。
	ErrValidation = errors.New("validation failed")
	// ErrPermission 角色或归属不匹配。
	ErrPermission = errors.New("permission denied")
	// ErrPrecondition 动作落在状态机当前守卫之外（如对非 approved 订单加跟踪）。
	ErrPrecondition = errors.New("precondition failed")
	// ErrInvalidTransition 状态迁移不在迁移表内，状态保持不变。
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotFound 目标实体不存在。
	ErrNotFound = errors.New("not found")
)
