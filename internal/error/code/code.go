package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: 权限不足.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户与认证相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
)

// 经理相关错误码 (102xxx).
const (
	// ErrManagerNotFound - 404: 经理不存在.
	ErrManagerNotFound int = iota + 102000
	// ErrManagerAlreadyExist - 400: 经理已存在.
	ErrManagerAlreadyExist
	// ErrManagerProtected - 400: 经理名下仍有楼宇，无法删除.
	ErrManagerProtected
)

// 楼宇相关错误码 (103xxx).
const (
	// ErrBuildingNotFound - 404: 楼宇不存在.
	ErrBuildingNotFound int = iota + 103000
	// ErrBuildingAlreadyExist - 400: 楼宇已存在.
	ErrBuildingAlreadyExist
)

// 房屋相关错误码 (104xxx).
const (
	// ErrUnitNotFound - 404: 房屋不存在.
	ErrUnitNotFound int = iota + 104000
	// ErrUnitOccupied - 400: 房屋已有租户.
	ErrUnitOccupied
)

// 租户相关错误码 (105xxx).
const (
	// ErrTenantNotFound - 404: 租户不存在.
	ErrTenantNotFound int = iota + 105000
	// ErrTenantAlreadyExist - 400: 租户已存在.
	ErrTenantAlreadyExist
	// ErrTenantHasContract - 400: 租户已有生效合同.
	ErrTenantHasContract
	// ErrTenantNoUnit - 400: 租户名下没有房屋.
	ErrTenantNoUnit
)

// 合同相关错误码 (106xxx).
const (
	// ErrContractNotFound - 404: 合同不存在.
	ErrContractNotFound int = iota + 106000
	// ErrContractInvalid - 400: 合同参数无效.
	ErrContractInvalid
)

// 缴费相关错误码 (107xxx).
const (
	// ErrPaymentNotFound - 404: 缴费记录不存在.
	ErrPaymentNotFound int = iota + 107000
	// ErrPaymentDuplicate - 400: 缴费记录重复.
	ErrPaymentDuplicate
)

// 维修工单相关错误码 (108xxx).
const (
	// ErrMaintenanceNotFound - 404: 维修工单不存在.
	ErrMaintenanceNotFound int = iota + 108000
	// ErrMaintenanceInvalidType - 400: 维修类型无效.
	ErrMaintenanceInvalidType
	// ErrMaintenanceInvalidStatus - 400: 维修状态无效.
	ErrMaintenanceInvalidStatus
)

// 数据库相关错误码 (109xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 109000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
