package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "成功",
	ErrUnknown:          "未知错误",
	ErrBind:             "请求参数绑定错误",
	ErrValidation:       "请求参数验证错误",
	ErrTokenInvalid:     "无效的认证令牌",
	ErrPermissionDenied: "权限不足",
	ErrTooManyRequests:  "请求频率过高",

	// 用户与认证相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 经理相关错误码
	ErrManagerNotFound:     "经理不存在",
	ErrManagerAlreadyExist: "经理已存在",
	ErrManagerProtected:    "该经理名下仍有楼宇，无法删除",

	// 楼宇相关错误码
	ErrBuildingNotFound:     "楼宇不存在",
	ErrBuildingAlreadyExist: "楼宇已存在",

	// 房屋相关错误码
	ErrUnitNotFound: "房屋不存在",
	ErrUnitOccupied: "该房屋已有租户入住",

	// 租户相关错误码
	ErrTenantNotFound:     "租户不存在",
	ErrTenantAlreadyExist: "租户已存在",
	ErrTenantHasContract:  "该租户已有生效合同",
	ErrTenantNoUnit:       "该租户名下没有房屋",

	// 合同相关错误码
	ErrContractNotFound: "合同不存在",
	ErrContractInvalid:  "合同参数无效",

	// 缴费相关错误码
	ErrPaymentNotFound:  "缴费记录不存在",
	ErrPaymentDuplicate: "该月份的缴费记录已存在",

	// 维修工单相关错误码
	ErrMaintenanceNotFound:      "维修工单不存在",
	ErrMaintenanceInvalidType:   "维修类型无效",
	ErrMaintenanceInvalidStatus: "维修状态无效",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 用户与认证相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 经理相关错误码
	ErrManagerNotFound:     StatusNotFound,
	ErrManagerAlreadyExist: StatusBadRequest,
	ErrManagerProtected:    StatusBadRequest,

	// 楼宇相关错误码
	ErrBuildingNotFound:     StatusNotFound,
	ErrBuildingAlreadyExist: StatusBadRequest,

	// 房屋相关错误码
	ErrUnitNotFound: StatusNotFound,
	ErrUnitOccupied: StatusBadRequest,

	// 租户相关错误码
	ErrTenantNotFound:     StatusNotFound,
	ErrTenantAlreadyExist: StatusBadRequest,
	ErrTenantHasContract:  StatusBadRequest,
	ErrTenantNoUnit:       StatusBadRequest,

	// 合同相关错误码
	ErrContractNotFound: StatusNotFound,
	ErrContractInvalid:  StatusBadRequest,

	// 缴费相关错误码
	ErrPaymentNotFound:  StatusNotFound,
	ErrPaymentDuplicate: StatusBadRequest,

	// 维修工单相关错误码
	ErrMaintenanceNotFound:      StatusNotFound,
	ErrMaintenanceInvalidType:   StatusBadRequest,
	ErrMaintenanceInvalidStatus: StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 根据错误码获取对应的消息
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 根据错误码获取对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
