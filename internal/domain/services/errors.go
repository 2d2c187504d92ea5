package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// 业务哨兵错误，控制器据此映射到对应的错误码
// 越权访问一律折叠为"记录不存在"，避免资源枚举
var (
	ErrRecordNotFound   = errors.New("记录不存在")
	ErrManagerProtected = errors.New("该经理名下仍有楼宇，无法删除")
	ErrUnitOccupied     = errors.New("该房屋已有租户入住")
	ErrTenantHasContract = errors.New("该租户已有生效合同")
	ErrTenantNoUnit      = errors.New("该租户名下没有房屋")
)

// isDuplicateKeyErr 判断是否为唯一约束冲突
// MySQL 与 SQLite（测试环境）返回的错误文本不同，gorm 的翻译也不总是开启
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
