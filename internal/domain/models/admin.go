package models

import "gorm.io/gorm"

// Admin represents system administrators
type Admin struct {
	BaseModel
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Email    string `gorm:"type:varchar(100);unique" json:"email"`
	Status   string `gorm:"type:varchar(20);default:'active'" json:"status"` // Status: active, inactive, locked
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if a.Password != "" {
		hashedPassword, err := HashPassword(a.Password)
		if err != nil {
			return err
		}
		a.Password = hashedPassword
	}
	return nil
}
