package models

import "gorm.io/gorm"

// Manager 表示楼宇经理，管理自己名下的楼宇与租户
type Manager struct {
	BaseModel
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Contact  string `gorm:"type:varchar(15);unique;not null" json:"contact"`

	// Relations - 关联关系
	Buildings []Building `gorm:"foreignKey:ManagerID" json:"buildings,omitempty"` // 名下楼宇（一对多）
	Tenants   []Tenant   `gorm:"foreignKey:ManagerID" json:"tenants,omitempty"`   // 名下租户（一对多）
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (m *Manager) BeforeCreate(tx *gorm.DB) error {
	if m.Password != "" && len(m.Password) < 60 {
		hashedPassword, err := HashPassword(m.Password)
		if err != nil {
			return err
		}
		m.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (m *Manager) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if m.Password != "" && len(m.Password) < 60 {
		hashedPassword, err := HashPassword(m.Password)
		if err != nil {
			return err
		}
		m.Password = hashedPassword
	}
	return nil
}
