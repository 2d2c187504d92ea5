package models

import "gorm.io/gorm"

// Tenant 表示租户，由登记他的经理直接管理
type Tenant struct {
	BaseModel
	Username  string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password  string `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Contact   string `gorm:"type:varchar(15);unique;not null" json:"contact"`
	ManagerID uint   `gorm:"not null;index" json:"manager_id"` // 登记该租户的经理ID

	// Relations - 关联关系
	Manager   *Manager   `gorm:"foreignKey:ManagerID" json:"manager,omitempty"` // 所属经理（多对一）
	Contracts []Contract `gorm:"foreignKey:TenantID" json:"contracts,omitempty"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.Password != "" && len(t.Password) < 60 {
		hashedPassword, err := HashPassword(t.Password)
		if err != nil {
			return err
		}
		t.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (t *Tenant) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if t.Password != "" && len(t.Password) < 60 {
		hashedPassword, err := HashPassword(t.Password)
		if err != nil {
			return err
		}
		t.Password = hashedPassword
	}
	return nil
}
