package models

// Unit 表示楼宇中的一间房屋，可由一名租户入住
type Unit struct {
	BaseModel
	Number     string `gorm:"type:varchar(10);not null" json:"number"` // 房屋编号，如"101"
	BuildingID uint   `gorm:"not null;index" json:"building_id"`       // 所属楼宇ID
	TenantID   *uint  `gorm:"index" json:"tenant_id"`                  // 入住租户ID，空闲时为NULL；租户删除时置空而非级联

	// Relations - 关联关系
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"` // 所属楼宇（多对一）
	Tenant   *Tenant   `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`     // 入住租户（多对一，可空）
}

// Occupied 返回房屋是否已有租户入住
func (u *Unit) Occupied() bool {
	return u.TenantID != nil
}
