package models

// Building 表示楼宇信息，归属于一名经理
type Building struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null" json:"name"`     // 楼宇名称，如"Edificio A"
	Location  string `gorm:"type:varchar(255);not null" json:"location"` // 楼宇地址
	ManagerID uint   `gorm:"not null;index" json:"manager_id"`           // 所属经理ID

	// Relations - 关联关系
	Manager *Manager `gorm:"foreignKey:ManagerID" json:"manager,omitempty"` // 所属经理（多对一）
	Units   []Unit   `gorm:"foreignKey:BuildingID" json:"units,omitempty"`  // 楼宇下的房屋（一对多）
}
