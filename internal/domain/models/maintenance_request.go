package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// 维修类型
const (
	MaintenanceTypeElectrical = "electrical" // 电路
	MaintenanceTypeHydraulic  = "hydraulic"  // 水路
	MaintenanceTypeStructural = "structural" // 结构
	MaintenanceTypeGeneral    = "general"    // 整栋楼宇的一般性维修
)

// 维修状态
const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusDone       = "done"
	MaintenanceStatusCancelled  = "cancelled"
)

// 工单位置类型：工单要么挂在某间房屋上，要么挂在整栋楼宇上，二者必居其一
const (
	MaintenanceTargetUnit     = "unit"
	MaintenanceTargetBuilding = "building"
)

// 工单发起人角色
const (
	MaintenanceRequesterTenant  = "tenant"
	MaintenanceRequesterManager = "manager"
)

// MaintenanceRequest 表示维修工单
// 位置采用 target_type + target_id 的带标签变体，而不是两个可空外键
type MaintenanceRequest struct {
	BaseModel
	Type          string    `gorm:"type:varchar(20);not null" json:"type"`
	Description   string    `gorm:"type:text" json:"description"`
	Status        string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RequestedAt   time.Time `gorm:"autoCreateTime" json:"requested_at"`
	TargetType    string    `gorm:"type:varchar(10);not null;index:idx_maintenance_target" json:"target_type"` // unit 或 building
	TargetID      uint      `gorm:"not null;index:idx_maintenance_target" json:"target_id"`
	RequesterRole string    `gorm:"type:varchar(10);not null" json:"requester_role"` // tenant 或 manager
	RequesterID   uint      `gorm:"not null" json:"requester_id"`
}

// ValidMaintenanceType 检查维修类型是否合法
func ValidMaintenanceType(t string) bool {
	switch t {
	case MaintenanceTypeElectrical, MaintenanceTypeHydraulic, MaintenanceTypeStructural, MaintenanceTypeGeneral:
		return true
	}
	return false
}

// ValidMaintenanceStatus 检查维修状态是否合法
func ValidMaintenanceStatus(s string) bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusDone, MaintenanceStatusCancelled:
		return true
	}
	return false
}

// BeforeSave 是一个GORM钩子，保证位置与发起人标签在存储层就是合法的
func (m *MaintenanceRequest) BeforeSave(tx *gorm.DB) error {
	if m.TargetType != MaintenanceTargetUnit && m.TargetType != MaintenanceTargetBuilding {
		return errors.New("维修工单必须挂在房屋或楼宇之一")
	}
	if m.TargetID == 0 {
		return errors.New("维修工单缺少位置ID")
	}
	if m.RequesterRole != MaintenanceRequesterTenant && m.RequesterRole != MaintenanceRequesterManager {
		return errors.New("维修工单发起人角色无效")
	}
	if !ValidMaintenanceType(m.Type) {
		return errors.New("维修类型无效")
	}
	return nil
}
