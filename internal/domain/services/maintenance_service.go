package services

import (
	"errors"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceMaintenanceService 定义维修工单服务接口
type InterfaceMaintenanceService interface {
	GetRequestsByManager(managerID uint) ([]models.MaintenanceRequest, error)
	GetRequestsByTenant(tenantID uint) ([]models.MaintenanceRequest, error)
	CreateTenantRequest(tenantID uint, reqType, description string) (*models.MaintenanceRequest, error)
	CreateManagerRequest(managerID uint, reqType, description, targetType string, targetID uint) (*models.MaintenanceRequest, error)
	UpdateStatus(managerID, id uint, status string) (*models.MaintenanceRequest, error)
	DeleteRequest(managerID, id uint) error
}

// MaintenanceService 提供维修工单相关的服务
type MaintenanceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMaintenanceService 创建一个新的维修工单服务
func NewMaintenanceService(db *gorm.DB, cfg *config.Config) InterfaceMaintenanceService {
	return &MaintenanceService{
		DB:     db,
		Config: cfg,
	}
}

// managerScope 经理可见的工单：挂在其楼宇内房屋上的，或直接挂在其楼宇上的
func (s *MaintenanceService) managerScope(db *gorm.DB, managerID uint) *gorm.DB {
	return db.Where(
		"(target_type = ? AND target_id IN (SELECT units.id FROM units JOIN buildings ON buildings.id = units.building_id WHERE buildings.manager_id = ?))"+
			" OR (target_type = ? AND target_id IN (SELECT id FROM buildings WHERE manager_id = ?))",
		models.MaintenanceTargetUnit, managerID,
		models.MaintenanceTargetBuilding, managerID,
	)
}

// 1. GetRequestsByManager 获取某经理可见的全部工单，按申请时间倒序
func (s *MaintenanceService) GetRequestsByManager(managerID uint) ([]models.MaintenanceRequest, error) {
	var requests []models.MaintenanceRequest
	if err := s.managerScope(s.DB, managerID).
		Order("requested_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// 2. GetRequestsByTenant 获取某租户自己发起的全部工单
func (s *MaintenanceService) GetRequestsByTenant(tenantID uint) ([]models.MaintenanceRequest, error) {
	var requests []models.MaintenanceRequest
	if err := s.DB.
		Where("requester_role = ? AND requester_id = ?", models.MaintenanceRequesterTenant, tenantID).
		Order("requested_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// 3. CreateTenantRequest 租户报修：只能挂在自己入住的房屋上，且不允许"general"类型
func (s *MaintenanceService) CreateTenantRequest(tenantID uint, reqType, description string) (*models.MaintenanceRequest, error) {
	if !models.ValidMaintenanceType(reqType) {
		return nil, errors.New("维修类型无效")
	}
	if reqType == models.MaintenanceTypeGeneral {
		return nil, errors.New("租户不能发起整栋楼宇的一般性维修")
	}

	// 找到租户入住的房屋；没有房屋则无法报修
	var unit models.Unit
	if err := s.DB.Where("tenant_id = ?", tenantID).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNoUnit
		}
		return nil, err
	}

	request := models.MaintenanceRequest{
		Type:          reqType,
		Description:   description,
		Status:        models.MaintenanceStatusPending,
		TargetType:    models.MaintenanceTargetUnit,
		TargetID:      unit.ID,
		RequesterRole: models.MaintenanceRequesterTenant,
		RequesterID:   tenantID,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// 4. CreateManagerRequest 经理发起工单：房屋工单限自己楼宇内的房屋；
// 楼宇级工单限自己的楼宇且类型必须为"general"
func (s *MaintenanceService) CreateManagerRequest(managerID uint, reqType, description, targetType string, targetID uint) (*models.MaintenanceRequest, error) {
	if !models.ValidMaintenanceType(reqType) {
		return nil, errors.New("维修类型无效")
	}

	switch targetType {
	case models.MaintenanceTargetUnit:
		if reqType == models.MaintenanceTypeGeneral {
			return nil, errors.New("房屋工单不能使用general类型")
		}
		// 服务端重新校验房屋归属
		var unit models.Unit
		if err := s.DB.Joins("JOIN buildings ON buildings.id = units.building_id").
			Where("units.id = ? AND buildings.manager_id = ?", targetID, managerID).
			First(&unit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
	case models.MaintenanceTargetBuilding:
		if reqType != models.MaintenanceTypeGeneral {
			return nil, errors.New("楼宇级工单必须使用general类型")
		}
		var building models.Building
		if err := s.DB.Where("id = ? AND manager_id = ?", targetID, managerID).First(&building).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
	default:
		return nil, errors.New("维修工单必须挂在房屋或楼宇之一")
	}

	request := models.MaintenanceRequest{
		Type:          reqType,
		Description:   description,
		Status:        models.MaintenanceStatusPending,
		TargetType:    targetType,
		TargetID:      targetID,
		RequesterRole: models.MaintenanceRequesterManager,
		RequesterID:   managerID,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// 5. UpdateStatus 更新工单状态；只能操作自己范围内的工单
func (s *MaintenanceService) UpdateStatus(managerID, id uint, status string) (*models.MaintenanceRequest, error) {
	if !models.ValidMaintenanceStatus(status) {
		return nil, errors.New("维修状态无效")
	}

	var request models.MaintenanceRequest
	if err := s.managerScope(s.DB, managerID).Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&request).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// 6. DeleteRequest 删除工单：房屋工单要求其楼宇属于该经理；
// 楼宇级工单要求就是该经理本人发起的
func (s *MaintenanceService) DeleteRequest(managerID, id uint) error {
	var request models.MaintenanceRequest
	if err := s.DB.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	switch request.TargetType {
	case models.MaintenanceTargetUnit:
		var count int64
		if err := s.DB.Model(&models.Unit{}).
			Joins("JOIN buildings ON buildings.id = units.building_id").
			Where("units.id = ? AND buildings.manager_id = ?", request.TargetID, managerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRecordNotFound
		}
	case models.MaintenanceTargetBuilding:
		if request.RequesterRole != models.MaintenanceRequesterManager || request.RequesterID != managerID {
			return ErrRecordNotFound
		}
	default:
		return ErrRecordNotFound
	}

	return s.DB.Delete(&request).Error
}
