package services

import (
	"errors"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceUnitService 定义房屋服务接口
type InterfaceUnitService interface {
	GetUnitsByManager(managerID uint) ([]models.Unit, error)
	GetManagerUnit(managerID, id uint) (*models.Unit, error)
	GetVacantUnitsByManager(managerID uint) ([]models.Unit, error)
	CreateUnit(managerID uint, unit *models.Unit) error
	UpdateUnit(managerID, id uint, updates map[string]interface{}) (*models.Unit, error)
	DeleteUnit(managerID, id uint) error
	GetUnitByTenant(tenantID uint) (*models.Unit, error)
}

// UnitService 提供房屋相关的服务
type UnitService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUnitService 创建一个新的房屋服务
func NewUnitService(db *gorm.DB, cfg *config.Config) InterfaceUnitService {
	return &UnitService{
		DB:     db,
		Config: cfg,
	}
}

// managerScope 将查询限定在某经理名下楼宇的房屋范围内
func (s *UnitService) managerScope(managerID uint) *gorm.DB {
	return s.DB.Joins("JOIN buildings ON buildings.id = units.building_id").
		Where("buildings.manager_id = ?", managerID)
}

// 1. GetUnitsByManager 获取某经理名下所有楼宇的房屋
func (s *UnitService) GetUnitsByManager(managerID uint) ([]models.Unit, error) {
	var units []models.Unit
	if err := s.managerScope(managerID).
		Preload("Building").Preload("Tenant").
		Order("units.building_id, units.number").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// 2. GetManagerUnit 获取某经理名下的指定房屋；范围外一律视为不存在
func (s *UnitService) GetManagerUnit(managerID, id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := s.managerScope(managerID).
		Where("units.id = ?", id).
		Preload("Building").Preload("Tenant").
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// 3. GetVacantUnitsByManager 获取某经理名下所有空闲房屋
func (s *UnitService) GetVacantUnitsByManager(managerID uint) ([]models.Unit, error) {
	var units []models.Unit
	if err := s.managerScope(managerID).
		Where("units.tenant_id IS NULL").
		Preload("Building").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// 4. CreateUnit 创建新房屋；楼宇必须属于该经理
func (s *UnitService) CreateUnit(managerID uint, unit *models.Unit) error {
	// 服务端重新校验楼宇归属，不信任客户端提交的外键
	var building models.Building
	if err := s.DB.Where("id = ? AND manager_id = ?", unit.BuildingID, managerID).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	// 如指定了入住租户，租户必须属于该经理
	if unit.TenantID != nil {
		var tenant models.Tenant
		if err := s.DB.Where("id = ? AND manager_id = ?", *unit.TenantID, managerID).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
	}

	return s.DB.Create(unit).Error
}

// 5. UpdateUnit 更新房屋信息
func (s *UnitService) UpdateUnit(managerID, id uint, updates map[string]interface{}) (*models.Unit, error) {
	unit, err := s.GetManagerUnit(managerID, id)
	if err != nil {
		return nil, err
	}

	// 如更换所属楼宇，目标楼宇必须属于该经理
	if buildingID, ok := updates["building_id"].(uint); ok {
		var building models.Building
		if err := s.DB.Where("id = ? AND manager_id = ?", buildingID, managerID).First(&building).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
	}

	// 如更换入住租户，租户必须属于该经理
	if tenantID, ok := updates["tenant_id"].(*uint); ok && tenantID != nil {
		var tenant models.Tenant
		if err := s.DB.Where("id = ? AND manager_id = ?", *tenantID, managerID).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
	}

	if err := s.DB.Model(unit).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetManagerUnit(managerID, id)
}

// 6. DeleteUnit 删除房屋；仍被合同引用时拒绝删除
func (s *UnitService) DeleteUnit(managerID, id uint) error {
	unit, err := s.GetManagerUnit(managerID, id)
	if err != nil {
		return err
	}

	var contractCount int64
	if err := s.DB.Model(&models.Contract{}).Where("unit_id = ?", id).Count(&contractCount).Error; err != nil {
		return err
	}
	if contractCount > 0 {
		return errors.New("该房屋仍被合同引用，无法删除")
	}

	return s.DB.Delete(unit).Error
}

// 7. GetUnitByTenant 获取某租户当前入住的房屋
func (s *UnitService) GetUnitByTenant(tenantID uint) (*models.Unit, error) {
	var unit models.Unit
	if err := s.DB.Where("tenant_id = ?", tenantID).Preload("Building").First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &unit, nil
}
