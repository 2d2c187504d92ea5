package services

import (
	"errors"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceBuildingService 定义楼宇服务接口
type InterfaceBuildingService interface {
	GetAllBuildings(page, pageSize int) ([]models.Building, int64, error)
	GetBuildingByID(id uint) (*models.Building, error)
	CreateBuilding(building *models.Building) error
	UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error)
	DeleteBuilding(id uint) error
	GetBuildingsByManager(managerID uint) ([]models.Building, error)
	GetManagerBuilding(managerID, id uint) (*models.Building, error)
}

// BuildingService 提供楼宇相关的服务
type BuildingService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBuildingService 创建一个新的楼宇服务
func NewBuildingService(db *gorm.DB, cfg *config.Config) InterfaceBuildingService {
	return &BuildingService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllBuildings 获取所有楼宇列表（管理员视角），支持分页
func (s *BuildingService) GetAllBuildings(page, pageSize int) ([]models.Building, int64, error) {
	var buildings []models.Building
	var total int64

	if err := s.DB.Model(&models.Building{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Preload("Manager").Limit(pageSize).Offset(offset).Find(&buildings).Error; err != nil {
		return nil, 0, err
	}

	return buildings, total, nil
}

// 2. GetBuildingByID 根据ID获取楼宇
func (s *BuildingService) GetBuildingByID(id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.Preload("Manager").Preload("Units").First(&building, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &building, nil
}

// 3. CreateBuilding 创建新楼宇；所属经理必须存在
func (s *BuildingService) CreateBuilding(building *models.Building) error {
	var manager models.Manager
	if err := s.DB.First(&manager, building.ManagerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	return s.DB.Create(building).Error
}

// 4. UpdateBuilding 更新楼宇信息
func (s *BuildingService) UpdateBuilding(id uint, updates map[string]interface{}) (*models.Building, error) {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更换所属经理，需要验证其存在
	if managerID, ok := updates["manager_id"].(uint); ok {
		var manager models.Manager
		if err := s.DB.First(&manager, managerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("所属经理不存在")
			}
			return nil, err
		}
	}

	if err := s.DB.Model(building).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetBuildingByID(id)
}

// 5. DeleteBuilding 删除楼宇；楼内仍有房屋时拒绝删除
func (s *BuildingService) DeleteBuilding(id uint) error {
	building, err := s.GetBuildingByID(id)
	if err != nil {
		return err
	}

	var unitCount int64
	if err := s.DB.Model(&models.Unit{}).Where("building_id = ?", id).Count(&unitCount).Error; err != nil {
		return err
	}
	if unitCount > 0 {
		return errors.New("该楼宇下仍有房屋，无法删除")
	}

	return s.DB.Delete(building).Error
}

// 6. GetBuildingsByManager 获取某经理名下的所有楼宇
func (s *BuildingService) GetBuildingsByManager(managerID uint) ([]models.Building, error) {
	var buildings []models.Building
	if err := s.DB.Where("manager_id = ?", managerID).Order("name").Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

// 7. GetManagerBuilding 获取某经理名下的指定楼宇；范围外一律视为不存在
func (s *BuildingService) GetManagerBuilding(managerID, id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.Preload("Units").Where("id = ? AND manager_id = ?", id, managerID).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &building, nil
}
