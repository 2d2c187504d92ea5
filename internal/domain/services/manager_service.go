package services

import (
	"errors"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceManagerService 定义经理服务接口
type InterfaceManagerService interface {
	GetAllManagers(page, pageSize int) ([]models.Manager, int64, error)
	GetManagerByID(id uint) (*models.Manager, error)
	CreateManager(manager *models.Manager) error
	UpdateManager(id uint, updates map[string]interface{}) (*models.Manager, error)
	DeleteManager(id uint) error
}

// ManagerService 提供经理账号相关的服务
type ManagerService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewManagerService 创建一个新的经理服务
func NewManagerService(db *gorm.DB, cfg *config.Config) InterfaceManagerService {
	return &ManagerService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllManagers 获取所有经理列表，支持分页
func (s *ManagerService) GetAllManagers(page, pageSize int) ([]models.Manager, int64, error) {
	var managers []models.Manager
	var total int64

	if err := s.DB.Model(&models.Manager{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&managers).Error; err != nil {
		return nil, 0, err
	}

	return managers, total, nil
}

// 2. GetManagerByID 根据ID获取经理
func (s *ManagerService) GetManagerByID(id uint) (*models.Manager, error) {
	var manager models.Manager
	if err := s.DB.First(&manager, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &manager, nil
}

// 3. CreateManager 创建新经理
func (s *ManagerService) CreateManager(manager *models.Manager) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.Manager{}).Where("username = ?", manager.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	// 验证联系方式唯一性
	if err := s.DB.Model(&models.Manager{}).Where("contact = ?", manager.Contact).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("联系方式已被使用")
	}

	return s.DB.Create(manager).Error
}

// 4. UpdateManager 更新经理信息
func (s *ManagerService) UpdateManager(id uint, updates map[string]interface{}) (*models.Manager, error) {
	manager, err := s.GetManagerByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新用户名，需要检查唯一性
	if username, ok := updates["username"].(string); ok && username != manager.Username {
		var count int64
		if err := s.DB.Model(&models.Manager{}).Where("username = ? AND id != ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("用户名已存在")
		}
	}

	// 如果更新联系方式，需要检查唯一性
	if contact, ok := updates["contact"].(string); ok && contact != manager.Contact {
		var count int64
		if err := s.DB.Model(&models.Manager{}).Where("contact = ? AND id != ?", contact, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("联系方式已被使用")
		}
	}

	// 如果提供了新密码，进行哈希处理
	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := models.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(manager).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetManagerByID(id)
}

// 5. DeleteManager 删除经理；名下仍有楼宇时拒绝删除
func (s *ManagerService) DeleteManager(id uint) error {
	manager, err := s.GetManagerByID(id)
	if err != nil {
		return err
	}

	// 检查是否有关联的楼宇（受保护删除）
	var buildingCount int64
	if err := s.DB.Model(&models.Building{}).Where("manager_id = ?", id).Count(&buildingCount).Error; err != nil {
		return err
	}
	if buildingCount > 0 {
		return ErrManagerProtected
	}

	return s.DB.Delete(manager).Error
}
