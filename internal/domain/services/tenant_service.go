package services

import (
	"errors"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceTenantService 定义租户服务接口
type InterfaceTenantService interface {
	GetTenantsByManager(managerID uint, page, pageSize int) ([]models.Tenant, int64, error)
	GetManagerTenant(managerID, id uint) (*models.Tenant, error)
	CreateTenant(managerID uint, tenant *models.Tenant, unitID *uint) error
	UpdateTenant(managerID, id uint, updates map[string]interface{}) (*models.Tenant, error)
	DeleteTenant(managerID, id uint) error
	GetTenantByID(id uint) (*models.Tenant, error)
}

// TenantService 提供租户相关的服务
type TenantService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTenantService 创建一个新的租户服务
func NewTenantService(db *gorm.DB, cfg *config.Config) InterfaceTenantService {
	return &TenantService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetTenantsByManager 获取某经理登记的所有租户，支持分页
func (s *TenantService) GetTenantsByManager(managerID uint, page, pageSize int) ([]models.Tenant, int64, error) {
	var tenants []models.Tenant
	var total int64

	if err := s.DB.Model(&models.Tenant{}).Where("manager_id = ?", managerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("manager_id = ?", managerID).Limit(pageSize).Offset(offset).Find(&tenants).Error; err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// 2. GetManagerTenant 获取某经理登记的指定租户；范围外一律视为不存在
func (s *TenantService) GetManagerTenant(managerID, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.DB.Where("id = ? AND manager_id = ?", id, managerID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// 3. CreateTenant 创建新租户，可选地同时安排入住一间该经理名下的空闲房屋
func (s *TenantService) CreateTenant(managerID uint, tenant *models.Tenant, unitID *uint) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.Tenant{}).Where("username = ?", tenant.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	// 验证联系方式唯一性
	if err := s.DB.Model(&models.Tenant{}).Where("contact = ?", tenant.Contact).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("联系方式已被使用")
	}

	tenant.ManagerID = managerID

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		if unitID != nil {
			// 只有该经理名下且空闲的房屋才能入住；条件更新保证并发下不会重复安排
			result := tx.Model(&models.Unit{}).
				Where("id = ? AND tenant_id IS NULL AND building_id IN (SELECT id FROM buildings WHERE manager_id = ?)", *unitID, managerID).
				Update("tenant_id", tenant.ID)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrUnitOccupied
			}
		}
		return nil
	})
}

// 4. UpdateTenant 更新租户信息
func (s *TenantService) UpdateTenant(managerID, id uint, updates map[string]interface{}) (*models.Tenant, error) {
	tenant, err := s.GetManagerTenant(managerID, id)
	if err != nil {
		return nil, err
	}

	// 如果更新用户名，需要检查唯一性
	if username, ok := updates["username"].(string); ok && username != tenant.Username {
		var count int64
		if err := s.DB.Model(&models.Tenant{}).Where("username = ? AND id != ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("用户名已存在")
		}
	}

	// 如果更新联系方式，需要检查唯一性
	if contact, ok := updates["contact"].(string); ok && contact != tenant.Contact {
		var count int64
		if err := s.DB.Model(&models.Tenant{}).Where("contact = ? AND id != ?", contact, id).Count(&count).Error; err != nil {
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

	if err := s.DB.Model(tenant).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetManagerTenant(managerID, id)
}

// 5. DeleteTenant 删除租户：释放其入住的房屋、清理其合同与缴费单、删除档案，单个事务内完成
func (s *TenantService) DeleteTenant(managerID, id uint) error {
	tenant, err := s.GetManagerTenant(managerID, id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 房屋引用置空而非级联删除
		if err := tx.Model(&models.Unit{}).Where("tenant_id = ?", tenant.ID).
			Update("tenant_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}

		// 清理该租户的合同及其项下的缴费单
		var contracts []models.Contract
		if err := tx.Where("tenant_id = ?", tenant.ID).Find(&contracts).Error; err != nil {
			return err
		}
		for _, contract := range contracts {
			if err := tx.Where("contract_id = ?", contract.ID).Delete(&models.PaymentRecord{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("tenant_id = ?", tenant.ID).Delete(&models.Contract{}).Error; err != nil {
			return err
		}

		return tx.Delete(tenant).Error
	})
}

// 6. GetTenantByID 根据ID获取租户（租户门户查看自己的档案）
func (s *TenantService) GetTenantByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.DB.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &tenant, nil
}
