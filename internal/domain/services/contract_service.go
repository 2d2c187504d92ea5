package services

import (
	"errors"
	"time"

	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ContractInput 表示合同创建/编辑的输入
type ContractInput struct {
	StartDate      time.Time
	MonthlyRent    float64
	DurationMonths int
	TenantID       uint
	UnitID         uint
}

// InterfaceContractService 定义合同服务接口
type InterfaceContractService interface {
	GetContractsByManager(managerID uint, page, pageSize int) ([]models.Contract, int64, error)
	GetManagerContract(managerID, id uint) (*models.Contract, error)
	CreateContract(managerID uint, input ContractInput) (*models.Contract, error)
	UpdateContract(managerID, id uint, input ContractInput) (*models.Contract, error)
	DeleteContract(managerID, id uint) error
	GetLatestContractByTenant(tenantID uint) (*models.Contract, error)
}

// ContractService 提供租赁合同相关的服务
type ContractService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewContractService 创建一个新的合同服务
func NewContractService(db *gorm.DB, cfg *config.Config) InterfaceContractService {
	return &ContractService{
		DB:     db,
		Config: cfg,
	}
}

// managerScope 将查询限定在某经理名下租户的合同范围内
func (s *ContractService) managerScope(db *gorm.DB, managerID uint) *gorm.DB {
	return db.Joins("JOIN tenants ON tenants.id = contracts.tenant_id").
		Where("tenants.manager_id = ?", managerID)
}

// 1. GetContractsByManager 获取某经理名下租户的所有合同，支持分页
func (s *ContractService) GetContractsByManager(managerID uint, page, pageSize int) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	if err := s.managerScope(s.DB.Model(&models.Contract{}), managerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.managerScope(s.DB, managerID).
		Preload("Tenant").Preload("Unit").Preload("Unit.Building").
		Limit(pageSize).Offset(offset).
		Order("contracts.start_date DESC").
		Find(&contracts).Error; err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

// 2. GetManagerContract 获取某经理名下的指定合同；范围外一律视为不存在
func (s *ContractService) GetManagerContract(managerID, id uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.managerScope(s.DB, managerID).
		Where("contracts.id = ?", id).
		Preload("Tenant").Preload("Unit").
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// validateInput 校验合同参数
func (s *ContractService) validateInput(input ContractInput) error {
	if input.StartDate.IsZero() {
		return errors.New("合同起始日期不能为空")
	}
	if input.MonthlyRent <= 0 {
		return errors.New("月租金必须大于零")
	}
	if input.DurationMonths <= 0 {
		return errors.New("租期必须大于零")
	}
	return nil
}

// 3. CreateContract 创建合同：为无合同的租户安排一间空闲房屋，同一事务内占用房屋并落库
func (s *ContractService) CreateContract(managerID uint, input ContractInput) (*models.Contract, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var contract *models.Contract
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 服务端重新校验租户归属，不信任客户端提交的外键
		var tenant models.Tenant
		if err := tx.Where("id = ? AND manager_id = ?", input.TenantID, managerID).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		// 房屋必须在该经理名下的楼宇内
		var unit models.Unit
		if err := tx.Joins("JOIN buildings ON buildings.id = units.building_id").
			Where("units.id = ? AND buildings.manager_id = ?", input.UnitID, managerID).
			First(&unit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		// 同一租户同一时间至多一份合同（按查询排除实现）
		var count int64
		if err := tx.Model(&models.Contract{}).Where("tenant_id = ?", input.TenantID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTenantHasContract
		}

		// 条件更新占用房屋：并发抢同一间空房时只有一方生效
		result := tx.Model(&models.Unit{}).
			Where("id = ? AND tenant_id IS NULL", input.UnitID).
			Update("tenant_id", input.TenantID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUnitOccupied
		}

		contract = &models.Contract{
			StartDate:      input.StartDate,
			MonthlyRent:    input.MonthlyRent,
			DurationMonths: input.DurationMonths,
			TenantID:       input.TenantID,
			UnitID:         input.UnitID,
		}
		return tx.Create(contract).Error
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// 4. UpdateContract 编辑合同：如更换房屋，同一事务内释放旧房屋、占用新房屋并更新合同字段
func (s *ContractService) UpdateContract(managerID, id uint, input ContractInput) (*models.Contract, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := s.managerScope(tx, managerID).Where("contracts.id = ?", id).First(&contract).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		// 新租户与新房屋都必须在该经理范围内
		var tenant models.Tenant
		if err := tx.Where("id = ? AND manager_id = ?", input.TenantID, managerID).First(&tenant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		var unit models.Unit
		if err := tx.Joins("JOIN buildings ON buildings.id = units.building_id").
			Where("units.id = ? AND buildings.manager_id = ?", input.UnitID, managerID).
			First(&unit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		if input.UnitID != contract.UnitID {
			// 释放原房屋
			if err := tx.Model(&models.Unit{}).Where("id = ?", contract.UnitID).
				Update("tenant_id", nil).Error; err != nil {
				return err
			}
			// 占用新房屋；已被他人入住则整体回滚
			result := tx.Model(&models.Unit{}).
				Where("id = ? AND tenant_id IS NULL", input.UnitID).
				Update("tenant_id", input.TenantID)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrUnitOccupied
			}
		} else if input.TenantID != contract.TenantID {
			// 房屋不变但换租户：直接改写房屋上的租户引用
			if err := tx.Model(&models.Unit{}).Where("id = ?", contract.UnitID).
				Update("tenant_id", input.TenantID).Error; err != nil {
				return err
			}
		}

		return tx.Model(&contract).Updates(map[string]interface{}{
			"start_date":      input.StartDate,
			"monthly_rent":    input.MonthlyRent,
			"duration_months": input.DurationMonths,
			"tenant_id":       input.TenantID,
			"unit_id":         input.UnitID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetManagerContract(managerID, id)
}

// 5. DeleteContract 删除合同：同一事务内释放房屋、清理缴费单并删除合同行
func (s *ContractService) DeleteContract(managerID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := s.managerScope(tx, managerID).Where("contracts.id = ?", id).First(&contract).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		// 释放房屋上的租户引用
		if err := tx.Model(&models.Unit{}).Where("id = ? AND tenant_id = ?", contract.UnitID, contract.TenantID).
			Update("tenant_id", nil).Error; err != nil {
			return err
		}

		// 合同项下的缴费单一并清理
		if err := tx.Where("contract_id = ?", contract.ID).Delete(&models.PaymentRecord{}).Error; err != nil {
			return err
		}

		return tx.Delete(&contract).Error
	})
}

// 6. GetLatestContractByTenant 获取某租户最近的合同（租户门户财务页入口）
func (s *ContractService) GetLatestContractByTenant(tenantID uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.DB.Where("tenant_id = ?", tenantID).
		Order("start_date DESC").
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &contract, nil
}
