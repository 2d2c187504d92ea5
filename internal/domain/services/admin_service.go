package services

import (
	"errors"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// DashboardStats 表示管理员仪表盘的各实体统计
type DashboardStats struct {
	ManagerCount     int64 `json:"manager_count"`
	BuildingCount    int64 `json:"building_count"`
	UnitCount        int64 `json:"unit_count"`
	TenantCount      int64 `json:"tenant_count"`
	ContractCount    int64 `json:"contract_count"`
	PaymentCount     int64 `json:"payment_count"`
	MaintenanceCount int64 `json:"maintenance_count"`
}

// InterfaceAdminService 定义管理员服务接口
type InterfaceAdminService interface {
	GetAllAdmins(page, pageSize int) ([]models.Admin, int64, error)
	GetAdminByID(id uint) (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
	UpdateAdmin(id uint, updates map[string]interface{}) (*models.Admin, error)
	DeleteAdmin(id uint) error
	GetDashboardStats() (*DashboardStats, error)
}

// AdminService 提供管理员账号相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// 1. GetAllAdmins 获取所有管理员列表，支持分页
func (s *AdminService) GetAllAdmins(page, pageSize int) ([]models.Admin, int64, error) {
	var admins []models.Admin
	var total int64

	if err := s.DB.Model(&models.Admin{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&admins).Error; err != nil {
		return nil, 0, err
	}

	return admins, total, nil
}

// 2. GetAdminByID 根据ID获取管理员
func (s *AdminService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 3. CreateAdmin 创建新管理员
func (s *AdminService) CreateAdmin(admin *models.Admin) error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("username = ?", admin.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	return s.DB.Create(admin).Error
}

// 4. UpdateAdmin 更新管理员信息
func (s *AdminService) UpdateAdmin(id uint, updates map[string]interface{}) (*models.Admin, error) {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}

	if username, ok := updates["username"].(string); ok && username != admin.Username {
		var count int64
		if err := s.DB.Model(&models.Admin{}).Where("username = ? AND id != ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("用户名已存在")
		}
	}

	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := models.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(admin).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAdminByID(id)
}

// 5. DeleteAdmin 删除管理员；至少保留一个账号
func (s *AdminService) DeleteAdmin(id uint) error {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= 1 {
		return errors.New("系统中至少需要保留一个管理员账号")
	}

	return s.DB.Delete(admin).Error
}

// 6. GetDashboardStats 获取仪表盘统计；结果短暂缓存于Redis（未配置Redis时直接查库）
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	const cacheKey = "dashboard:stats"

	if s.Redis != nil {
		var cached DashboardStats
		if err := s.Redis.Get(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Manager{}, &stats.ManagerCount},
		{&models.Building{}, &stats.BuildingCount},
		{&models.Unit{}, &stats.UnitCount},
		{&models.Tenant{}, &stats.TenantCount},
		{&models.Contract{}, &stats.ContractCount},
		{&models.PaymentRecord{}, &stats.PaymentCount},
		{&models.MaintenanceRequest{}, &stats.MaintenanceCount},
	}
	for _, c := range counts {
		if err := s.DB.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if s.Redis != nil {
		// 缓存失败不影响返回
		_ = s.Redis.SetWithTTL(cacheKey, stats)
	}

	return stats, nil
}
