package container

import (
	"context"
	"log"
	"sync"
	"time"

	"renda-http-service/internal/domain/services"
	"renda-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据缓存服务
	redisService services.InterfaceRedisService

	// 业务服务
	adminService       services.InterfaceAdminService
	managerService     services.InterfaceManagerService
	buildingService    services.InterfaceBuildingService
	unitService        services.InterfaceUnitService
	tenantService      services.InterfaceTenantService
	contractService    services.InterfaceContractService
	paymentService     services.InterfacePaymentService
	maintenanceService services.InterfaceMaintenanceService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)

	// 初始化Redis服务（未配置Redis时保持为nil，依赖方需容忍）
	if c.redis != nil {
		c.redisService = services.NewRedisService(c.config)
	}

	// 初始化业务服务
	c.adminService = services.NewAdminService(c.db, c.config, c.redisService)
	c.managerService = services.NewManagerService(c.db, c.config)
	c.buildingService = services.NewBuildingService(c.db, c.config)
	c.unitService = services.NewUnitService(c.db, c.config)
	c.tenantService = services.NewTenantService(c.db, c.config)
	c.contractService = services.NewContractService(c.db, c.config)
	c.paymentService = services.NewPaymentService(c.db, c.config)
	c.maintenanceService = services.NewMaintenanceService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "admin":
		return c.adminService
	case "manager":
		return c.managerService
	case "building":
		return c.buildingService
	case "unit":
		return c.unitService
	case "tenant":
		return c.tenantService
	case "contract":
		return c.contractService
	case "payment":
		return c.paymentService
	case "maintenance":
		return c.maintenanceService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
