package routes

import (
	"time"

	"renda-http-service/internal/app/controllers"
	"renda-http-service/internal/app/middleware"
	"renda-http-service/internal/domain/services/container"
	"renda-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 初始化Redis客户端，缓存仪表盘统计等热点数据
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
	// 注册经理路由
	registerManagerRoutes(api, container)
	// 注册租户路由
	registerTenantRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	// 认证路由 - 登录接口单独收紧限流，防止暴力破解
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAdminRoutes 注册管理员端路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthenticateSystemAdmin())

	// 仪表盘统计，短TTL缓存
	adminGroup.GET("/dashboard", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}),
		controllers.HandleAdminFunc(container, "getDashboardStats"))

	// 管理员账号管理
	adminGroup.GET("/admins", controllers.HandleAdminFunc(container, "getAdmins"))
	adminGroup.GET("/admins/:id", controllers.HandleAdminFunc(container, "getAdmin"))
	adminGroup.POST("/admins", controllers.HandleAdminFunc(container, "createAdmin"))
	adminGroup.PUT("/admins/:id", controllers.HandleAdminFunc(container, "updateAdmin"))
	adminGroup.DELETE("/admins/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))

	// 经理管理
	adminGroup.GET("/managers", controllers.HandleManagerFunc(container, "getManagers"))
	adminGroup.GET("/managers/:id", controllers.HandleManagerFunc(container, "getManager"))
	adminGroup.POST("/managers", controllers.HandleManagerFunc(container, "createManager"))
	adminGroup.PUT("/managers/:id", controllers.HandleManagerFunc(container, "updateManager"))
	adminGroup.DELETE("/managers/:id", controllers.HandleManagerFunc(container, "deleteManager"))

	// 楼宇管理
	adminGroup.GET("/buildings", controllers.HandleBuildingFunc(container, "getBuildings"))
	adminGroup.GET("/buildings/:id", controllers.HandleBuildingFunc(container, "getBuilding"))
	adminGroup.POST("/buildings", controllers.HandleBuildingFunc(container, "createBuilding"))
	adminGroup.PUT("/buildings/:id", controllers.HandleBuildingFunc(container, "updateBuilding"))
	adminGroup.DELETE("/buildings/:id", controllers.HandleBuildingFunc(container, "deleteBuilding"))
}

// registerManagerRoutes 注册经理端路由
func registerManagerRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	managerGroup := api.Group("/manager")
	managerGroup.Use(middleware.AuthenticateManager())

	// 名下楼宇
	managerGroup.GET("/buildings", controllers.HandleBuildingFunc(container, "getMyBuildings"))
	managerGroup.GET("/buildings/:id", controllers.HandleBuildingFunc(container, "getMyBuilding"))

	// 房屋管理
	managerGroup.GET("/units", controllers.HandleUnitFunc(container, "getUnits"))
	managerGroup.GET("/units/vacant", controllers.HandleUnitFunc(container, "getVacantUnits"))
	managerGroup.GET("/units/:id", controllers.HandleUnitFunc(container, "getUnit"))
	managerGroup.POST("/units", controllers.HandleUnitFunc(container, "createUnit"))
	managerGroup.PUT("/units/:id", controllers.HandleUnitFunc(container, "updateUnit"))
	managerGroup.DELETE("/units/:id", controllers.HandleUnitFunc(container, "deleteUnit"))

	// 租户管理
	managerGroup.GET("/tenants", controllers.HandleTenantFunc(container, "getTenants"))
	managerGroup.GET("/tenants/:id", controllers.HandleTenantFunc(container, "getTenant"))
	managerGroup.POST("/tenants", controllers.HandleTenantFunc(container, "createTenant"))
	managerGroup.PUT("/tenants/:id", controllers.HandleTenantFunc(container, "updateTenant"))
	managerGroup.DELETE("/tenants/:id", controllers.HandleTenantFunc(container, "deleteTenant"))

	// 合同管理
	managerGroup.GET("/contracts", controllers.HandleContractFunc(container, "getContracts"))
	managerGroup.GET("/contracts/:id", controllers.HandleContractFunc(container, "getContract"))
	managerGroup.GET("/contracts/:id/payments", controllers.HandlePaymentFunc(container, "getContractPayments"))
	managerGroup.POST("/contracts", controllers.HandleContractFunc(container, "createContract"))
	managerGroup.PUT("/contracts/:id", controllers.HandleContractFunc(container, "updateContract"))
	managerGroup.DELETE("/contracts/:id", controllers.HandleContractFunc(container, "deleteContract"))

	// 维修工单
	managerGroup.GET("/maintenance", controllers.HandleMaintenanceFunc(container, "getManagerRequests"))
	managerGroup.POST("/maintenance", controllers.HandleMaintenanceFunc(container, "createManagerRequest"))
	managerGroup.PUT("/maintenance/:id/status", controllers.HandleMaintenanceFunc(container, "updateStatus"))
	managerGroup.DELETE("/maintenance/:id", controllers.HandleMaintenanceFunc(container, "deleteRequest"))
}

// registerTenantRoutes 注册租户端路由
func registerTenantRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	tenantGroup := api.Group("/tenant")
	tenantGroup.Use(middleware.AuthenticateTenant())

	// 个人信息与房屋
	tenantGroup.GET("/profile", controllers.HandleTenantFunc(container, "getMyProfile"))
	tenantGroup.GET("/unit", controllers.HandleUnitFunc(container, "getMyUnit"))
	tenantGroup.GET("/contract", controllers.HandleContractFunc(container, "getMyContract"))

	// 缴费
	tenantGroup.GET("/finances", controllers.HandlePaymentFunc(container, "getMyFinances"))
	tenantGroup.POST("/payments/:id/pay", controllers.HandlePaymentFunc(container, "payPayment"))

	// 维修工单
	tenantGroup.GET("/maintenance", controllers.HandleMaintenanceFunc(container, "getMyRequests"))
	tenantGroup.POST("/maintenance", controllers.HandleMaintenanceFunc(container, "createMyRequest"))
}
