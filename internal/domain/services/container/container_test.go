package container

import (
	"testing"

	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupContainerDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Manager{},
		&models.Building{},
		&models.Unit{},
		&models.Tenant{},
		&models.Contract{},
		&models.PaymentRecord{},
		&models.MaintenanceRequest{},
	))
	return db
}

func containerConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:      "test-secret",
		PaymentEntityCode: "9501",
		RedisHost:         "127.0.0.1",
		RedisPort:         "1",
	}
}

func TestNewServiceContainerInitializesServices(t *testing.T) {
	db := setupContainerDB(t)
	c := NewServiceContainer(db, containerConfig(), nil)

	for _, name := range []string{"jwt", "admin", "manager", "building", "unit", "tenant", "contract", "payment", "maintenance"} {
		assert.NotNil(t, c.GetService(name), name)
	}
	assert.Nil(t, c.GetService("unknown"))
}

func TestNewServiceContainerDegradesWithoutRedis(t *testing.T) {
	db := setupContainerDB(t)
	cfg := containerConfig()

	// Redis不可达时降级为无缓存运行，不影响其余服务
	client := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr(), DB: cfg.RedisDB})
	c := NewServiceContainer(db, cfg, client)

	assert.Nil(t, c.GetService("redis"))
	assert.NotNil(t, c.GetService("admin"))
}
