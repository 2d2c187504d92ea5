package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		JWTSecretKey:      "test-secret",
		PaymentEntityCode: "9501",
		RedisHost:         "127.0.0.1",
		RedisPort:         "1", // 不可达，走无缓存降级路径
	}
	return SetupRouter(db, cfg)
}

func TestSetupRouterPing(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestSetupRouterProtectedRouteRequiresToken(t *testing.T) {
	r := setupRouterTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
