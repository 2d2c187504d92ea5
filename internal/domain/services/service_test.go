package services

import (
	"fmt"
	"testing"
	"time"

	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 创建一个内存数据库并迁移所有模型
// 限制为单连接：sqlite的:memory:模式下每个连接是独立的空库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:      "test-secret",
		PaymentEntityCode: "9501",
	}
}

// testEnv 打包一组常用的测试数据：一名经理、一栋楼宇、一间房屋、一名租户
type testEnv struct {
	db       *gorm.DB
	manager  *models.Manager
	building *models.Building
	unit     *models.Unit
	tenant   *models.Tenant
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	manager := createTestManager(t, db)
	building := createTestBuilding(t, db, manager.ID)
	unit := createTestUnit(t, db, building.ID)
	tenant := createTestTenant(t, db, manager.ID)
	return &testEnv{
		db:       db,
		manager:  manager,
		building: building,
		unit:     unit,
		tenant:   tenant,
	}
}

var fixtureSeq int

// nextContact 生成不重复的联系电话，避免撞contact唯一索引
func nextContact() string {
	fixtureSeq++
	return fmt.Sprintf("138%08d", fixtureSeq)
}

func createTestManager(t *testing.T, db *gorm.DB) *models.Manager {
	t.Helper()
	manager := &models.Manager{
		Username: fmt.Sprintf("manager%s", nextContact()),
		Password: "Manager@123",
		Contact:  nextContact(),
	}
	require.NoError(t, db.Create(manager).Error)
	return manager
}

func createTestBuilding(t *testing.T, db *gorm.DB, managerID uint) *models.Building {
	t.Helper()
	building := &models.Building{
		Name:      fmt.Sprintf("Building-%d", managerID),
		Location:  "Test Street 1",
		ManagerID: managerID,
	}
	require.NoError(t, db.Create(building).Error)
	return building
}

func createTestUnit(t *testing.T, db *gorm.DB, buildingID uint) *models.Unit {
	t.Helper()
	unit := &models.Unit{
		Number:     fmt.Sprintf("U%d", buildingID),
		BuildingID: buildingID,
	}
	require.NoError(t, db.Create(unit).Error)
	return unit
}

func createTestTenant(t *testing.T, db *gorm.DB, managerID uint) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		Username:  fmt.Sprintf("tenant%s", nextContact()),
		Password:  "Tenant@123",
		Contact:   nextContact(),
		ManagerID: managerID,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func createTestContract(t *testing.T, db *gorm.DB, tenantID, unitID uint, start time.Time, months int, rent float64) *models.Contract {
	t.Helper()
	contract := &models.Contract{
		StartDate:      start,
		MonthlyRent:    rent,
		DurationMonths: months,
		TenantID:       tenantID,
		UnitID:         unitID,
	}
	require.NoError(t, db.Create(contract).Error)
	require.NoError(t, db.Model(&models.Unit{}).Where("id = ?", unitID).Update("tenant_id", tenantID).Error)
	return contract
}
