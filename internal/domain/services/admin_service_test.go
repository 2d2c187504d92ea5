package services

import (
	"testing"
	"time"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteAdminKeepsLastOne(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, testConfig(), nil)

	only := &models.Admin{Username: "root", Password: "Admin@123"}
	require.NoError(t, db.Create(only).Error)

	// 系统中至少保留一个管理员
	assert.Error(t, svc.DeleteAdmin(only.ID))

	second := &models.Admin{Username: "backup", Password: "Admin@123", Email: "backup@example.com"}
	require.NoError(t, db.Create(second).Error)
	assert.NoError(t, svc.DeleteAdmin(second.ID))
}

func TestGetDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	// redis不可用时统计直接走数据库
	svc := NewAdminService(env.db, testConfig(), nil)

	createTestContract(t, env.db, env.tenant.ID, env.unit.ID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 3, 500)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ManagerCount)
	assert.Equal(t, int64(1), stats.BuildingCount)
	assert.Equal(t, int64(1), stats.UnitCount)
	assert.Equal(t, int64(1), stats.TenantCount)
	assert.Equal(t, int64(1), stats.ContractCount)
}
