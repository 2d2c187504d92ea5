package services

import (
	"testing"
	"time"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUnitOwnershipCheck(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUnitService(env.db, testConfig())

	unit := &models.Unit{Number: "201", BuildingID: env.building.ID}
	require.NoError(t, svc.CreateUnit(env.manager.ID, unit))

	// 别的经理不能往这栋楼里加房屋
	other := createTestManager(t, env.db)
	foreign := &models.Unit{Number: "202", BuildingID: env.building.ID}
	assert.ErrorIs(t, svc.CreateUnit(other.ID, foreign), ErrRecordNotFound)
}

func TestGetVacantUnitsByManager(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUnitService(env.db, testConfig())

	occupied := createTestUnit(t, env.db, env.building.ID)
	require.NoError(t, env.db.Model(&models.Unit{}).Where("id = ?", occupied.ID).Update("tenant_id", env.tenant.ID).Error)

	vacant, err := svc.GetVacantUnitsByManager(env.manager.ID)
	require.NoError(t, err)
	require.Len(t, vacant, 1)
	assert.Equal(t, env.unit.ID, vacant[0].ID)
}

func TestUpdateUnitForeignTenant(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUnitService(env.db, testConfig())

	// 别的经理的租户不能被安排进自己的房屋
	other := createTestManager(t, env.db)
	foreignTenant := createTestTenant(t, env.db, other.ID)

	_, err := svc.UpdateUnit(env.manager.ID, env.unit.ID, map[string]interface{}{
		"tenant_id": &foreignTenant.ID,
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteUnitReferencedByContract(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUnitService(env.db, testConfig())

	createTestContract(t, env.db, env.tenant.ID, env.unit.ID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 6, 500)

	// 仍被合同引用的房屋拒绝删除
	assert.Error(t, svc.DeleteUnit(env.manager.ID, env.unit.ID))

	require.NoError(t, env.db.Where("unit_id = ?", env.unit.ID).Delete(&models.Contract{}).Error)
	assert.NoError(t, svc.DeleteUnit(env.manager.ID, env.unit.ID))
}

func TestGetUnitByTenant(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUnitService(env.db, testConfig())

	_, err := svc.GetUnitByTenant(env.tenant.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, env.db.Model(&models.Unit{}).Where("id = ?", env.unit.ID).Update("tenant_id", env.tenant.ID).Error)

	unit, err := svc.GetUnitByTenant(env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, env.unit.ID, unit.ID)
	require.NotNil(t, unit.Building)
	assert.Equal(t, env.building.ID, unit.Building.ID)
}
