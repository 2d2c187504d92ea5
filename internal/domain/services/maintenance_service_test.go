package services

import (
	"testing"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTenantRequest(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	// 租户入住房屋后才能报修
	require.NoError(t, env.db.Model(&models.Unit{}).Where("id = ?", env.unit.ID).Update("tenant_id", env.tenant.ID).Error)

	request, err := svc.CreateTenantRequest(env.tenant.ID, models.MaintenanceTypeElectrical, "插座没电")
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceTargetUnit, request.TargetType)
	assert.Equal(t, env.unit.ID, request.TargetID)
	assert.Equal(t, models.MaintenanceRequesterTenant, request.RequesterRole)
	assert.Equal(t, models.MaintenanceStatusPending, request.Status)
}

func TestCreateTenantRequestRejectsGeneral(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	require.NoError(t, env.db.Model(&models.Unit{}).Where("id = ?", env.unit.ID).Update("tenant_id", env.tenant.ID).Error)

	_, err := svc.CreateTenantRequest(env.tenant.ID, models.MaintenanceTypeGeneral, "整栋检查")
	assert.Error(t, err)
}

func TestCreateTenantRequestWithoutUnit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	_, err := svc.CreateTenantRequest(env.tenant.ID, models.MaintenanceTypeHydraulic, "漏水")
	assert.ErrorIs(t, err, ErrTenantNoUnit)
}

func TestCreateManagerRequestUnitTarget(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	request, err := svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeStructural, "墙面开裂",
		models.MaintenanceTargetUnit, env.unit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceRequesterManager, request.RequesterRole)

	// 房屋级工单不能使用general类型
	_, err = svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeGeneral, "",
		models.MaintenanceTargetUnit, env.unit.ID)
	assert.Error(t, err)

	// 别的经理的房屋一律视为不存在
	other := createTestManager(t, env.db)
	_, err = svc.CreateManagerRequest(other.ID, models.MaintenanceTypeStructural, "",
		models.MaintenanceTargetUnit, env.unit.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreateManagerRequestBuildingTarget(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	request, err := svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeGeneral, "电梯年检",
		models.MaintenanceTargetBuilding, env.building.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceTargetBuilding, request.TargetType)

	// 楼宇级工单必须使用general类型
	_, err = svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeElectrical, "",
		models.MaintenanceTargetBuilding, env.building.ID)
	assert.Error(t, err)
}

func TestManagerScopeVisibility(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	_, err := svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeGeneral, "",
		models.MaintenanceTargetBuilding, env.building.ID)
	require.NoError(t, err)
	_, err = svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeHydraulic, "",
		models.MaintenanceTargetUnit, env.unit.ID)
	require.NoError(t, err)

	mine, err := svc.GetRequestsByManager(env.manager.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	other := createTestManager(t, env.db)
	theirs, err := svc.GetRequestsByManager(other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	request, err := svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeHydraulic, "",
		models.MaintenanceTargetUnit, env.unit.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(env.manager.ID, request.ID, models.MaintenanceStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusInProgress, updated.Status)

	// 非法状态被拒绝
	_, err = svc.UpdateStatus(env.manager.ID, request.ID, "finished")
	assert.Error(t, err)

	// 范围外的工单一律视为不存在
	other := createTestManager(t, env.db)
	_, err = svc.UpdateStatus(other.ID, request.ID, models.MaintenanceStatusDone)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteRequestUnitScoped(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	require.NoError(t, env.db.Model(&models.Unit{}).Where("id = ?", env.unit.ID).Update("tenant_id", env.tenant.ID).Error)
	request, err := svc.CreateTenantRequest(env.tenant.ID, models.MaintenanceTypeElectrical, "")
	require.NoError(t, err)

	// 房屋工单：楼宇归属该经理即可删除，即便是租户发起的
	other := createTestManager(t, env.db)
	assert.ErrorIs(t, svc.DeleteRequest(other.ID, request.ID), ErrRecordNotFound)
	assert.NoError(t, svc.DeleteRequest(env.manager.ID, request.ID))
}

func TestDeleteRequestBuildingScoped(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMaintenanceService(env.db, testConfig())

	request, err := svc.CreateManagerRequest(env.manager.ID, models.MaintenanceTypeGeneral, "",
		models.MaintenanceTargetBuilding, env.building.ID)
	require.NoError(t, err)

	// 楼宇级工单只有发起人本人能删除
	other := createTestManager(t, env.db)
	assert.ErrorIs(t, svc.DeleteRequest(other.ID, request.ID), ErrRecordNotFound)
	assert.NoError(t, svc.DeleteRequest(env.manager.ID, request.ID))
}

func TestMaintenanceRequestTaggedVariantHook(t *testing.T) {
	env := newTestEnv(t)

	// 位置标签非法的工单在存储层就被拒绝
	bad := models.MaintenanceRequest{
		Type:          models.MaintenanceTypeElectrical,
		Status:        models.MaintenanceStatusPending,
		TargetType:    "garage",
		TargetID:      1,
		RequesterRole: models.MaintenanceRequesterTenant,
		RequesterID:   env.tenant.ID,
	}
	assert.Error(t, env.db.Create(&bad).Error)
}
