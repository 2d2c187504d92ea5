package services

import (
	"testing"
	"time"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTenantWithUnit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.db, testConfig())

	tenant := &models.Tenant{
		Username: "newtenant",
		Password: "Tenant@123",
		Contact:  nextContact(),
	}
	require.NoError(t, svc.CreateTenant(env.manager.ID, tenant, &env.unit.ID))
	assert.Equal(t, env.manager.ID, tenant.ManagerID)

	var unit models.Unit
	require.NoError(t, env.db.First(&unit, env.unit.ID).Error)
	require.NotNil(t, unit.TenantID)
	assert.Equal(t, tenant.ID, *unit.TenantID)
}

func TestCreateTenantOccupiedUnit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.db, testConfig())

	first := &models.Tenant{Username: "first", Password: "x12345678", Contact: nextContact()}
	require.NoError(t, svc.CreateTenant(env.manager.ID, first, &env.unit.ID))

	// 同一间房屋不能安排第二个租户，整个创建回滚
	second := &models.Tenant{Username: "second", Password: "x12345678", Contact: nextContact()}
	err := svc.CreateTenant(env.manager.ID, second, &env.unit.ID)
	assert.ErrorIs(t, err, ErrUnitOccupied)

	var count int64
	require.NoError(t, env.db.Model(&models.Tenant{}).Where("username = ?", "second").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateTenantForeignUnit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.db, testConfig())

	// 房屋在别的经理名下时按占用失败处理，不泄露是否存在
	other := createTestManager(t, env.db)
	tenant := &models.Tenant{Username: "intruder", Password: "x12345678", Contact: nextContact()}
	err := svc.CreateTenant(other.ID, tenant, &env.unit.ID)
	assert.ErrorIs(t, err, ErrUnitOccupied)
}

func TestCreateTenantDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.db, testConfig())

	tenant := &models.Tenant{Username: env.tenant.Username, Password: "x12345678", Contact: nextContact()}
	err := svc.CreateTenant(env.manager.ID, tenant, nil)
	assert.Error(t, err)
}

func TestUpdateTenantRehashesPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.db, testConfig())

	updated, err := svc.UpdateTenant(env.manager.ID, env.tenant.ID, map[string]interface{}{
		"password": "NewPassword@456",
	})
	require.NoError(t, err)
	assert.True(t, models.CheckPasswordHash("NewPassword@456", updated.Password))
}

func TestUpdateTenantScopeMiss(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.db, testConfig())

	other := createTestManager(t, env.db)
	_, err := svc.UpdateTenant(other.ID, env.tenant.ID, map[string]interface{}{"username": "renamed"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteTenantCleansUp(t *testing.T) {
	env := newTestEnv(t)
	tenantSvc := NewTenantService(env.db, testConfig())
	paymentSvc := NewPaymentService(env.db, testConfig())

	contract := createTestContract(t, env.db, env.tenant.ID, env.unit.ID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 6, 500)
	require.NoError(t, paymentSvc.EnsureSchedule(contract))

	require.NoError(t, tenantSvc.DeleteTenant(env.manager.ID, env.tenant.ID))

	// 房屋释放，合同与缴费单一并删除
	var unit models.Unit
	require.NoError(t, env.db.First(&unit, env.unit.ID).Error)
	assert.Nil(t, unit.TenantID)

	var contractCount, paymentCount, tenantCount int64
	require.NoError(t, env.db.Model(&models.Contract{}).Where("tenant_id = ?", env.tenant.ID).Count(&contractCount).Error)
	require.NoError(t, env.db.Model(&models.PaymentRecord{}).Where("contract_id = ?", contract.ID).Count(&paymentCount).Error)
	require.NoError(t, env.db.Model(&models.Tenant{}).Where("id = ?", env.tenant.ID).Count(&tenantCount).Error)
	assert.Equal(t, int64(0), contractCount)
	assert.Equal(t, int64(0), paymentCount)
	assert.Equal(t, int64(0), tenantCount)
}

func TestGetManagerTenantScopeMiss(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTenantService(env.db, testConfig())

	other := createTestManager(t, env.db)
	_, err := svc.GetManagerTenant(other.ID, env.tenant.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	tenant, err := svc.GetManagerTenant(env.manager.ID, env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, env.tenant.ID, tenant.ID)
}
