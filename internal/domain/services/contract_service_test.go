package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractInput(tenantID, unitID uint) ContractInput {
	return ContractInput{
		StartDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		MonthlyRent:    500,
		DurationMonths: 12,
		TenantID:       tenantID,
		UnitID:         unitID,
	}
}

func TestCreateContractClaimsUnit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	contract, err := svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)
	assert.Equal(t, env.tenant.ID, contract.TenantID)

	var unit models.Unit
	require.NoError(t, env.db.First(&unit, env.unit.ID).Error)
	require.NotNil(t, unit.TenantID)
	assert.Equal(t, env.tenant.ID, *unit.TenantID)
}

func TestCreateContractValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	input := contractInput(env.tenant.ID, env.unit.ID)
	input.MonthlyRent = 0
	_, err := svc.CreateContract(env.manager.ID, input)
	assert.Error(t, err)

	input = contractInput(env.tenant.ID, env.unit.ID)
	input.DurationMonths = -1
	_, err = svc.CreateContract(env.manager.ID, input)
	assert.Error(t, err)
}

func TestCreateContractOccupiedUnit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	_, err := svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)

	// 同一间房屋不能再被第二个租户占用
	other := createTestTenant(t, env.db, env.manager.ID)
	_, err = svc.CreateContract(env.manager.ID, contractInput(other.ID, env.unit.ID))
	assert.ErrorIs(t, err, ErrUnitOccupied)

	// 失败的创建不留下合同行
	var count int64
	require.NoError(t, env.db.Model(&models.Contract{}).Where("tenant_id = ?", other.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateContractTenantAlreadyHasOne(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	_, err := svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)

	second := createTestUnit(t, env.db, env.building.ID)
	_, err = svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, second.ID))
	assert.ErrorIs(t, err, ErrTenantHasContract)
}

func TestCreateContractScopeMiss(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	// 别的经理拿不到这个租户和房屋，一律按不存在处理
	other := createTestManager(t, env.db)
	_, err := svc.CreateContract(other.ID, contractInput(env.tenant.ID, env.unit.ID))
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateContractSwapsUnit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	contract, err := svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)

	newUnit := createTestUnit(t, env.db, env.building.ID)
	input := contractInput(env.tenant.ID, newUnit.ID)
	input.MonthlyRent = 650

	updated, err := svc.UpdateContract(env.manager.ID, contract.ID, input)
	require.NoError(t, err)
	assert.Equal(t, newUnit.ID, updated.UnitID)
	assert.Equal(t, 650.0, updated.MonthlyRent)

	// 旧房屋释放，新房屋占用
	var oldUnit, claimed models.Unit
	require.NoError(t, env.db.First(&oldUnit, env.unit.ID).Error)
	require.NoError(t, env.db.First(&claimed, newUnit.ID).Error)
	assert.Nil(t, oldUnit.TenantID)
	require.NotNil(t, claimed.TenantID)
	assert.Equal(t, env.tenant.ID, *claimed.TenantID)
}

func TestUpdateContractTargetUnitOccupied(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	contract, err := svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)

	// 另一租户占用第二间房屋
	otherTenant := createTestTenant(t, env.db, env.manager.ID)
	occupied := createTestUnit(t, env.db, env.building.ID)
	_, err = svc.CreateContract(env.manager.ID, contractInput(otherTenant.ID, occupied.ID))
	require.NoError(t, err)

	// 换房到已占用的房屋被拒绝，且原房屋的占用关系回滚保留
	_, err = svc.UpdateContract(env.manager.ID, contract.ID, contractInput(env.tenant.ID, occupied.ID))
	assert.ErrorIs(t, err, ErrUnitOccupied)

	var unit models.Unit
	require.NoError(t, env.db.First(&unit, env.unit.ID).Error)
	require.NotNil(t, unit.TenantID)
	assert.Equal(t, env.tenant.ID, *unit.TenantID)
}

func TestDeleteContractReleasesUnit(t *testing.T) {
	env := newTestEnv(t)
	contractSvc := NewContractService(env.db, testConfig())
	paymentSvc := NewPaymentService(env.db, testConfig())

	contract, err := contractSvc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)
	require.NoError(t, paymentSvc.EnsureSchedule(contract))

	require.NoError(t, contractSvc.DeleteContract(env.manager.ID, contract.ID))

	var unit models.Unit
	require.NoError(t, env.db.First(&unit, env.unit.ID).Error)
	assert.Nil(t, unit.TenantID)

	var contractCount, paymentCount int64
	require.NoError(t, env.db.Model(&models.Contract{}).Where("id = ?", contract.ID).Count(&contractCount).Error)
	require.NoError(t, env.db.Model(&models.PaymentRecord{}).Where("contract_id = ?", contract.ID).Count(&paymentCount).Error)
	assert.Equal(t, int64(0), contractCount)
	assert.Equal(t, int64(0), paymentCount)
}

func TestGetManagerContractScopeMiss(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	contract, err := svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)

	other := createTestManager(t, env.db)
	_, err = svc.GetManagerContract(other.ID, contract.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = svc.GetManagerContract(env.manager.ID, contract.ID)
	assert.NoError(t, err)
}

func TestCreateContractConcurrentClaim(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	// 四个不同租户同时争抢同一空置房间
	tenants := []*models.Tenant{env.tenant}
	for i := 0; i < 3; i++ {
		tenants = append(tenants, createTestTenant(t, env.db, env.manager.ID))
	}

	var wg sync.WaitGroup
	var succeeded int64
	for _, tenant := range tenants {
		wg.Add(1)
		go func(tenantID uint) {
			defer wg.Done()
			if _, err := svc.CreateContract(env.manager.ID, contractInput(tenantID, env.unit.ID)); err == nil {
				atomic.AddInt64(&succeeded, 1)
			}
		}(tenant.ID)
	}
	wg.Wait()

	// 条件更新保证恰好一个租户拿到房间
	assert.Equal(t, int64(1), succeeded)

	var count int64
	require.NoError(t, env.db.Model(&models.Contract{}).Where("unit_id = ?", env.unit.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var unit models.Unit
	require.NoError(t, env.db.First(&unit, env.unit.ID).Error)
	assert.NotNil(t, unit.TenantID)
}

func TestGetLatestContractByTenant(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContractService(env.db, testConfig())

	_, err := svc.GetLatestContractByTenant(env.tenant.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	created, err := svc.CreateContract(env.manager.ID, contractInput(env.tenant.ID, env.unit.ID))
	require.NoError(t, err)

	latest, err := svc.GetLatestContractByTenant(env.tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, latest.ID)
}
