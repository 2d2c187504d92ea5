package services

import (
	"sync"
	"testing"
	"time"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentTest(t *testing.T) (InterfacePaymentService, *models.Contract, *testEnv) {
	env := newTestEnv(t)
	contract := createTestContract(t, env.db, env.tenant.ID, env.unit.ID,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 3, 500)
	return NewPaymentService(env.db, testConfig()), contract, env
}

func TestEnsureScheduleGeneratesOnePerMonth(t *testing.T) {
	svc, contract, env := setupPaymentTest(t)

	require.NoError(t, svc.EnsureSchedule(contract))

	var records []models.PaymentRecord
	require.NoError(t, env.db.Where("contract_id = ?", contract.ID).Order("due_month").Find(&records).Error)
	require.Len(t, records, 3)

	// 起始日在月中不影响应缴月份，每期都是当月首日
	expected := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, r := range records {
		assert.Equal(t, expected[i].Year(), r.DueMonth.Year())
		assert.Equal(t, expected[i].Month(), r.DueMonth.Month())
		assert.Equal(t, 1, r.DueMonth.Day())
		assert.Equal(t, 500.0, r.Amount)
		assert.Equal(t, "9501", r.Entity)
		assert.Equal(t, models.PaymentStatusUnpaid, r.Status)
		assert.NotEmpty(t, r.Reference)
	}
}

func TestEnsureScheduleIsIdempotent(t *testing.T) {
	svc, contract, env := setupPaymentTest(t)

	require.NoError(t, svc.EnsureSchedule(contract))
	require.NoError(t, svc.EnsureSchedule(contract))

	var count int64
	require.NoError(t, env.db.Model(&models.PaymentRecord{}).Where("contract_id = ?", contract.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestEnsureScheduleResumesAfterLastMonth(t *testing.T) {
	svc, contract, env := setupPaymentTest(t)

	// 预置第一期，生成时应从第二期继续
	first := models.PaymentRecord{
		ContractID: contract.ID,
		DueMonth:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:     500,
		Entity:     "9501",
		Reference:  "preexisting-ref",
		Status:     models.PaymentStatusPaid,
	}
	require.NoError(t, env.db.Create(&first).Error)

	require.NoError(t, svc.EnsureSchedule(contract))

	var records []models.PaymentRecord
	require.NoError(t, env.db.Where("contract_id = ?", contract.ID).Order("due_month").Find(&records).Error)
	require.Len(t, records, 3)

	// 已有的一期不被改写
	assert.Equal(t, "preexisting-ref", records[0].Reference)
	assert.Equal(t, models.PaymentStatusPaid, records[0].Status)
}

func TestEnsureScheduleZeroDuration(t *testing.T) {
	env := newTestEnv(t)
	contract := &models.Contract{
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent:    500,
		DurationMonths: 0,
		TenantID:       env.tenant.ID,
		UnitID:         env.unit.ID,
	}
	require.NoError(t, env.db.Create(contract).Error)

	svc := NewPaymentService(env.db, testConfig())
	require.NoError(t, svc.EnsureSchedule(contract))

	var count int64
	require.NoError(t, env.db.Model(&models.PaymentRecord{}).Where("contract_id = ?", contract.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestEnsureScheduleConcurrent(t *testing.T) {
	svc, contract, env := setupPaymentTest(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// 并发补齐同一合同，唯一索引保证每个月份至多一张
			_ = svc.EnsureSchedule(contract)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, env.db.Model(&models.PaymentRecord{}).Where("contract_id = ?", contract.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestGetTenantFinancesWithoutContract(t *testing.T) {
	env := newTestEnv(t)
	tenant := createTestTenant(t, env.db, env.manager.ID)

	svc := NewPaymentService(env.db, testConfig())
	records, err := svc.GetTenantFinances(tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetTenantFinancesGeneratesSchedule(t *testing.T) {
	svc, contract, _ := setupPaymentTest(t)

	records, err := svc.GetTenantFinances(contract.TenantID)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestPayPayment(t *testing.T) {
	svc, contract, env := setupPaymentTest(t)
	require.NoError(t, svc.EnsureSchedule(contract))

	var record models.PaymentRecord
	require.NoError(t, env.db.Where("contract_id = ?", contract.ID).Order("due_month").First(&record).Error)

	paid, alreadyPaid, err := svc.PayPayment(contract.TenantID, record.ID)
	require.NoError(t, err)
	assert.False(t, alreadyPaid)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)

	// 重复缴费不是错误，返回信息性提示，状态保持已缴
	paid, alreadyPaid, err = svc.PayPayment(contract.TenantID, record.ID)
	require.NoError(t, err)
	assert.True(t, alreadyPaid)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
}

func TestPayPaymentOtherTenant(t *testing.T) {
	svc, contract, env := setupPaymentTest(t)
	require.NoError(t, svc.EnsureSchedule(contract))

	var record models.PaymentRecord
	require.NoError(t, env.db.Where("contract_id = ?", contract.ID).First(&record).Error)

	// 他人的缴费单一律视为不存在
	other := createTestTenant(t, env.db, env.manager.ID)
	_, _, err := svc.PayPayment(other.ID, record.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	var after models.PaymentRecord
	require.NoError(t, env.db.First(&after, record.ID).Error)
	assert.Equal(t, models.PaymentStatusUnpaid, after.Status)
}
