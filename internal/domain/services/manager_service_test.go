package services

import (
	"testing"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateManagerUniqueness(t *testing.T) {
	db := setupTestDB(t)
	svc := NewManagerService(db, testConfig())

	manager := &models.Manager{Username: "boss", Password: "x12345678", Contact: nextContact()}
	require.NoError(t, svc.CreateManager(manager))

	dup := &models.Manager{Username: "boss", Password: "x12345678", Contact: nextContact()}
	assert.Error(t, svc.CreateManager(dup))

	dup = &models.Manager{Username: "boss2", Password: "x12345678", Contact: manager.Contact}
	assert.Error(t, svc.CreateManager(dup))
}

func TestCreateManagerHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewManagerService(db, testConfig())

	manager := &models.Manager{Username: "boss", Password: "Secret@123", Contact: nextContact()}
	require.NoError(t, svc.CreateManager(manager))

	var stored models.Manager
	require.NoError(t, db.First(&stored, manager.ID).Error)
	assert.NotEqual(t, "Secret@123", stored.Password)
	assert.True(t, models.CheckPasswordHash("Secret@123", stored.Password))
}

func TestDeleteManagerProtected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewManagerService(db, testConfig())

	manager := createTestManager(t, db)
	createTestBuilding(t, db, manager.ID)

	// 名下仍有楼宇的经理拒绝删除
	assert.ErrorIs(t, svc.DeleteManager(manager.ID), ErrManagerProtected)

	var count int64
	require.NoError(t, db.Model(&models.Manager{}).Where("id = ?", manager.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteManagerWithoutBuildings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewManagerService(db, testConfig())

	manager := createTestManager(t, db)
	require.NoError(t, svc.DeleteManager(manager.ID))

	assert.ErrorIs(t, svc.DeleteManager(manager.ID), ErrRecordNotFound)
}

func TestUpdateManagerRehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewManagerService(db, testConfig())

	manager := createTestManager(t, db)
	updated, err := svc.UpdateManager(manager.ID, map[string]interface{}{"password": "Changed@456"})
	require.NoError(t, err)
	assert.True(t, models.CheckPasswordHash("Changed@456", updated.Password))
}
