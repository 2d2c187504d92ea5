package services

import (
	"testing"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBuildingRequiresManager(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBuildingService(db, testConfig())

	building := &models.Building{Name: "A栋", Location: "幸福路88号", ManagerID: 999}
	assert.ErrorIs(t, svc.CreateBuilding(building), ErrRecordNotFound)

	manager := createTestManager(t, db)
	building.ManagerID = manager.ID
	assert.NoError(t, svc.CreateBuilding(building))
}

func TestDeleteBuildingWithUnits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBuildingService(db, testConfig())

	manager := createTestManager(t, db)
	building := createTestBuilding(t, db, manager.ID)
	createTestUnit(t, db, building.ID)

	// 名下仍有房屋的楼宇拒绝删除
	assert.Error(t, svc.DeleteBuilding(building.ID))

	require.NoError(t, db.Where("building_id = ?", building.ID).Delete(&models.Unit{}).Error)
	assert.NoError(t, svc.DeleteBuilding(building.ID))
}

func TestGetManagerBuildingScopeMiss(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBuildingService(db, testConfig())

	manager := createTestManager(t, db)
	building := createTestBuilding(t, db, manager.ID)

	other := createTestManager(t, db)
	_, err := svc.GetManagerBuilding(other.ID, building.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	found, err := svc.GetManagerBuilding(manager.ID, building.ID)
	require.NoError(t, err)
	assert.Equal(t, building.ID, found.ID)
}

func TestGetBuildingsByManager(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBuildingService(db, testConfig())

	manager := createTestManager(t, db)
	createTestBuilding(t, db, manager.ID)
	createTestBuilding(t, db, manager.ID)

	other := createTestManager(t, db)
	createTestBuilding(t, db, other.ID)

	buildings, err := svc.GetBuildingsByManager(manager.ID)
	require.NoError(t, err)
	assert.Len(t, buildings, 2)
}
