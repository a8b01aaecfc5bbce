package helper_test

import (
	"testing"

	"estate_market/floorplan"
	"estate_market/geometry"
	"estate_market/helper"
	"estate_market/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSaveFloorPlan_CreatesThenReplaces(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	saved, err := helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 3,
		ImageUrl:   "https://img/plan.png",
		Apartments: []model.Apartment{unit("a", "301", square(0, 0, 10)), unit("b", "302", square(20, 0, 10))},
	})
	require.NoError(t, err)
	require.Len(t, saved.Apartments, 2)
	assert.Equal(t, "301", saved.Apartments[0].UnitNumber)
	assert.Equal(t, model.StatusAvailable, saved.Apartments[1].Status)
	assert.Equal(t, "https://img/plan.png", saved.ImageUrl)

	// a sold unit keeps its lifecycle fields when the editor saves again
	ownerId := w.buyer.ID
	require.NoError(t, db.Model(&model.Apartment{}).Where("id = ?", "b").
		Updates(map[string]any{"status": model.StatusSold, "owner_id": ownerId}).Error)

	edited := unit("b", "302B", square(20, 0, 12))
	edited.Status = model.StatusAvailable
	again, err := helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 3,
		Apartments: []model.Apartment{edited, unit("", "303", square(40, 0, 10))},
	})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, "https://img/plan.png", again.ImageUrl)
	require.Len(t, again.Apartments, 2)

	b := again.Apartments[0]
	assert.Equal(t, "302B", b.UnitNumber)
	assert.Equal(t, model.StatusSold, b.Status)
	require.NotNil(t, b.OwnerId)
	assert.Equal(t, ownerId, *b.OwnerId)

	fresh := again.Apartments[1]
	assert.NotEmpty(t, fresh.ID)
	assert.Equal(t, model.StatusAvailable, fresh.Status)

	_, err = helper.GetApartment(db, "a")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteFloorPlan_RemovesApartments(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)
	saved, err := helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 1,
		Apartments: []model.Apartment{unit("a", "101", square(0, 0, 10))},
	})
	require.NoError(t, err)

	require.NoError(t, helper.DeleteFloorPlan(db, saved.ID))
	var count int64
	db.Model(&model.Apartment{}).Count(&count)
	assert.Zero(t, count)

	assert.ErrorIs(t, helper.DeleteFloorPlan(db, saved.ID), gorm.ErrRecordNotFound)
}

func TestClaimLifecycle(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)
	_, err := helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 1,
		Apartments: []model.Apartment{unit("a", "101", square(0, 0, 10)), unit("b", "102", square(20, 0, 10))},
	})
	require.NoError(t, err)

	_, err = helper.ClaimApartment(db, "a", w.buyer.ID, "")
	assert.ErrorIs(t, err, floorplan.ErrProofRequired)

	claimed, err := helper.ClaimApartment(db, "a", w.buyer.ID, "https://img/proof.png")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, claimed.Status)

	_, err = helper.ClaimApartment(db, "a", w.owner.ID, "https://img/other.png")
	assert.ErrorIs(t, err, floorplan.ErrInvalidTransition)

	sold, err := helper.SetApartmentStatus(db, "a", model.StatusSold, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, sold.Status)
	assert.Equal(t, w.buyer.ID, *sold.OwnerId)

	_, err = helper.SetApartmentStatus(db, "a", model.StatusAvailable, nil)
	assert.ErrorIs(t, err, floorplan.ErrInvalidTransition)

	// rejection frees the unit again
	_, err = helper.ClaimApartment(db, "b", w.buyer.ID, "https://img/proof.png")
	require.NoError(t, err)
	rejected, err := helper.SetApartmentStatus(db, "b", model.StatusAvailable, nil)
	require.NoError(t, err)
	assert.Nil(t, rejected.OwnerId)
	assert.Nil(t, rejected.ProofImageUrl)

	stored, err := helper.GetApartment(db, "b")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, stored.Status)
	assert.Nil(t, stored.OwnerId)
}

func TestOwnedApartmentsAndProjectAccess(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)
	_, err := helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 2,
		Apartments: []model.Apartment{unit("a", "201", square(0, 0, 10))},
	})
	require.NoError(t, err)

	hasAccess, err := helper.CheckProjectAccess(db, w.buyer.ID, w.project.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)

	hasAccess, err = helper.CheckProjectAccess(db, w.owner.ID, w.project.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)

	// a pending claim does not count yet
	_, err = helper.ClaimApartment(db, "a", w.buyer.ID, "https://img/proof.png")
	require.NoError(t, err)
	owned, err := helper.GetUserApartments(db, w.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)

	_, err = helper.SetApartmentStatus(db, "a", model.StatusSold, nil)
	require.NoError(t, err)

	owned, err = helper.GetUserApartments(db, w.buyer.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "201", owned[0].Apartment.UnitNumber)
	assert.Equal(t, 2, owned[0].FloorPlan.FloorLevel)
	assert.Equal(t, "Tower A", owned[0].Building.Name)
	assert.Equal(t, "Riverside", owned[0].Project.Name)

	hasAccess, err = helper.CheckProjectAccess(db, w.buyer.ID, w.project.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)
}

func TestCreateBuilding_ReplicatesTemplate(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	building, err := helper.CreateBuilding(db, model.CreateBuildingInput{
		ProjectId:   w.project.ID,
		Name:        "Tower B",
		TotalFloors: 3,
		Template: &model.BuildingTemplate{
			ImageUrl:   "https://img/typical.png",
			Apartments: []model.Apartment{unit("t1", "01", square(0, 0, 10)), unit("t2", "02", square(20, 0, 10))},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tower B", building.Name)
	assert.Equal(t, w.project.ID, building.ProjectId)
	assert.Equal(t, 3, building.TotalFloors)

	loaded, err := helper.GetBuilding(db, building.ID)
	require.NoError(t, err)
	require.Len(t, loaded.FloorPlans, 3)

	third, err := helper.GetFloorPlan(db, building.ID, 3)
	require.NoError(t, err)
	require.Len(t, third.Apartments, 2)
	assert.Equal(t, "301", third.Apartments[0].UnitNumber)
	assert.Equal(t, "302", third.Apartments[1].UnitNumber)
	assert.NotEqual(t, "t1", third.Apartments[0].ID)
	assert.Equal(t, "https://img/typical.png", third.ImageUrl)
}

func TestCreateBuilding_ClampsTemplateShapes(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	outside := []geometry.Point{{X: -50, Y: 0}, {X: 150, Y: 0}, {X: 150, Y: 250}}
	building, err := helper.CreateBuilding(db, model.CreateBuildingInput{
		ProjectId:   w.project.ID,
		Name:        "Tower C",
		TotalFloors: 2,
		Template:    &model.BuildingTemplate{Apartments: []model.Apartment{unit("t1", "01", outside)}},
	})
	require.NoError(t, err)

	var apartments []model.Apartment
	require.NoError(t, db.Joins("JOIN floor_plans ON floor_plans.id = apartments.floor_plan_id").
		Where("floor_plans.building_id = ?", building.ID).Find(&apartments).Error)
	require.Len(t, apartments, 2)
	for _, a := range apartments {
		for _, p := range a.Points() {
			assert.True(t, geometry.InRange(p), "unit %s point %+v", a.UnitNumber, p)
		}
		assert.Equal(t, geometry.Point{X: 0, Y: 0}, a.Points()[0])
		assert.Equal(t, geometry.Point{X: 100, Y: 100}, a.Points()[2])
	}
}

func TestSaveFloorPlan_RejectsForeignApartmentIds(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)
	_, err := helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 1,
		Apartments: []model.Apartment{unit("a", "101", square(0, 0, 10))},
	})
	require.NoError(t, err)

	_, err = helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 2,
		Apartments: []model.Apartment{unit("a", "201", square(0, 0, 10))},
	})
	assert.ErrorIs(t, err, helper.ErrApartmentIdTaken)

	_, err = helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
		BuildingId: w.building.ID,
		FloorLevel: 3,
		Apartments: []model.Apartment{unit("x", "301", square(0, 0, 10)), unit("x", "302", square(20, 0, 10))},
	})
	assert.ErrorIs(t, err, helper.ErrApartmentIdTaken)

	first, err := helper.GetApartment(db, "a")
	require.NoError(t, err)
	assert.Equal(t, "101", first.UnitNumber)
}
