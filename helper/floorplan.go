package helper

import (
	"estate_market/floorplan"
	"estate_market/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrApartmentIdTaken is returned when a saved list reuses an id twice or
// carries the id of an apartment on another floor plan.
var ErrApartmentIdTaken = errors.New("apartment id already in use")

func newApartmentId() string {
	return uuid.NewString()
}

func orderedApartments(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func GetFloorPlan(db *gorm.DB, buildingId uint, floorLevel int) (*model.FloorPlan, error) {
	var floorPlan model.FloorPlan
	err := db.Preload("Apartments", orderedApartments).
		Where("building_id = ? AND floor_level = ?", buildingId, floorLevel).
		First(&floorPlan).Error
	if err != nil {
		return nil, err
	}
	return &floorPlan, nil
}

func GetFloorPlanById(db *gorm.DB, floorPlanId uint) (*model.FloorPlan, error) {
	var floorPlan model.FloorPlan
	if err := db.Preload("Apartments", orderedApartments).First(&floorPlan, floorPlanId).Error; err != nil {
		return nil, err
	}
	return &floorPlan, nil
}

// SaveFloorPlan upserts the plan for (building, floor) and replaces its
// apartment list.
func SaveFloorPlan(db *gorm.DB, input model.SaveFloorPlanInput) (*model.FloorPlan, error) {
	var floorPlanId uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var floorPlan model.FloorPlan
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("building_id = ? AND floor_level = ?", input.BuildingId, input.FloorLevel).
			First(&floorPlan).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			floorPlan = model.FloorPlan{BuildingId: input.BuildingId, FloorLevel: input.FloorLevel, ImageUrl: input.ImageUrl}
			if err := tx.Create(&floorPlan).Error; err != nil {
				return errors.Wrap(err, "create floor plan")
			}
		case err != nil:
			return errors.Wrap(err, "load floor plan")
		case input.ImageUrl != "" && input.ImageUrl != floorPlan.ImageUrl:
			if err := tx.Model(&floorPlan).Update("image_url", input.ImageUrl).Error; err != nil {
				return errors.Wrap(err, "update floor plan image")
			}
		}
		floorPlanId = floorPlan.ID
		return ReplaceApartments(tx, floorPlan.ID, input.Apartments)
	})
	if err != nil {
		return nil, err
	}
	return GetFloorPlanById(db, floorPlanId)
}

// ReplaceApartments stores the complete list emitted by the editor. Units
// already on the plan keep their stored status, owner and proof because the
// editor never changes lifecycle fields; new units always start AVAILABLE.
func ReplaceApartments(tx *gorm.DB, floorPlanId uint, apartments []model.Apartment) error {
	var existing []model.Apartment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("floor_plan_id = ?", floorPlanId).
		Find(&existing).Error; err != nil {
		return errors.Wrap(err, "load apartments")
	}
	stored := make(map[string]model.Apartment, len(existing))
	for _, a := range existing {
		stored[a.ID] = a
	}

	if err := tx.Where("floor_plan_id = ?", floorPlanId).Delete(&model.Apartment{}).Error; err != nil {
		return errors.Wrap(err, "clear apartments")
	}
	if len(apartments) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(apartments))
	var fresh []string
	for _, a := range apartments {
		if a.ID == "" {
			continue
		}
		if seen[a.ID] {
			return errors.Wrap(ErrApartmentIdTaken, a.ID)
		}
		seen[a.ID] = true
		if _, ok := stored[a.ID]; !ok {
			fresh = append(fresh, a.ID)
		}
	}
	if len(fresh) > 0 {
		var taken []string
		if err := tx.Model(&model.Apartment{}).Where("id IN ?", fresh).Pluck("id", &taken).Error; err != nil {
			return errors.Wrap(err, "check apartment ids")
		}
		if len(taken) > 0 {
			return errors.Wrap(ErrApartmentIdTaken, taken[0])
		}
	}

	rows := make([]model.Apartment, 0, len(apartments))
	for i, a := range apartments {
		a.FloorPlanId = floorPlanId
		a.Position = i
		if prev, ok := stored[a.ID]; ok {
			a.Status = prev.Status
			a.OwnerId = prev.OwnerId
			a.ProofImageUrl = prev.ProofImageUrl
		} else {
			if a.ID == "" {
				a.ID = newApartmentId()
			}
			a.Status = model.StatusAvailable
			a.OwnerId = nil
			a.ProofImageUrl = nil
		}
		rows = append(rows, a)
	}
	return errors.Wrap(tx.CreateInBatches(&rows, 200).Error, "insert apartments")
}

func DeleteFloorPlan(db *gorm.DB, floorPlanId uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.FloorPlan{}, floorPlanId)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete floor plan")
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return errors.Wrap(tx.Where("floor_plan_id = ?", floorPlanId).Delete(&model.Apartment{}).Error, "delete apartments")
	})
}

func UpdateFloorPlanImage(db *gorm.DB, floorPlanId uint, imageUrl string) (*model.FloorPlan, error) {
	res := db.Model(&model.FloorPlan{}).Where("id = ?", floorPlanId).Update("image_url", imageUrl)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update floor plan image")
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetFloorPlanById(db, floorPlanId)
}

func GetApartment(db *gorm.DB, apartmentId string) (*model.Apartment, error) {
	var apartment model.Apartment
	if err := db.Where("id = ?", apartmentId).First(&apartment).Error; err != nil {
		return nil, err
	}
	return &apartment, nil
}

// mutateApartment runs fn against the locked row and saves the result.
func mutateApartment(db *gorm.DB, apartmentId string, fn func(a *model.Apartment) error) (*model.Apartment, error) {
	var apartment model.Apartment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", apartmentId).
			First(&apartment).Error; err != nil {
			return err
		}
		if err := fn(&apartment); err != nil {
			return err
		}
		return tx.Model(&apartment).
			Select("status", "owner_id", "proof_image_url").
			Updates(&apartment).Error
	})
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

func ClaimApartment(db *gorm.DB, apartmentId string, claimantId uint, proofUrl string) (*model.Apartment, error) {
	return mutateApartment(db, apartmentId, func(a *model.Apartment) error {
		return floorplan.Claim(a, claimantId, proofUrl)
	})
}

func SetApartmentStatus(db *gorm.DB, apartmentId string, target model.ApartmentStatus, ownerId *uint) (*model.Apartment, error) {
	return mutateApartment(db, apartmentId, func(a *model.Apartment) error {
		return floorplan.Apply(a, target, ownerId)
	})
}

func GetUserApartments(db *gorm.DB, accountId uint) ([]model.OwnedApartment, error) {
	var apartments []model.Apartment
	if err := db.Where("owner_id = ? AND status IN ?", accountId, []model.ApartmentStatus{model.StatusSold, model.StatusReserved}).
		Order("floor_plan_id ASC, position ASC").
		Find(&apartments).Error; err != nil {
		return nil, errors.Wrap(err, "load owned apartments")
	}
	owned := make([]model.OwnedApartment, 0, len(apartments))
	if len(apartments) == 0 {
		return owned, nil
	}

	ids := make([]uint, 0, len(apartments))
	for _, a := range apartments {
		ids = append(ids, a.FloorPlanId)
	}
	var floorPlans []model.FloorPlan
	if err := db.Preload("Building.Project").Where("id IN ?", ids).Find(&floorPlans).Error; err != nil {
		return nil, errors.Wrap(err, "load floor plans")
	}
	byId := make(map[uint]model.FloorPlan, len(floorPlans))
	for _, fp := range floorPlans {
		byId[fp.ID] = fp
	}

	for _, a := range apartments {
		fp, ok := byId[a.FloorPlanId]
		if !ok || fp.Building == nil || fp.Building.Project == nil {
			continue
		}
		building := *fp.Building
		project := *building.Project
		building.Project = nil
		fp.Building = nil
		owned = append(owned, model.OwnedApartment{Apartment: a, FloorPlan: fp, Building: building, Project: project})
	}
	return owned, nil
}

// CheckProjectAccess is true for the owning builder and for anyone holding
// a RESERVED or SOLD apartment in any building of the project.
func CheckProjectAccess(db *gorm.DB, accountId, projectId uint) (bool, error) {
	var project model.Project
	if err := db.Preload("Builder").First(&project, projectId).Error; err != nil {
		return false, err
	}
	if project.Builder != nil && project.Builder.OwnerAccountId == accountId {
		return true, nil
	}

	var count int64
	err := db.Model(&model.Apartment{}).
		Joins("JOIN floor_plans ON floor_plans.id = apartments.floor_plan_id").
		Joins("JOIN buildings ON buildings.id = floor_plans.building_id").
		Where("buildings.project_id = ? AND apartments.owner_id = ? AND apartments.status IN ?",
			projectId, accountId, []model.ApartmentStatus{model.StatusSold, model.StatusReserved}).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check project access")
	}
	return count > 0, nil
}
