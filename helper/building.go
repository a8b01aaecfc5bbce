package helper

import (
	"estate_market/floorplan"
	"estate_market/model"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateBuilding stores the building and, when a template floor is given,
// one floor plan per floor with the template apartments replicated.
func CreateBuilding(db *gorm.DB, input model.CreateBuildingInput) (*model.Building, error) {
	building := new(model.Building)
	if err := copier.Copy(building, &input); err != nil {
		return nil, errors.Wrap(err, "copy building input")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(building).Error; err != nil {
			return errors.Wrap(err, "create building")
		}
		if input.Template == nil {
			return nil
		}
		for floor := 1; floor <= input.TotalFloors; floor++ {
			floorPlan := model.FloorPlan{BuildingId: building.ID, FloorLevel: floor, ImageUrl: input.Template.ImageUrl}
			if err := tx.Create(&floorPlan).Error; err != nil {
				return errors.Wrapf(err, "create floor plan %d", floor)
			}
			apartments := floorplan.ReplicateFloor(input.Template.Apartments, floor, floorPlan.ID)
			if len(apartments) == 0 {
				continue
			}
			if err := tx.Create(&apartments).Error; err != nil {
				return errors.Wrapf(err, "create apartments for floor %d", floor)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return building, nil
}

func GetBuildings(db *gorm.DB, projectId uint) ([]model.Building, error) {
	var buildings []model.Building
	err := db.Where("project_id = ?", projectId).Order("id ASC").Find(&buildings).Error
	return buildings, err
}

// GetBuilding also lists the floors that already have a plan.
func GetBuilding(db *gorm.DB, buildingId uint) (*model.Building, error) {
	var building model.Building
	err := db.Preload("FloorPlans", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "building_id", "floor_level", "image_url", "created_at", "updated_at").Order("floor_level ASC")
	}).First(&building, buildingId).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}
