package model

import (
	"estate_market/geometry"

	"gorm.io/datatypes"
)

type ApartmentStatus string

const (
	StatusAvailable ApartmentStatus = "AVAILABLE"
	StatusPending   ApartmentStatus = "PENDING"
	StatusReserved  ApartmentStatus = "RESERVED"
	StatusSold      ApartmentStatus = "SOLD"
)

var ApartmentStatuses = []ApartmentStatus{StatusAvailable, StatusPending, StatusReserved, StatusSold}

func (s ApartmentStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusReserved, StatusSold:
		return true
	}
	return false
}

// Apartment is a sellable unit drawn on a floor plan. Shape points are
// percentages of the floor-plan image.
type Apartment struct {
	ID            string                              `gorm:"primaryKey;size:64" json:"id"`
	FloorPlanId   uint                                `gorm:"index;not null" json:"floorPlanId"`
	Position      int                                 `gorm:"not null;default:0" json:"-"`
	UnitNumber    string                              `gorm:"not null" json:"unitNumber" validate:"required"`
	Rooms         int                                 `gorm:"not null" json:"rooms" validate:"gt=0"`
	AreaSqFt      float64                             `gorm:"not null" json:"areaSqFt" validate:"gt=0"`
	Price         float64                             `gorm:"not null" json:"price" validate:"gte=0"`
	Status        ApartmentStatus                     `gorm:"not null;default:AVAILABLE;index" json:"status" validate:"omitempty,oneof=AVAILABLE PENDING RESERVED SOLD"`
	Shape         datatypes.JSONSlice[geometry.Point] `gorm:"not null" json:"shape" validate:"min=3"`
	OwnerId       *uint                               `gorm:"index" json:"ownerId"`
	ProofImageUrl *string                             `json:"proofImageUrl,omitempty"`
}

func (a *Apartment) Points() []geometry.Point {
	return []geometry.Point(a.Shape)
}

type FloorPlan struct {
	DTO
	BuildingId uint        `gorm:"not null;uniqueIndex:idx_building_floor" json:"buildingId"`
	FloorLevel int         `gorm:"not null;uniqueIndex:idx_building_floor" json:"floorLevel"`
	ImageUrl   string      `json:"imageUrl"`
	Apartments []Apartment `gorm:"foreignKey:FloorPlanId;constraint:OnDelete:CASCADE" json:"apartments"`
	Building   *Building   `gorm:"foreignKey:BuildingId" json:"building,omitempty"`
}

type SaveFloorPlanInput struct {
	BuildingId uint        `json:"buildingId" validate:"required"`
	FloorLevel int         `json:"floorLevel" validate:"min=0"`
	ImageUrl   string      `json:"imageUrl"`
	Apartments []Apartment `json:"apartments" validate:"dive"`
}

type FilterFloorPlan struct {
	BuildingId uint `query:"buildingId" validate:"required"`
	FloorLevel int  `query:"floorLevel"`
}

type ClaimInput struct {
	ProofImage string `json:"proofImage" form:"proofImage"`
}

type UpdateApartmentStatusInput struct {
	Status  ApartmentStatus `json:"status" validate:"required,oneof=AVAILABLE PENDING RESERVED SOLD"`
	OwnerId *uint           `json:"ownerId"`
}

// OwnedApartment is one entry of a buyer's "my home" list.
type OwnedApartment struct {
	Apartment Apartment `json:"apartment"`
	FloorPlan FloorPlan `json:"floorPlan"`
	Building  Building  `json:"building"`
	Project   Project   `json:"project"`
}

type UpdateFloorPlanImageInput struct {
	ImageUrl string `json:"imageUrl" validate:"required"`
}
