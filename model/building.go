package model

type Building struct {
	DTO
	ProjectId   uint        `gorm:"index;not null" json:"projectId"`
	Name        string      `gorm:"not null" json:"name"`
	TotalFloors int         `gorm:"not null" json:"totalFloors"`
	Project     *Project    `gorm:"foreignKey:ProjectId" json:"project,omitempty"`
	FloorPlans  []FloorPlan `gorm:"foreignKey:BuildingId" json:"floorPlans,omitempty"`
}

// BuildingTemplate is an authored floor that gets replicated on every floor
// of a new building.
type BuildingTemplate struct {
	ImageUrl   string      `json:"imageUrl" validate:"required"`
	Apartments []Apartment `json:"apartments" validate:"dive"`
}

type CreateBuildingInput struct {
	ProjectId   uint              `json:"projectId" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	TotalFloors int               `json:"totalFloors" validate:"required,min=1,max=200"`
	Template    *BuildingTemplate `json:"template" validate:"omitempty"`
}
