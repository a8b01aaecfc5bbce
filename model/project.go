package model

import "gorm.io/datatypes"

type Project struct {
	DTO
	Slug         string                      `gorm:"uniqueIndex" json:"slug"`
	Name         string                      `gorm:"not null" json:"name"`
	Description  string                      `json:"description"`
	ThumbnailUrl string                      `json:"thumbnailUrl"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	Location     string                      `json:"location"`
	Latitude     *float64                    `json:"latitude"`
	Longitude    *float64                    `json:"longitude"`
	BuilderId    uint                        `gorm:"index;not null" json:"builderId"`
	Builder      *BuilderCompany             `gorm:"foreignKey:BuilderId" json:"builder,omitempty"`
	Buildings    []Building                  `gorm:"foreignKey:ProjectId" json:"buildings,omitempty"`
}

type Projects []Project

type CreateProjectInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Location    string   `json:"location" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type FilterProject struct {
	Pagination
	SearchKey string `query:"searchKey"`
	BuilderId uint   `query:"builderId"`
}
