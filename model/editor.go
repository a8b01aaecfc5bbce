package model

import "estate_market/geometry"

// AddPointInput carries either a point already in percentages or the raw
// pointer position together with the image box it was captured on.
type AddPointInput struct {
	Point *geometry.Point `json:"point" validate:"required_without=Rect"`
	RawX  float64         `json:"rawX"`
	RawY  float64         `json:"rawY"`
	Rect  *geometry.Rect  `json:"rect" validate:"omitempty"`
}

func (in AddPointInput) Resolve() geometry.Point {
	if in.Point != nil {
		return geometry.ClampPoint(*in.Point)
	}
	return geometry.ToPercentagePoint(in.RawX, in.RawY, *in.Rect)
}

type SelectApartmentInput struct {
	ApartmentId string          `json:"apartmentId" validate:"required_without=Point"`
	Point       *geometry.Point `json:"point"`
}

type EditorSessionView struct {
	SessionId   string           `json:"sessionId"`
	FloorPlanId uint             `json:"floorPlanId"`
	ImageUrl    string           `json:"imageUrl"`
	State       string           `json:"state"`
	Points      []geometry.Point `json:"points"`
	CanFinish   bool             `json:"canFinish"`
	SelectedId  string           `json:"selectedId,omitempty"`
	Apartments  []Apartment      `json:"apartments"`
}

// OpenEditorInput picks the floor to author. A missing floor plan is created
// with ImageUrl as its background.
type OpenEditorInput struct {
	BuildingId uint   `json:"buildingId" validate:"required"`
	FloorLevel int    `json:"floorLevel" validate:"min=0"`
	ImageUrl   string `json:"imageUrl"`
}
