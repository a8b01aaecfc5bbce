package floorplan

import (
	"fmt"

	"estate_market/geometry"
	"estate_market/model"

	"github.com/google/uuid"
)

// ReplicateFloor copies the template apartments onto one floor. Every copy
// gets a fresh id, starts AVAILABLE without owner or proof, and has its unit
// number prefixed with the floor number. Template points are clamped into
// the image like any other authored shape.
func ReplicateFloor(template []model.Apartment, floor int, floorPlanId uint) []model.Apartment {
	out := make([]model.Apartment, 0, len(template))
	for i, t := range template {
		shape := make([]geometry.Point, 0, len(t.Shape))
		for _, p := range t.Shape {
			shape = append(shape, geometry.ClampPoint(p))
		}
		out = append(out, model.Apartment{
			ID:          uuid.NewString(),
			FloorPlanId: floorPlanId,
			Position:    i,
			UnitNumber:  fmt.Sprintf("%d%s", floor, t.UnitNumber),
			Rooms:       t.Rooms,
			AreaSqFt:    t.AreaSqFt,
			Price:       t.Price,
			Status:      model.StatusAvailable,
			Shape:       shape,
		})
	}
	return out
}
