package validate

import (
	"errors"
	"estate_market/constants"
	"estate_market/floorplan"
	"estate_market/geometry"
	"estate_market/model"
	"estate_market/utils"

	"github.com/gofiber/fiber/v2"
)

// SaveFloorPlan clamps every polygon point into the image.
func SaveFloorPlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SaveFloorPlanInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		for i := range input.Apartments {
			for j, p := range input.Apartments[i].Shape {
				input.Apartments[i].Shape[j] = geometry.ClampPoint(p)
			}
		}

		c.Locals("inputSaveFloorPlan", input)
		return c.Next()
	}
}

func FilterFloorPlan() fiber.Handler {
	return Query[model.FilterFloorPlan]("inputFilterFloorPlan")
}

func FloorPlanImage() fiber.Handler {
	return Body[model.UpdateFloorPlanImageInput]("inputFloorPlanImage")
}

func UpdateApartmentStatus() fiber.Handler {
	return Body[model.UpdateApartmentStatusInput]("inputApartmentStatus")
}

func AddPoint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddPointInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if input.Point == nil && input.Rect == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("point or rect is required"))
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("inputPoint", input)
		return c.Next()
	}
}

func ApartmentForm() fiber.Handler {
	return Body[floorplan.ApartmentForm]("inputApartmentForm")
}

func SelectApartment() fiber.Handler {
	return Body[model.SelectApartmentInput]("inputSelectApartment")
}

func OpenEditor() fiber.Handler {
	return Body[model.OpenEditorInput]("inputOpenEditor")
}
