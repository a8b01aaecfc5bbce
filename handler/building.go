package handler

import (
	"errors"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateBuilding needs builder ownership or the inventory permission on the
// project's builder.
func CreateBuilding(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateBuilding").(model.CreateBuildingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	db := database.DB

	builderId, err := helper.BuilderIdForProject(db, input.ProjectId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PROJECT_NOT_FOUND, err)
	}
	caps, err := helper.ResolveCapabilities(db, account, builderId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !caps.CanManageInventory {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.CAN_NOT_EDIT_INVENTORY, errors.New("missing inventory permission"))
	}

	if input.Template != nil {
		url, err := helper.StoreImageRef(c.Context(), "floor-plans", input.Template.ImageUrl)
		if err != nil {
			return imageError(c, err)
		}
		input.Template.ImageUrl = url
	}

	building, err := helper.CreateBuilding(db, input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, building)
}

func GetBuildingById(c *fiber.Ctx) error {
	buildingId := c.Locals("inputId").(uint)
	building, err := helper.GetBuilding(database.DB, buildingId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BUILDING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, building)
}

func imageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, helper.ErrNotImage) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_IMAGE, err)
	}
	return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.UPLOAD_FAILED, err)
}
