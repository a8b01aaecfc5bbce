package handler

import (
	"errors"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/floorplan"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func floorPlanNotFound(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.FLOOR_PLAN_NOT_FOUND, err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

// inventoryAllowed writes the error response itself when it returns false.
func inventoryAllowed(c *fiber.Ctx, account model.Account, builderId uint) bool {
	caps, err := helper.ResolveCapabilities(database.DB, account, builderId)
	if err != nil {
		utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		return false
	}
	if !caps.CanManageInventory {
		utils.ErrorResponse(c, fiber.StatusForbidden, constants.CAN_NOT_EDIT_INVENTORY, errors.New("missing inventory permission"))
		return false
	}
	return true
}

func GetFloorPlan(c *fiber.Ctx) error {
	filter, ok := c.Locals("inputFilterFloorPlan").(model.FilterFloorPlan)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	floorPlan, err := helper.GetFloorPlan(database.DB, filter.BuildingId, filter.FloorLevel)
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, floorPlan)
}

func GetFloorPlanById(c *fiber.Ctx) error {
	floorPlanId := c.Locals("inputId").(uint)
	floorPlan, err := helper.GetFloorPlanById(database.DB, floorPlanId)
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, floorPlan)
}

// SaveFloorPlan upserts a floor plan with its complete apartment list.
func SaveFloorPlan(c *fiber.Ctx) error {
	input, ok := c.Locals("inputSaveFloorPlan").(model.SaveFloorPlanInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	db := database.DB
	builderId, err := helper.BuilderIdForBuilding(db, input.BuildingId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BUILDING_NOT_FOUND, err)
	}
	if !inventoryAllowed(c, account, builderId) {
		return nil
	}

	if input.ImageUrl != "" {
		url, err := helper.StoreImageRef(c.Context(), "floor-plans", input.ImageUrl)
		if err != nil {
			return imageError(c, err)
		}
		input.ImageUrl = url
	}

	floorPlan, err := helper.SaveFloorPlan(db, input)
	if errors.Is(err, helper.ErrApartmentIdTaken) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
	helper.FloorPlanSaves.WithLabelValues("api").Inc()
	helper.PublishFloorPlan(c.Context(), floorPlan.ID, floorPlan.Apartments)
	return utils.SuccessResponse(c, fiber.StatusOK, floorPlan)
}

func DeleteFloorPlan(c *fiber.Ctx) error {
	floorPlanId := c.Locals("inputId").(uint)
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	db := database.DB
	builderId, err := helper.BuilderIdForFloorPlan(db, floorPlanId)
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	if !inventoryAllowed(c, account, builderId) {
		return nil
	}
	if err := helper.DeleteFloorPlan(db, floorPlanId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return floorPlanNotFound(c, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	helper.PublishFloorPlan(c.Context(), floorPlanId, []model.Apartment{})
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

// UpdateFloorPlanImage swaps the background image. Apartment shapes are
// percentages so they stay where they are.
func UpdateFloorPlanImage(c *fiber.Ctx) error {
	floorPlanId := c.Locals("inputId").(uint)
	input, ok := c.Locals("inputFloorPlanImage").(model.UpdateFloorPlanImageInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	db := database.DB
	builderId, err := helper.BuilderIdForFloorPlan(db, floorPlanId)
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	if !inventoryAllowed(c, account, builderId) {
		return nil
	}
	url, err := helper.StoreImageRef(c.Context(), "floor-plans", input.ImageUrl)
	if err != nil {
		return imageError(c, err)
	}
	floorPlan, err := helper.UpdateFloorPlanImage(db, floorPlanId, url)
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, floorPlan)
}

// loadViewer builds a read-only viewer for the caller. Anonymous callers
// can look but never manage sales.
func loadViewer(c *fiber.Ctx, floorPlanId uint, callbacks floorplan.ViewerCallbacks) (*model.FloorPlan, *floorplan.Viewer, error) {
	db := database.DB
	floorPlan, err := helper.GetFloorPlanById(db, floorPlanId)
	if err != nil {
		return nil, nil, err
	}
	opts := floorplan.ViewerOptions{Language: string(utils.NormalizeLanguage(c.Query("lang")))}
	if account := helper.OptionalAccount(c); account != nil {
		opts.Role = account.Role
		if builderId, err := helper.BuilderIdForBuilding(db, floorPlan.BuildingId); err == nil {
			caps, err := helper.ResolveCapabilities(db, *account, builderId)
			if err != nil {
				return nil, nil, err
			}
			opts.CanManageSales = caps.CanProcessClaims
		}
	}
	return floorPlan, floorplan.NewViewer(floorPlan.ImageUrl, floorPlan.Apartments, opts, callbacks), nil
}

func ViewFloorPlan(c *fiber.Ctx) error {
	floorPlanId := c.Locals("inputId").(uint)
	floorPlan, viewer, err := loadViewer(c, floorPlanId, floorplan.ViewerCallbacks{})
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"floorPlanId":    floorPlan.ID,
		"buildingId":     floorPlan.BuildingId,
		"floorLevel":     floorPlan.FloorLevel,
		"imageUrl":       viewer.ImageUrl(),
		"canManageSales": viewer.CanManageSales(),
		"units":          viewer.Render(),
	})
}

func FloorPlanOverlay(c *fiber.Ctx) error {
	floorPlanId := c.Locals("inputId").(uint)
	_, viewer, err := loadViewer(c, floorPlanId, floorplan.ViewerCallbacks{})
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(viewer.RenderOverlay())
}
