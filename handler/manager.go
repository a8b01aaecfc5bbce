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

// ownedBuilder returns the caller's builder company. Only the owner manages
// managers. When it returns false the error response has been written.
func ownedBuilder(c *fiber.Ctx) (*model.BuilderCompany, bool) {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil, false
	}
	builder, err := helper.GetBuilderByOwner(database.DB, account.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_BUILDER, err)
		} else {
			utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return nil, false
	}
	return builder, true
}

// builderManager loads a manager of the caller's builder from :managerId.
func builderManager(c *fiber.Ctx, builder *model.BuilderCompany) (*model.Manager, error) {
	var manager model.Manager
	err := database.DB.Where("id = ? AND builder_id = ?", c.Locals("inputId").(uint), builder.ID).First(&manager).Error
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

func GetManagers(c *fiber.Ctx) error {
	builder, ok := ownedBuilder(c)
	if !ok {
		return nil
	}
	managers, err := helper.GetBuilderManagers(database.DB, builder.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, managers)
}

func AddManager(c *fiber.Ctx) error {
	input, ok := c.Locals("inputAddManager").(model.AddManagerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	builder, ok := ownedBuilder(c)
	if !ok {
		return nil
	}
	if input.AccountId == builder.OwnerAccountId {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("owner cannot be a manager"))
	}
	manager, err := helper.AddManager(database.DB, builder.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrManagerExists):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.MANAGER_ALREADY_EXISTS, err)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, manager)
}

func UpdateManager(c *fiber.Ctx) error {
	input, ok := c.Locals("inputUpdateManager").(model.UpdateManagerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	builder, ok := ownedBuilder(c)
	if !ok {
		return nil
	}
	manager, err := builderManager(c, builder)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	updated, err := helper.UpdateManagerPermissions(database.DB, manager.ID, input.Permissions)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

func RemoveManager(c *fiber.Ctx) error {
	builder, ok := ownedBuilder(c)
	if !ok {
		return nil
	}
	manager, err := builderManager(c, builder)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if err := helper.RemoveManager(database.DB, *manager); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

// GetMyCapabilities tells the caller what they may do inside a builder.
func GetMyCapabilities(c *fiber.Ctx) error {
	builderId := c.Locals("inputId").(uint)
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	caps, err := helper.ResolveCapabilities(database.DB, account, builderId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BUILDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, caps)
}
