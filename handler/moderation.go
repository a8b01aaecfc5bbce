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

func moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, helper.ErrRequestPending):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.REQUEST_ALREADY_PENDING, err)
	case errors.Is(err, helper.ErrRequestReviewed):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ERROR_UPDATE, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

func SubmitVerification(c *fiber.Ctx) error {
	input, ok := c.Locals("inputVerification").(model.SubmitVerificationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	front, err := helper.StoreImageRef(c.Context(), "id-documents", input.IdFront)
	if err != nil {
		return imageError(c, err)
	}
	back, err := helper.StoreImageRef(c.Context(), "id-documents", input.IdBack)
	if err != nil {
		return imageError(c, err)
	}
	request, err := helper.SubmitVerification(database.DB, account, front, back)
	if err != nil {
		return moderationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, request)
}

func SubmitBuilderApplication(c *fiber.Ctx) error {
	input, ok := c.Locals("inputBuilderApplication").(model.SubmitBuilderApplicationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	license, err := helper.StoreImageRef(c.Context(), "licenses", input.License)
	if err != nil {
		return imageError(c, err)
	}
	application, err := helper.SubmitBuilderApplication(database.DB, account, input, license)
	if err != nil {
		return moderationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, application)
}

func GetPendingVerifications(c *fiber.Ctx) error {
	requests, err := helper.GetPendingVerifications(database.DB)
	if err != nil {
		return moderationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, requests)
}

func GetPendingBuilderApplications(c *fiber.Ctx) error {
	applications, err := helper.GetPendingBuilderApplications(database.DB)
	if err != nil {
		return moderationError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, applications)
}

func ReviewVerification(c *fiber.Ctx) error {
	input, ok := c.Locals("inputReview").(model.ReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	request, err := helper.ReviewVerification(database.DB, c.Locals("inputId").(uint), *input.Approved)
	if err != nil {
		return moderationError(c, err)
	}
	notifyApplicant(request.AccountId, "Identity verification", *input.Approved)
	return utils.SuccessResponse(c, fiber.StatusOK, request)
}

func ReviewBuilderApplication(c *fiber.Ctx) error {
	input, ok := c.Locals("inputReview").(model.ReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	application, err := helper.ReviewBuilderApplication(database.DB, c.Locals("inputId").(uint), *input.Approved)
	if err != nil {
		return moderationError(c, err)
	}
	notifyApplicant(application.AccountId, "Builder application", *input.Approved)
	return utils.SuccessResponse(c, fiber.StatusOK, application)
}

func notifyApplicant(accountId uint, subject string, approved bool) {
	var account model.Account
	if err := database.DB.First(&account, accountId).Error; err != nil {
		return
	}
	utils.SendModerationResultEmail(account.Email, account.Name, subject, approved)
}
