package handler

import (
	"errors"
	"estate_market/config"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

func setAccessCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   config.ConfigBool("COOKIE_SECURE", false),
		Path:     "/",
	})
}

func issueToken(c *fiber.Ctx, account *model.Account, status int) error {
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	setAccessCookie(c, token)

	return utils.SuccessResponse(c, status, fiber.Map{
		"accessToken": token,
		"account":     account,
	})
}

func Register(c *fiber.Ctx) error {
	input, ok := c.Locals("inputRegister").(model.RegisterInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	account := model.Account{
		Username: input.Username,
		Password: hash,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Role:     constants.ROLE_BUYER,
		Status:   constants.ACCOUNT_ACTIVE,
		Language: string(utils.NormalizeLanguage(input.Language)),
	}
	if err := database.DB.Create(&account).Error; err != nil {
		log.Printf("register failed for %s: %v", input.Username, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return issueToken(c, &account, fiber.StatusCreated)
}

func Login(c *fiber.Ctx) error {
	input, ok := c.Locals("inputLogin").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	account, err := helper.GetUserByUsername(database.DB, input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, errors.New("username not exists"))
	}
	if !helper.CheckPasswordHash(input.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}
	if !account.IsActive() {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("account blocked"))
	}

	return issueToken(c, account, fiber.StatusOK)
}

func Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}
