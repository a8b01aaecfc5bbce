package validate

import (
	"errors"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/model"
	"estate_market/utils"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		var count int64
		database.DB.Model(&model.Account{}).Where("username = ?", input.Username).Count(&count)
		if count > 0 {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.USERNAME_EXISTS, errors.New("username taken"))
		}
		database.DB.Model(&model.Account{}).Where("phone = ?", input.Phone).Count(&count)
		if count > 0 {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.PHONE_NUMBER_EXISTS, errors.New("phone taken"))
		}

		c.Locals("inputRegister", input)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if input.Username == "" || input.Password == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("missing credentials"))
		}
		c.Locals("inputLogin", input)
		return c.Next()
	}
}

func UpdateAccountStatus() fiber.Handler {
	return Body[model.UpdateAccountStatusInput]("inputAccountStatus")
}
