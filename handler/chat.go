package handler

import (
	"errors"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// chatRef parses :chatId and checks the caller may read it. When it returns
// false the error response has been written.
func chatRef(c *fiber.Ctx, account model.Account) (helper.ChatRef, bool, bool) {
	ref, err := helper.ParseChatId(c.Params("chatId"))
	if err != nil {
		utils.ErrorResponse(c, fiber.StatusNotFound, constants.CHAT_NOT_FOUND, err)
		return ref, false, false
	}
	canRead, canWrite, err := helper.ChatAccess(database.DB, account, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, fiber.StatusNotFound, constants.CHAT_NOT_FOUND, err)
		} else {
			utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return ref, false, false
	}
	if !canRead {
		utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("no access to chat"))
		return ref, false, false
	}
	return ref, canWrite, true
}

func GetChatSessions(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	sessions, err := helper.ListChatSessions(database.DB, account)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sessions)
}

func StartSupportChat(c *fiber.Ctx) error {
	projectId := c.Locals("inputId").(uint)
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	chatId, err := helper.StartSupportChat(database.DB, projectId, account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PROJECT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"chatId": chatId})
}

func GetChatMessages(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	_, canWrite, ok := chatRef(c, account)
	if !ok {
		return nil
	}
	messages, err := helper.GetMessages(database.DB, c.Params("chatId"), c.QueryInt("limit", 200))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"messages": messages, "canWrite": canWrite})
}

func SendChatMessage(c *fiber.Ctx) error {
	input, ok := c.Locals("inputSendMessage").(model.SendMessageInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	_, canWrite, ok := chatRef(c, account)
	if !ok {
		return nil
	}
	if !canWrite {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.CHAT_READ_ONLY, errors.New("read only"))
	}

	imageUrl := ""
	if input.Image != "" {
		url, err := helper.StoreImageRef(c.Context(), "chat", input.Image)
		if err != nil {
			return imageError(c, err)
		}
		imageUrl = url
	}
	chatId := c.Params("chatId")
	message, err := helper.SaveMessage(database.DB, chatId, account, input.Text, imageUrl)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	if err := helper.Realtime.Publish(c.Context(), helper.ChatTopic(chatId), helper.Event{Type: "message", Data: message}); err != nil {
		log.Printf("realtime: publish chat %s: %v", chatId, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, message)
}
