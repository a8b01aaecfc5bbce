package handler

import (
	"errors"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Me(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	status, err := helper.GetUserStatus(database.DB, account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	resp := fiber.Map{
		"account":       account,
		"status":        status,
		"languageLabel": utils.GetLanguageLabel(utils.NormalizeLanguage(account.Language)),
	}
	if builder, err := helper.GetBuilderByOwner(database.DB, account.ID); err == nil {
		resp["builder"] = builder
	}
	var managed model.Managers
	database.DB.Where("account_id = ?", account.ID).Find(&managed)
	resp["managerOf"] = managed
	return utils.SuccessResponse(c, fiber.StatusOK, resp)
}

func GetMyStatus(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	status, err := helper.GetUserStatus(database.DB, account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, status)
}

// GetMyApartments is the buyer's "my home" list.
func GetMyApartments(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	owned, err := helper.GetUserApartments(database.DB, account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, owned)
}

func SearchAccountByPhone(c *fiber.Ctx) error {
	if _, ok := helper.GetInfoAccountFromToken(c); !ok {
		return nil
	}
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("phone is required"))
	}
	account, err := helper.SearchAccountByPhone(database.DB, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":        account.ID,
		"name":      account.Name,
		"phone":     account.Phone,
		"avatarUrl": account.AvatarUrl,
	})
}

func GetAccounts(c *fiber.Ctx) error {
	filterInput := new(model.FilterAccount)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Account{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(username) LIKE ? OR LOWER(name) LIKE ? OR phone LIKE ?", key, key, key)
	}
	if filterInput.Role != "" {
		condition = condition.Where("role = ?", filterInput.Role)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var accounts model.Accounts
	condition.Order("id ASC").Find(&accounts)

	verified := map[uint]bool{}
	if len(accounts) > 0 {
		ids := make([]uint, 0, len(accounts))
		for _, a := range accounts {
			ids = append(ids, a.ID)
		}
		var verifiedIds []uint
		db.Model(&model.IdVerificationRequest{}).
			Where("account_id IN ? AND status = ?", ids, constants.REQUEST_APPROVED).
			Pluck("account_id", &verifiedIds)
		for _, id := range verifiedIds {
			verified[id] = true
		}
	}

	rows := make([]model.AccountView, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, model.AccountView{
			ID:         a.ID,
			Name:       a.Name,
			Role:       a.Role,
			Phone:      a.Phone,
			Status:     a.Status,
			IsVerified: verified[a.ID],
			JoinedDate: a.CreatedAt.UnixMilli(),
		})
	}
	response := &model.ResponseCustom{
		Rows:       rows,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// UpdateAccountStatus blocks or unblocks an account. Admin accounts cannot
// be blocked.
func UpdateAccountStatus(c *fiber.Ctx) error {
	input, ok := c.Locals("inputAccountStatus").(model.UpdateAccountStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	accountId, ok := c.Locals("inputId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse accountId fail"))
	}

	db := database.DB
	var account model.Account
	if err := db.First(&account, accountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if account.Role == constants.ROLE_ADMIN && input.Status == constants.ACCOUNT_BLOCKED {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("cannot block admin"))
	}
	if err := db.Model(&account).Update("status", input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}
