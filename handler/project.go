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
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetBuilderById(c *fiber.Ctx) error {
	builderId := c.Locals("inputId").(uint)
	var builder model.BuilderCompany
	if err := database.DB.First(&builder, builderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BUILDER_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, builder)
}

func GetBuilderProjects(c *fiber.Ctx) error {
	builderId := c.Locals("inputId").(uint)
	var projects model.Projects
	if err := database.DB.Where("builder_id = ?", builderId).Order("id ASC").Find(&projects).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, projects)
}

func GetProjects(c *fiber.Ctx) error {
	filterInput, ok := c.Locals("inputFilterProject").(model.FilterProject)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	condition := database.DB.Model(&model.Project{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", key, key)
	}
	if filterInput.BuilderId != 0 {
		condition = condition.Where("builder_id = ?", filterInput.BuilderId)
	}
	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var projects model.Projects
	condition.Preload("Builder").Order("id ASC").Find(&projects)
	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       projects,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	})
}

func GetProjectById(c *fiber.Ctx) error {
	projectId := c.Locals("inputId").(uint)
	var project model.Project
	if err := database.DB.Preload("Builder").First(&project, projectId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PROJECT_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, project)
}

// CreateProject adds a project to the caller's builder company. The first
// image becomes the thumbnail.
func CreateProject(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateProject").(model.CreateProjectInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	db := database.DB
	builder, err := helper.GetBuilderByOwner(db, account.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_BUILDER, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	images := make([]string, 0, len(input.Images))
	for _, ref := range input.Images {
		url, err := helper.StoreImageRef(c.Context(), "projects", ref)
		if err != nil {
			if errors.Is(err, helper.ErrNotImage) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_IMAGE, err)
			}
			return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.UPLOAD_FAILED, err)
		}
		images = append(images, url)
	}

	newProject := new(model.Project)
	copier.Copy(newProject, &input)
	newProject.Images = images
	if len(images) > 0 {
		newProject.ThumbnailUrl = images[0]
	}
	newProject.BuilderId = builder.ID

	err = db.Transaction(func(tx *gorm.DB) error {
		newProject.Slug = helper.GenerateUniqueProjectSlug(tx, input.Name)
		return tx.Create(newProject).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	db.Model(&model.BuilderCompany{}).Where("id = ?", builder.ID).
		UpdateColumn("under_construction_count", gorm.Expr("under_construction_count + ?", 1))
	return utils.SuccessResponse(c, fiber.StatusCreated, newProject)
}

func GetProjectBuildings(c *fiber.Ctx) error {
	projectId := c.Locals("inputId").(uint)
	buildings, err := helper.GetBuildings(database.DB, projectId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, buildings)
}

func CheckProjectAccess(c *fiber.Ctx) error {
	projectId := c.Locals("inputId").(uint)
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	hasAccess, err := helper.CheckProjectAccess(database.DB, account.ID, projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PROJECT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"hasAccess": hasAccess})
}
