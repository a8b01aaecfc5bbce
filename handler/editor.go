package handler

import (
	"context"
	"errors"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/floorplan"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func sessionView(s *helper.EditorSession, e *floorplan.Editor) model.EditorSessionView {
	return model.EditorSessionView{
		SessionId:   s.ID,
		FloorPlanId: e.FloorPlanId(),
		ImageUrl:    e.ImageUrl(),
		State:       string(e.State()),
		Points:      e.Points(),
		CanFinish:   e.CanFinish(),
		SelectedId:  e.SelectedId(),
		Apartments:  e.Apartments(),
	}
}

func editorError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, floorplan.ErrInvalidState), errors.Is(err, floorplan.ErrTooFewPoints):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_EDITOR_ACTION, err)
	case errors.Is(err, floorplan.ErrApartmentNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.APARTMENT_NOT_FOUND, err)
	case errors.As(err, &verrs):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
}

// persistEditor is the editor's onSave: the complete list replaces what is
// stored for the floor and viewers get the new list.
func persistEditor(db *gorm.DB, buildingId uint, floorLevel int) floorplan.SaveFunc {
	return func(apartments []model.Apartment) error {
		saved, err := helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
			BuildingId: buildingId,
			FloorLevel: floorLevel,
			Apartments: apartments,
		})
		if err != nil {
			return err
		}
		helper.FloorPlanSaves.WithLabelValues("editor").Inc()
		helper.PublishFloorPlan(context.Background(), saved.ID, saved.Apartments)
		return nil
	}
}

// OpenEditorSession seeds an editor from the stored floor plan, creating
// the plan first when the floor has none.
func OpenEditorSession(c *fiber.Ctx) error {
	input, ok := c.Locals("inputOpenEditor").(model.OpenEditorInput)
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

	floorPlan, err := helper.GetFloorPlan(db, input.BuildingId, input.FloorLevel)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		imageUrl := input.ImageUrl
		if imageUrl != "" {
			if imageUrl, err = helper.StoreImageRef(c.Context(), "floor-plans", imageUrl); err != nil {
				return imageError(c, err)
			}
		}
		floorPlan, err = helper.SaveFloorPlan(db, model.SaveFloorPlanInput{
			BuildingId: input.BuildingId,
			FloorLevel: input.FloorLevel,
			ImageUrl:   imageUrl,
		})
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	editor := floorplan.NewEditor(floorPlan.ID, floorPlan.ImageUrl, floorPlan.Apartments,
		persistEditor(db, floorPlan.BuildingId, floorPlan.FloorLevel))
	session := helper.Sessions.Open(account.ID, floorPlan.ID, editor)

	var view model.EditorSessionView
	session.Do(func(e *floorplan.Editor) error {
		view = sessionView(session, e)
		return nil
	})
	return utils.SuccessResponse(c, fiber.StatusCreated, view)
}

// withSession runs fn on the caller's session and answers with the
// resulting editor view.
func withSession(c *fiber.Ctx, fn func(e *floorplan.Editor) error) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	session, err := helper.Sessions.Get(c.Params("sessionId"), account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, err)
	}
	var view model.EditorSessionView
	err = session.Do(func(e *floorplan.Editor) error {
		actionErr := fn(e)
		view = sessionView(session, e)
		return actionErr
	})
	if err != nil {
		return editorError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, view)
}

func GetEditorSession(c *fiber.Ctx) error {
	return withSession(c, func(e *floorplan.Editor) error { return nil })
}

func CloseEditorSession(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	if err := helper.Sessions.Close(c.Params("sessionId"), account.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func EditorStartDrawing(c *fiber.Ctx) error {
	return withSession(c, func(e *floorplan.Editor) error { return e.StartDrawing() })
}

func EditorAddPoint(c *fiber.Ctx) error {
	input, ok := c.Locals("inputPoint").(model.AddPointInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	return withSession(c, func(e *floorplan.Editor) error { return e.AddPoint(input.Resolve()) })
}

func EditorFinishShape(c *fiber.Ctx) error {
	return withSession(c, func(e *floorplan.Editor) error { return e.FinishShape() })
}

func EditorCancel(c *fiber.Ctx) error {
	return withSession(c, func(e *floorplan.Editor) error {
		e.Cancel()
		return nil
	})
}

func EditorConfirm(c *fiber.Ctx) error {
	form, ok := c.Locals("inputApartmentForm").(floorplan.ApartmentForm)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	return withSession(c, func(e *floorplan.Editor) error {
		_, err := e.Confirm(form)
		return err
	})
}

func EditorDiscard(c *fiber.Ctx) error {
	return withSession(c, func(e *floorplan.Editor) error { return e.Discard() })
}

func EditorSelect(c *fiber.Ctx) error {
	input, ok := c.Locals("inputSelectApartment").(model.SelectApartmentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	return withSession(c, func(e *floorplan.Editor) error {
		if input.ApartmentId != "" {
			return e.Select(input.ApartmentId)
		}
		_, err := e.SelectAt(*input.Point)
		return err
	})
}

func EditorDeselect(c *fiber.Ctx) error {
	return withSession(c, func(e *floorplan.Editor) error { return e.Deselect() })
}

func EditorDelete(c *fiber.Ctx) error {
	return withSession(c, func(e *floorplan.Editor) error {
		_, err := e.Delete()
		return err
	})
}

func EditorOverlay(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	session, err := helper.Sessions.Get(c.Params("sessionId"), account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, err)
	}
	var svg string
	session.Do(func(e *floorplan.Editor) error {
		svg = e.RenderEditorOverlay()
		return nil
	})
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}
