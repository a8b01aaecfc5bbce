package handler

import (
	"errors"
	"estate_market/config"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/floorplan"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func apartmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.APARTMENT_NOT_FOUND, err)
	case errors.Is(err, floorplan.ErrInvalidTransition):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_TRANSITION, err)
	case errors.Is(err, floorplan.ErrProofRequired):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PROOF_IMAGE_REQUIRED, err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}
}

func GetApartment(c *fiber.Ctx) error {
	apartment, err := helper.GetApartment(database.DB, c.Params("apartmentId"))
	if err != nil {
		return apartmentError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, apartment)
}

// readProof takes the proof either as a multipart file or as a data URL or
// hosted URL in the JSON body, and stores it.
func readProof(c *fiber.Ctx) (string, error) {
	if file, err := c.FormFile("proofImage"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		data, contentType, err := helper.CheckImage(data)
		if err != nil {
			return "", err
		}
		return helper.StoreImageBytes(c.Context(), "proofs", data, contentType)
	}

	var input model.ClaimInput
	if err := c.BodyParser(&input); err != nil {
		return "", err
	}
	if strings.TrimSpace(input.ProofImage) == "" {
		return "", nil
	}
	return helper.StoreImageRef(c.Context(), "proofs", input.ProofImage)
}

// ClaimApartment reserves an AVAILABLE unit for a verified buyer. The proof
// is stored before the claim is written.
func ClaimApartment(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	db := database.DB
	verified, err := helper.IsVerified(db, account.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !verified {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NEED_VERIFICATION, errors.New("account is not verified"))
	}

	apartmentId := c.Params("apartmentId")
	apartment, err := helper.GetApartment(db, apartmentId)
	if err != nil {
		return apartmentError(c, err)
	}

	proofUrl, err := readProof(c)
	if err != nil {
		return imageError(c, err)
	}

	var (
		claimed  *model.Apartment
		claimErr error
	)
	_, viewer, err := loadViewer(c, apartment.FloorPlanId, floorplan.ViewerCallbacks{
		OnReserve: func(id, proof string) {
			claimed, claimErr = helper.ClaimApartment(db, id, account.ID, proof)
			helper.ObserveTransition(string(floorplan.ActionClaim), claimErr)
		},
	})
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	viewer.Select(apartmentId)
	viewer.AttachProof(proofUrl)
	if !viewer.SubmitClaim() {
		if proofUrl == "" {
			return apartmentError(c, floorplan.ErrProofRequired)
		}
		helper.ObserveTransition(string(floorplan.ActionClaim), floorplan.ErrInvalidTransition)
		return apartmentError(c, floorplan.ErrInvalidTransition)
	}
	if claimErr != nil {
		return apartmentError(c, claimErr)
	}
	publishApartmentFloor(c, claimed.FloorPlanId)
	return utils.SuccessResponse(c, fiber.StatusOK, claimed)
}

func ApproveClaim(c *fiber.Ctx) error {
	return decideClaim(c, true)
}

func RejectClaim(c *fiber.Ctx) error {
	return decideClaim(c, false)
}

// decideClaim drives the viewer's approve or reject for a PENDING unit and
// mails the claimant.
func decideClaim(c *fiber.Ctx, approve bool) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	db := database.DB
	apartmentId := c.Params("apartmentId")
	before, err := helper.GetApartment(db, apartmentId)
	if err != nil {
		return apartmentError(c, err)
	}

	var (
		updated   *model.Apartment
		updateErr error
	)
	action := floorplan.ActionReject
	if approve {
		action = floorplan.ActionApprove
	}
	_, viewer, err := loadViewer(c, before.FloorPlanId, floorplan.ViewerCallbacks{
		OnStatusUpdate: func(id string, status model.ApartmentStatus) {
			updated, updateErr = helper.SetApartmentStatus(db, id, status, nil)
			helper.ObserveTransition(string(action), updateErr)
		},
	})
	if err != nil {
		return floorPlanNotFound(c, err)
	}
	if !viewer.CanManageSales() {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.CAN_NOT_PROCESS_CLAIMS, fmt.Errorf("account %d cannot process claims", account.ID))
	}
	viewer.Select(apartmentId)
	decided := viewer.Reject
	if approve {
		decided = viewer.Approve
	}
	if !decided() {
		return apartmentError(c, floorplan.ErrInvalidTransition)
	}
	if updateErr != nil {
		return apartmentError(c, updateErr)
	}

	if before.OwnerId != nil {
		notifyClaimant(*before.OwnerId, *updated, approve)
	}
	publishApartmentFloor(c, updated.FloorPlanId)
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

func notifyClaimant(ownerId uint, apartment model.Apartment, approved bool) {
	db := database.DB
	var owner model.Account
	if err := db.First(&owner, ownerId).Error; err != nil {
		return
	}
	var floorPlan model.FloorPlan
	if err := db.Preload("Building.Project").First(&floorPlan, apartment.FloorPlanId).Error; err != nil || floorPlan.Building == nil {
		return
	}
	data := utils.ClaimDecisionData{
		Name:       owner.Name,
		UnitNumber: apartment.UnitNumber,
		Building:   floorPlan.Building.Name,
		Approved:   approved,
		Price:      utils.FormatPrice(apartment.Price),
	}
	if floorPlan.Building.Project != nil {
		data.Project = floorPlan.Building.Project.Name
	}
	utils.SendClaimDecisionEmail(owner.Email, data)
}

// UpdateApartmentStatus is the administrative path: assign to RESERVED,
// release or complete a reservation.
func UpdateApartmentStatus(c *fiber.Ctx) error {
	input, ok := c.Locals("inputApartmentStatus").(model.UpdateApartmentStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	updated, err := helper.SetApartmentStatus(database.DB, c.Params("apartmentId"), input.Status, input.OwnerId)
	helper.ObserveTransition("status:"+string(input.Status), err)
	if err != nil {
		return apartmentError(c, err)
	}
	publishApartmentFloor(c, updated.FloorPlanId)
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

// ApartmentQRCode renders a PNG that links to the owner's unit.
func ApartmentQRCode(c *fiber.Ctx) error {
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	apartment, err := helper.GetApartment(database.DB, c.Params("apartmentId"))
	if err != nil {
		return apartmentError(c, err)
	}
	if apartment.OwnerId == nil || *apartment.OwnerId != account.ID || !floorplan.GrantsAccess(apartment.Status) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}
	png, err := utils.OwnershipQRCode(config.ConfigDefault("PUBLIC_URL", "http://localhost:3000"), apartment.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func publishApartmentFloor(c *fiber.Ctx, floorPlanId uint) {
	floorPlan, err := helper.GetFloorPlanById(database.DB, floorPlanId)
	if err != nil {
		return
	}
	helper.PublishFloorPlan(c.Context(), floorPlanId, floorPlan.Apartments)
}
