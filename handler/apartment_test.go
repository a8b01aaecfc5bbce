package handler_test

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"estate_market/constants"
	"estate_market/database"
	"estate_market/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var proofImage = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"))

func TestClaimThenApprove(t *testing.T) {
	f := setup(t)
	f.seedFloor(t)
	buyerToken := token(t, f.buyer)

	status, env := f.do(t, http.MethodPost, "/api/v1/apartment/a1/claim", buyerToken, map[string]string{"proofImage": proofImage})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, constants.NEED_VERIFICATION, env.Message)

	require.NoError(t, database.DB.Create(&model.IdVerificationRequest{AccountId: f.buyer.ID, IdFrontUrl: "f", IdBackUrl: "b", Status: constants.REQUEST_APPROVED}).Error)

	status, env = f.do(t, http.MethodPost, "/api/v1/apartment/a1/claim", buyerToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, constants.PROOF_IMAGE_REQUIRED, env.Message)

	status, env = f.do(t, http.MethodPost, "/api/v1/apartment/a1/claim", buyerToken, map[string]string{"proofImage": proofImage})
	require.Equal(t, http.StatusOK, status, env.Message)
	claimed := decode[model.Apartment](t, env)
	assert.Equal(t, model.StatusPending, claimed.Status)
	require.NotNil(t, claimed.OwnerId)
	assert.Equal(t, f.buyer.ID, *claimed.OwnerId)

	status, _ = f.do(t, http.MethodPost, "/api/v1/apartment/a1/claim", buyerToken, map[string]string{"proofImage": proofImage})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = f.do(t, http.MethodPost, "/api/v1/apartment/a1/approve", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = f.do(t, http.MethodPost, "/api/v1/apartment/a1/approve", token(t, f.owner), nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, model.StatusSold, decode[model.Apartment](t, env).Status)

	status, env = f.do(t, http.MethodGet, "/api/v1/account/me/apartments", buyerToken, nil)
	require.Equal(t, http.StatusOK, status)
	owned := decode[[]model.OwnedApartment](t, env)
	require.Len(t, owned, 1)
	assert.Equal(t, "101", owned[0].Apartment.UnitNumber)

	status, env = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/project/%d/access", f.project.ID), buyerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode[map[string]bool](t, env)["hasAccess"])
}

func TestRejectFreesUnit(t *testing.T) {
	f := setup(t)
	f.seedFloor(t)
	require.NoError(t, database.DB.Create(&model.IdVerificationRequest{AccountId: f.buyer.ID, IdFrontUrl: "f", IdBackUrl: "b", Status: constants.REQUEST_APPROVED}).Error)

	status, _ := f.do(t, http.MethodPost, "/api/v1/apartment/a2/claim", token(t, f.buyer), map[string]string{"proofImage": proofImage})
	require.Equal(t, http.StatusOK, status)

	status, env := f.do(t, http.MethodPost, "/api/v1/apartment/a2/reject", token(t, f.owner), nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	rejected := decode[model.Apartment](t, env)
	assert.Equal(t, model.StatusAvailable, rejected.Status)
	assert.Nil(t, rejected.OwnerId)
	assert.Nil(t, rejected.ProofImageUrl)

	// nothing left to decide
	status, _ = f.do(t, http.MethodPost, "/api/v1/apartment/a2/reject", token(t, f.owner), nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestManagerWithClaimPermissionCanApprove(t *testing.T) {
	f := setup(t)
	f.seedFloor(t)
	require.NoError(t, database.DB.Create(&model.IdVerificationRequest{AccountId: f.buyer.ID, IdFrontUrl: "f", IdBackUrl: "b", Status: constants.REQUEST_APPROVED}).Error)
	sales := model.Account{Username: "sales", Password: "x", Name: "Sales", Phone: "0900000003", Role: constants.ROLE_BUYER, Status: constants.ACCOUNT_ACTIVE}
	require.NoError(t, database.DB.Create(&sales).Error)

	status, env := f.do(t, http.MethodPost, "/api/v1/builder/managers", token(t, f.owner), map[string]any{
		"userId":      sales.ID,
		"permissions": map[string]bool{"canProcessClaims": true},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, _ = f.do(t, http.MethodPost, "/api/v1/apartment/a1/claim", token(t, f.buyer), map[string]string{"proofImage": proofImage})
	require.Equal(t, http.StatusOK, status)

	status, env = f.do(t, http.MethodPost, "/api/v1/apartment/a1/approve", token(t, sales), nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, model.StatusSold, decode[model.Apartment](t, env).Status)

	// the same manager cannot edit inventory
	status, _ = f.do(t, http.MethodPost, "/api/v1/editor", token(t, sales), map[string]any{"buildingId": f.building.ID, "floorLevel": 1})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminAssignsReservation(t *testing.T) {
	f := setup(t)
	f.seedFloor(t)
	admin := model.Account{Username: "admin", Password: "x", Name: "Admin", Role: constants.ROLE_ADMIN, Status: constants.ACCOUNT_ACTIVE}
	require.NoError(t, database.DB.Create(&admin).Error)

	status, _ := f.do(t, http.MethodPut, "/api/v1/apartment/a1/status", token(t, f.owner), map[string]any{"status": "RESERVED", "ownerId": f.buyer.ID})
	assert.Equal(t, http.StatusForbidden, status)

	status, env := f.do(t, http.MethodPut, "/api/v1/apartment/a1/status", token(t, admin), map[string]any{"status": "RESERVED", "ownerId": f.buyer.ID})
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, model.StatusReserved, decode[model.Apartment](t, env).Status)

	status, env = f.do(t, http.MethodPut, "/api/v1/apartment/a1/status", token(t, admin), map[string]any{"status": "PENDING"})
	assert.Equal(t, http.StatusConflict, status, env.Message)

	status, _ = f.do(t, http.MethodGet, "/api/v1/apartment/a1/qr", token(t, f.buyer), nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodGet, "/api/v1/apartment/a1/qr", token(t, f.owner), nil)
	assert.Equal(t, http.StatusForbidden, status)
}
