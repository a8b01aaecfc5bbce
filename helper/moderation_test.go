package helper_test

import (
	"testing"

	"estate_market/constants"
	"estate_market/helper"
	"estate_market/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationFlow(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	status, err := helper.GetUserStatus(db, w.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.VERIFICATION_BASIC, status.Verification)
	assert.Equal(t, constants.BUILDER_APP_NONE, status.BuilderApp)

	request, err := helper.SubmitVerification(db, w.buyer, "front", "back")
	require.NoError(t, err)

	_, err = helper.SubmitVerification(db, w.buyer, "front", "back")
	assert.ErrorIs(t, err, helper.ErrRequestPending)

	status, err = helper.GetUserStatus(db, w.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.VERIFICATION_PENDING, status.Verification)

	pending, err := helper.GetPendingVerifications(db)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = helper.ReviewVerification(db, request.ID, true)
	require.NoError(t, err)
	verified, err := helper.IsVerified(db, w.buyer.ID)
	require.NoError(t, err)
	assert.True(t, verified)

	_, err = helper.ReviewVerification(db, request.ID, false)
	assert.ErrorIs(t, err, helper.ErrRequestReviewed)
}

func TestRejectedVerificationCanBeResubmitted(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	request, err := helper.SubmitVerification(db, w.buyer, "front", "back")
	require.NoError(t, err)
	_, err = helper.ReviewVerification(db, request.ID, false)
	require.NoError(t, err)

	status, err := helper.GetUserStatus(db, w.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.VERIFICATION_BASIC, status.Verification)

	_, err = helper.SubmitVerification(db, w.buyer, "front2", "back2")
	assert.NoError(t, err)
}

func TestBuilderApplicationApprovalCreatesCompany(t *testing.T) {
	db := setupTestDB(t)
	w := seedWorld(t, db)

	application, err := helper.SubmitBuilderApplication(db, w.buyer, model.SubmitBuilderApplicationInput{
		CompanyName: "Blue Homes",
		Address:     "1 Main St",
	}, "https://img/license.png")
	require.NoError(t, err)

	reviewed, err := helper.ReviewBuilderApplication(db, application.ID, true)
	require.NoError(t, err)
	assert.Equal(t, constants.REQUEST_APPROVED, reviewed.Status)

	builder, err := helper.GetBuilderByOwner(db, w.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Homes", builder.Name)

	var account model.Account
	require.NoError(t, db.First(&account, w.buyer.ID).Error)
	assert.Equal(t, constants.ROLE_BUILDER, account.Role)

	status, err := helper.GetUserStatus(db, w.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.BUILDER_APP_APPROVED, status.BuilderApp)
}
