package helper

import (
	"estate_market/constants"
	"estate_market/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRequestPending  = errors.New(constants.REQUEST_ALREADY_PENDING)
	ErrRequestReviewed = errors.New("request was already reviewed")
)

func SubmitVerification(db *gorm.DB, account model.Account, frontUrl, backUrl string) (*model.IdVerificationRequest, error) {
	var count int64
	db.Model(&model.IdVerificationRequest{}).Where("account_id = ? AND status IN ?", account.ID, []string{constants.REQUEST_PENDING, constants.REQUEST_APPROVED}).Count(&count)
	if count > 0 {
		return nil, ErrRequestPending
	}
	request := model.IdVerificationRequest{
		AccountId:  account.ID,
		UserName:   account.Name,
		IdFrontUrl: frontUrl,
		IdBackUrl:  backUrl,
		Status:     constants.REQUEST_PENDING,
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, errors.Wrap(err, "create verification request")
	}
	return &request, nil
}

func SubmitBuilderApplication(db *gorm.DB, account model.Account, input model.SubmitBuilderApplicationInput, licenseUrl string) (*model.BuilderApplication, error) {
	var count int64
	db.Model(&model.BuilderApplication{}).Where("account_id = ? AND status IN ?", account.ID, []string{constants.REQUEST_PENDING, constants.REQUEST_APPROVED}).Count(&count)
	if count > 0 {
		return nil, ErrRequestPending
	}
	application := model.BuilderApplication{
		AccountId:   account.ID,
		CompanyName: input.CompanyName,
		Address:     input.Address,
		LicenseUrl:  licenseUrl,
		Status:      constants.REQUEST_PENDING,
	}
	if err := db.Create(&application).Error; err != nil {
		return nil, errors.Wrap(err, "create builder application")
	}
	return &application, nil
}

func GetPendingVerifications(db *gorm.DB) ([]model.IdVerificationRequest, error) {
	var requests []model.IdVerificationRequest
	err := db.Where("status = ?", constants.REQUEST_PENDING).Order("created_at ASC").Find(&requests).Error
	return requests, err
}

func GetPendingBuilderApplications(db *gorm.DB) ([]model.BuilderApplication, error) {
	var applications []model.BuilderApplication
	err := db.Where("status = ?", constants.REQUEST_PENDING).Order("created_at ASC").Find(&applications).Error
	return applications, err
}

func reviewStatus(approved bool) string {
	if approved {
		return constants.REQUEST_APPROVED
	}
	return constants.REQUEST_REJECTED
}

func ReviewVerification(db *gorm.DB, requestId uint, approved bool) (*model.IdVerificationRequest, error) {
	var request model.IdVerificationRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, requestId).Error; err != nil {
			return err
		}
		if request.Status != constants.REQUEST_PENDING {
			return ErrRequestReviewed
		}
		request.Status = reviewStatus(approved)
		return tx.Model(&request).Update("status", request.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ReviewBuilderApplication approves or rejects an application. Approval
// creates the builder company and promotes the applicant to BUILDER.
func ReviewBuilderApplication(db *gorm.DB, applicationId uint, approved bool) (*model.BuilderApplication, error) {
	var application model.BuilderApplication
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&application, applicationId).Error; err != nil {
			return err
		}
		if application.Status != constants.REQUEST_PENDING {
			return ErrRequestReviewed
		}
		application.Status = reviewStatus(approved)
		if err := tx.Model(&application).Update("status", application.Status).Error; err != nil {
			return errors.Wrap(err, "update application")
		}
		if !approved {
			return nil
		}

		var account model.Account
		if err := tx.First(&account, application.AccountId).Error; err != nil {
			return errors.Wrap(err, "load applicant")
		}
		builder := model.BuilderCompany{
			Name:           application.CompanyName,
			Address:        application.Address,
			Phone:          account.Phone,
			Email:          account.Email,
			OwnerAccountId: account.ID,
		}
		if err := tx.Create(&builder).Error; err != nil {
			return errors.Wrap(err, "create builder company")
		}
		return errors.Wrap(tx.Model(&account).Update("role", constants.ROLE_BUILDER).Error, "promote account")
	})
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// GetUserStatus derives the verification badge and builder application
// state from the latest request of each kind.
func GetUserStatus(db *gorm.DB, accountId uint) (model.UserStatus, error) {
	status := model.UserStatus{Verification: constants.VERIFICATION_BASIC, BuilderApp: constants.BUILDER_APP_NONE}

	var request model.IdVerificationRequest
	err := db.Where("account_id = ?", accountId).Order("id DESC").First(&request).Error
	switch {
	case err == nil:
		switch request.Status {
		case constants.REQUEST_APPROVED:
			status.Verification = constants.VERIFICATION_VERIFIED
		case constants.REQUEST_PENDING:
			status.Verification = constants.VERIFICATION_PENDING
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return status, err
	}

	var application model.BuilderApplication
	err = db.Where("account_id = ?", accountId).Order("id DESC").First(&application).Error
	switch {
	case err == nil:
		switch application.Status {
		case constants.REQUEST_APPROVED:
			status.BuilderApp = constants.BUILDER_APP_APPROVED
		case constants.REQUEST_PENDING:
			status.BuilderApp = constants.BUILDER_APP_PENDING
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return status, err
	}
	return status, nil
}

// IsVerified is true once an ID verification request has been approved.
func IsVerified(db *gorm.DB, accountId uint) (bool, error) {
	var count int64
	err := db.Model(&model.IdVerificationRequest{}).
		Where("account_id = ? AND status = ?", accountId, constants.REQUEST_APPROVED).
		Count(&count).Error
	return count > 0, err
}
