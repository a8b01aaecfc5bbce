package model

type IdVerificationRequest struct {
	DTO
	AccountId  uint   `gorm:"index;not null" json:"userId"`
	UserName   string `json:"userName"`
	IdFrontUrl string `gorm:"not null" json:"idFrontUrl"`
	IdBackUrl  string `gorm:"not null" json:"idBackUrl"`
	Status     string `gorm:"not null;default:PENDING;index" json:"status"`
}

type BuilderApplication struct {
	DTO
	AccountId   uint   `gorm:"index;not null" json:"userId"`
	CompanyName string `gorm:"not null" json:"companyName"`
	Address     string `json:"address"`
	LicenseUrl  string `gorm:"not null" json:"licenseUrl"`
	Status      string `gorm:"not null;default:PENDING;index" json:"status"`
}

type SubmitVerificationInput struct {
	IdFront string `json:"idFront" validate:"required"`
	IdBack  string `json:"idBack" validate:"required"`
}

type SubmitBuilderApplicationInput struct {
	CompanyName string `json:"companyName" validate:"required"`
	Address     string `json:"address" validate:"required"`
	License     string `json:"license" validate:"required"`
}

type ReviewInput struct {
	Approved *bool `json:"approved" validate:"required"`
}

type UserStatus struct {
	Verification string `json:"verification"`
	BuilderApp   string `json:"builderApp"`
}
