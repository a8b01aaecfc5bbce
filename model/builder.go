package model

type BuilderCompany struct {
	DTO
	Name                   string `gorm:"not null" json:"name"`
	Description            string `json:"description"`
	LogoUrl                string `json:"logoUrl"`
	FoundedYear            int    `json:"foundedYear"`
	FinishedProjectsCount  int    `json:"finishedProjectsCount"`
	UnderConstructionCount int    `json:"underConstructionCount"`
	Address                string `json:"address"`
	Phone                  string `json:"phone"`
	Email                  string `json:"email"`
	OwnerAccountId         uint   `gorm:"uniqueIndex;not null" json:"ownerAccountId"`
}
