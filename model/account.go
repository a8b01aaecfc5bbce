package model

type Account struct {
	DTO
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	Name      string `json:"name"`
	Phone     string `gorm:"index" json:"phone"`
	Email     string `json:"email"`
	AvatarUrl string `json:"avatarUrl"`
	Role      string `gorm:"not null;default:BUYER" json:"role"`
	Status    string `gorm:"not null;default:ACTIVE" json:"status"`
	Language  string `gorm:"default:en" json:"language"`
}

type Accounts []Account

func (a *Account) IsActive() bool {
	return a.Status != "BLOCKED"
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,min=9"`
	Email    string `json:"email" validate:"omitempty,email"`
	Language string `json:"language" validate:"omitempty,oneof=en ru vi"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	IsVerified bool   `json:"isVerified"`
	JoinedDate int64  `json:"joinedDate"`
}

type FilterAccount struct {
	Pagination
	SearchKey string `query:"searchKey"`
	Role      string `query:"role"`
	Status    string `query:"status"`
}

type UpdateAccountStatusInput struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE BLOCKED"`
}
