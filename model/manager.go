package model

type ManagerPermissions struct {
	CanChatCommunity   bool `json:"canChatCommunity"`
	CanProcessClaims   bool `json:"canProcessClaims"`
	CanSupportChat     bool `json:"canSupportChat"`
	CanManageInventory bool `json:"canManageInventory"`
}

type Manager struct {
	DTO
	BuilderId   uint               `gorm:"not null;uniqueIndex:idx_builder_account" json:"builderId"`
	AccountId   uint               `gorm:"not null;uniqueIndex:idx_builder_account" json:"userId"`
	Name        string             `json:"name"`
	AvatarUrl   string             `json:"avatarUrl"`
	Phone       string             `json:"phone"`
	Permissions ManagerPermissions `gorm:"embedded;embeddedPrefix:perm_" json:"permissions"`
}

type Managers []Manager

type AddManagerInput struct {
	AccountId   uint               `json:"userId" validate:"required"`
	Permissions ManagerPermissions `json:"permissions"`
}

type UpdateManagerInput struct {
	Permissions ManagerPermissions `json:"permissions"`
}
