package helper

import (
	"estate_market/constants"
	"estate_market/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Capabilities is what an account may do inside one builder company.
type Capabilities struct {
	BuilderId          uint           `json:"builderId"`
	IsOwner            bool           `json:"isOwner"`
	Manager            *model.Manager `json:"manager,omitempty"`
	CanChatCommunity   bool           `json:"canChatCommunity"`
	CanProcessClaims   bool           `json:"canProcessClaims"`
	CanSupportChat     bool           `json:"canSupportChat"`
	CanManageInventory bool           `json:"canManageInventory"`
}

// ResolveCapabilities grants everything to the owning builder and the
// stored permission flags to a manager. Anyone else gets nothing.
func ResolveCapabilities(db *gorm.DB, account model.Account, builderId uint) (Capabilities, error) {
	caps := Capabilities{BuilderId: builderId}

	var builder model.BuilderCompany
	if err := db.First(&builder, builderId).Error; err != nil {
		return caps, errors.Wrap(err, "load builder")
	}
	if builder.OwnerAccountId == account.ID {
		caps.IsOwner = true
		caps.CanChatCommunity = true
		caps.CanProcessClaims = true
		caps.CanSupportChat = true
		caps.CanManageInventory = true
		return caps, nil
	}

	var manager model.Manager
	err := db.Where("builder_id = ? AND account_id = ?", builderId, account.ID).First(&manager).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return caps, nil
	}
	if err != nil {
		return caps, errors.Wrap(err, "load manager")
	}
	caps.Manager = &manager
	caps.CanChatCommunity = manager.Permissions.CanChatCommunity
	caps.CanProcessClaims = manager.Permissions.CanProcessClaims
	caps.CanSupportChat = manager.Permissions.CanSupportChat
	caps.CanManageInventory = manager.Permissions.CanManageInventory
	return caps, nil
}

func (c Capabilities) Any() bool {
	return c.IsOwner || c.Manager != nil
}

func GetBuilderByOwner(db *gorm.DB, accountId uint) (*model.BuilderCompany, error) {
	var builder model.BuilderCompany
	if err := db.Where("owner_account_id = ?", accountId).First(&builder).Error; err != nil {
		return nil, err
	}
	return &builder, nil
}

func BuilderIdForProject(db *gorm.DB, projectId uint) (uint, error) {
	var project model.Project
	if err := db.Select("id", "builder_id").First(&project, projectId).Error; err != nil {
		return 0, err
	}
	return project.BuilderId, nil
}

func BuilderIdForBuilding(db *gorm.DB, buildingId uint) (uint, error) {
	var builderId uint
	err := db.Table("buildings").
		Select("projects.builder_id").
		Joins("JOIN projects ON projects.id = buildings.project_id").
		Where("buildings.id = ?", buildingId).
		Scan(&builderId).Error
	if err != nil {
		return 0, err
	}
	if builderId == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return builderId, nil
}

func BuilderIdForFloorPlan(db *gorm.DB, floorPlanId uint) (uint, error) {
	var floorPlan model.FloorPlan
	if err := db.Select("id", "building_id").First(&floorPlan, floorPlanId).Error; err != nil {
		return 0, err
	}
	return BuilderIdForBuilding(db, floorPlan.BuildingId)
}

// IsStaffRole covers the roles that moderate the platform.
func IsStaffRole(role string) bool {
	return role == constants.ROLE_ADMIN || role == constants.ROLE_MODERATOR
}
