package helper

import (
	"estate_market/constants"
	"estate_market/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrManagerExists = errors.New(constants.MANAGER_ALREADY_EXISTS)

func SearchAccountByPhone(db *gorm.DB, phone string) (*model.Account, error) {
	var account model.Account
	if err := db.Where("phone = ?", phone).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func GetBuilderManagers(db *gorm.DB, builderId uint) (model.Managers, error) {
	var managers model.Managers
	err := db.Where("builder_id = ?", builderId).Order("id ASC").Find(&managers).Error
	return managers, err
}

// AddManager snapshots the account's name, avatar and phone onto the manager
// record. A buyer account is promoted to MANAGER.
func AddManager(db *gorm.DB, builderId uint, input model.AddManagerInput) (*model.Manager, error) {
	var manager model.Manager
	err := db.Transaction(func(tx *gorm.DB) error {
		var account model.Account
		if err := tx.First(&account, input.AccountId).Error; err != nil {
			return err
		}
		var count int64
		tx.Model(&model.Manager{}).Where("builder_id = ? AND account_id = ?", builderId, account.ID).Count(&count)
		if count > 0 {
			return ErrManagerExists
		}
		manager = model.Manager{
			BuilderId:   builderId,
			AccountId:   account.ID,
			Name:        account.Name,
			AvatarUrl:   account.AvatarUrl,
			Phone:       account.Phone,
			Permissions: input.Permissions,
		}
		if err := tx.Create(&manager).Error; err != nil {
			return errors.Wrap(err, "create manager")
		}
		if account.Role == constants.ROLE_BUYER {
			return errors.Wrap(tx.Model(&account).Update("role", constants.ROLE_MANAGER).Error, "promote account")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

func UpdateManagerPermissions(db *gorm.DB, managerId uint, permissions model.ManagerPermissions) (*model.Manager, error) {
	var manager model.Manager
	if err := db.First(&manager, managerId).Error; err != nil {
		return nil, err
	}
	manager.Permissions = permissions
	if err := db.Model(&manager).Updates(map[string]interface{}{
		"perm_can_chat_community":   permissions.CanChatCommunity,
		"perm_can_process_claims":   permissions.CanProcessClaims,
		"perm_can_support_chat":     permissions.CanSupportChat,
		"perm_can_manage_inventory": permissions.CanManageInventory,
	}).Error; err != nil {
		return nil, errors.Wrap(err, "update manager")
	}
	return &manager, nil
}

// RemoveManager drops the record and demotes the account back to BUYER
// when it no longer manages any builder.
func RemoveManager(db *gorm.DB, manager model.Manager) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&manager).Error; err != nil {
			return errors.Wrap(err, "delete manager")
		}
		var remaining int64
		tx.Model(&model.Manager{}).Where("account_id = ?", manager.AccountId).Count(&remaining)
		if remaining > 0 {
			return nil
		}
		return tx.Model(&model.Account{}).
			Where("id = ? AND role = ?", manager.AccountId, constants.ROLE_MANAGER).
			Update("role", constants.ROLE_BUYER).Error
	})
}
