package database

import (
	"estate_market/config"
	"estate_market/constants"
	"estate_market/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	password := config.ConfigDefault("ADMIN_PASSWORD", "admin123456")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}
	accounts := []model.Account{
		{Username: config.ConfigDefault("ADMIN_USERNAME", "admin"), Password: string(bytes), Name: "Administrator", Role: constants.ROLE_ADMIN, Status: constants.ACCOUNT_ACTIVE},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}
}
