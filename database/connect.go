package database

import (
	"estate_market/config"
	"estate_market/model"
	"fmt"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	if config.Config("DB_DRIVER") == "sqlite" {
		DB, err = OpenSQLite(config.ConfigDefault("SQLITE_PATH", "estate_market.db"))
		if err != nil {
			panic("failed to open sqlite database")
		}
		fmt.Println("Connection Opened to SQLite")
		return
	}

	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
}

// OpenSQLite opens a single-connection sqlite database. Used for local
// development and tests.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Account{},
		&model.BuilderCompany{},
		&model.Project{},
		&model.Building{},
		&model.FloorPlan{},
		&model.Apartment{},
		&model.Manager{},
		&model.IdVerificationRequest{},
		&model.BuilderApplication{},
		&model.SupportChat{},
		&model.ChatMessage{},
	)
}
