package helper_test

import (
	"testing"

	"estate_market/constants"
	"estate_market/database"
	"estate_market/geometry"
	"estate_market/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type world struct {
	owner    model.Account
	buyer    model.Account
	builder  model.BuilderCompany
	project  model.Project
	building model.Building
}

func createAccount(t *testing.T, db *gorm.DB, username, role string) model.Account {
	account := model.Account{
		Username: username,
		Password: "x",
		Name:     username,
		Phone:    "09" + username,
		Email:    username + "@example.com",
		Role:     role,
		Status:   constants.ACCOUNT_ACTIVE,
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

func seedWorld(t *testing.T, db *gorm.DB) world {
	w := world{
		owner: createAccount(t, db, "owner", constants.ROLE_BUILDER),
		buyer: createAccount(t, db, "buyer", constants.ROLE_BUYER),
	}
	w.builder = model.BuilderCompany{Name: "Skyline Builders", OwnerAccountId: w.owner.ID}
	require.NoError(t, db.Create(&w.builder).Error)
	w.project = model.Project{Name: "Riverside", Slug: "riverside", Location: "Da Nang", BuilderId: w.builder.ID}
	require.NoError(t, db.Create(&w.project).Error)
	w.building = model.Building{ProjectId: w.project.ID, Name: "Tower A", TotalFloors: 10}
	require.NoError(t, db.Create(&w.building).Error)
	return w
}

func square(x, y, size float64) []geometry.Point {
	return []geometry.Point{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func unit(id, number string, shape []geometry.Point) model.Apartment {
	return model.Apartment{ID: id, UnitNumber: number, Rooms: 2, AreaSqFt: 850, Price: 250000, Shape: shape}
}

func verify(t *testing.T, db *gorm.DB, account model.Account) {
	request := model.IdVerificationRequest{AccountId: account.ID, IdFrontUrl: "f", IdBackUrl: "b", Status: constants.REQUEST_APPROVED}
	require.NoError(t, db.Create(&request).Error)
}
