package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate_market/constants"
	"estate_market/database"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	app      *fiber.App
	owner    model.Account
	buyer    model.Account
	builder  model.BuilderCompany
	project  model.Project
	building model.Building
}

func setup(t *testing.T) *fixture {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	helper.Realtime = helper.NewHub(nil)

	f := &fixture{app: fiber.New()}
	router.SetupRoutes(f.app)

	f.owner = model.Account{Username: "owner", Password: "x", Name: "Owner", Phone: "0900000001", Role: constants.ROLE_BUILDER, Status: constants.ACCOUNT_ACTIVE}
	f.buyer = model.Account{Username: "buyer", Password: "x", Name: "Buyer", Phone: "0900000002", Role: constants.ROLE_BUYER, Status: constants.ACCOUNT_ACTIVE}
	require.NoError(t, db.Create(&f.owner).Error)
	require.NoError(t, db.Create(&f.buyer).Error)
	f.builder = model.BuilderCompany{Name: "Skyline", OwnerAccountId: f.owner.ID}
	require.NoError(t, db.Create(&f.builder).Error)
	f.project = model.Project{Name: "Riverside", Slug: "riverside", BuilderId: f.builder.ID}
	require.NoError(t, db.Create(&f.project).Error)
	f.building = model.Building{ProjectId: f.project.ID, Name: "Tower A", TotalFloors: 5}
	require.NoError(t, db.Create(&f.building).Error)
	return f
}

func token(t *testing.T, account model.Account) string {
	tok, err := helper.GenerateAccessToken(model.TokenClaim{AccountId: account.ID, Username: account.Username, Role: account.Role})
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(t *testing.T, method, path, tok string, body any) (int, envelope) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func shape(x, y float64) []map[string]float64 {
	return []map[string]float64{{"x": x, "y": y}, {"x": x + 10, "y": y}, {"x": x + 10, "y": y + 10}, {"x": x, "y": y + 10}}
}

// seedFloor stores a floor plan with two AVAILABLE units through the API.
func (f *fixture) seedFloor(t *testing.T) model.FloorPlan {
	status, env := f.do(t, http.MethodPut, "/api/v1/floor-plan", token(t, f.owner), map[string]any{
		"buildingId": f.building.ID,
		"floorLevel": 1,
		"imageUrl":   "https://img/plan.png",
		"apartments": []map[string]any{
			{"id": "a1", "unitNumber": "101", "rooms": 2, "areaSqFt": 800, "price": 1250000, "shape": shape(0, 0)},
			{"id": "a2", "unitNumber": "102", "rooms": 3, "areaSqFt": 1000, "price": 1500000, "shape": shape(40, 40)},
		},
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	return decode[model.FloorPlan](t, env)
}
