package helper

import (
	"errors"
	"estate_market/config"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/model"
	"estate_market/utils"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func JwtSecret() []byte {
	return []byte(config.ConfigDefault("JWT_SECRET", "estate-market-dev-secret"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByUsername(db *gorm.DB, u string) (*model.Account, error) {
	var account model.Account
	if err := db.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["accountId"] = tokenClaim.AccountId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(config.ConfigDuration("ACCESS_TOKEN_TTL", 24*time.Hour)).Unix()

	return token.SignedString(JwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret(), nil
	})
}

// GetInfoAccountFromToken loads the caller's account from the token stored
// by middleware.Protected. When it returns false the error response has
// already been written.
func GetInfoAccountFromToken(c *fiber.Ctx) (model.Account, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("no token"))
		return model.Account{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("invalid claims"))
		return model.Account{}, false
	}
	rawId, ok := claims["accountId"].(float64)
	if !ok {
		utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("invalid claims"))
		return model.Account{}, false
	}
	accountId := uint(rawId)

	var account model.Account
	if err := database.DB.First(&account, accountId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Account not found: id=%d", accountId)
			utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, err)
		} else {
			log.Printf("Database query error for account: id=%d, error=%v", accountId, err)
			utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return model.Account{}, false
	}
	if !account.IsActive() {
		utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("account blocked"))
		return model.Account{}, false
	}
	return account, true
}

// OptionalAccount returns the caller when a valid token was sent.
func OptionalAccount(c *fiber.Ctx) *model.Account {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	rawId, ok := claims["accountId"].(float64)
	if !ok {
		return nil
	}
	var account model.Account
	if err := database.DB.First(&account, uint(rawId)).Error; err != nil {
		return nil
	}
	return &account
}
