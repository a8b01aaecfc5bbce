package handler

import (
	"encoding/json"
	"estate_market/constants"
	"estate_market/database"
	"estate_market/helper"
	"estate_market/model"
	"estate_market/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetSystemStats serves the admin dashboard. The scheduled Redis snapshot
// is used when present; ?fresh=true recounts.
func GetSystemStats(c *fiber.Ctx) error {
	online := helper.Realtime.Count()

	if database.Redis != nil && !c.QueryBool("fresh") {
		payload, err := database.Redis.Get(c.Context(), helper.StatsSnapshotKey).Bytes()
		if err == nil {
			var stats model.SystemStats
			if err := json.Unmarshal(payload, &stats); err == nil {
				stats.ActiveUsersOnline = online
				return utils.SuccessResponse(c, fiber.StatusOK, stats)
			}
			log.Printf("stats snapshot unreadable: %v", err)
		}
	}

	stats, err := helper.GetSystemStats(database.DB, online)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
