package helper

import (
	"estate_market/constants"
	"estate_market/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetSystemStats counts platform totals. online is the number of open
// realtime connections at the time of the call.
func GetSystemStats(db *gorm.DB, online int64) (model.SystemStats, error) {
	stats := model.SystemStats{ActiveUsersOnline: online, ApartmentsByStatus: map[model.ApartmentStatus]int64{}}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&model.Account{})},
		{&stats.TotalBuilders, db.Model(&model.BuilderCompany{})},
		{&stats.TotalProjects, db.Model(&model.Project{})},
		{&stats.TotalBuildings, db.Model(&model.Building{})},
		{&stats.VerifiedUsersCount, db.Model(&model.IdVerificationRequest{}).Distinct("account_id").Where("status = ?", constants.REQUEST_APPROVED)},
		{&stats.PendingVerifications, db.Model(&model.IdVerificationRequest{}).Where("status = ?", constants.REQUEST_PENDING)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return stats, errors.Wrap(err, "count stats")
		}
	}

	var rows []struct {
		Status model.ApartmentStatus
		Total  int64
	}
	if err := db.Model(&model.Apartment{}).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return stats, errors.Wrap(err, "count apartments")
	}
	for _, s := range model.ApartmentStatuses {
		stats.ApartmentsByStatus[s] = 0
	}
	for _, r := range rows {
		stats.ApartmentsByStatus[r.Status] = r.Total
	}
	return stats, nil
}
