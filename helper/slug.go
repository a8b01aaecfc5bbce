package helper

import (
	"estate_market/model"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func GenerateUniqueProjectSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "project"
	}
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Project{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
