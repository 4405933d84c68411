package courseRepository

import (
	"sort"

	courseModels "educa/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func sortedKeys(orders map[uint]int) []uint {
	ids := make([]uint, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ReorderModules applies each id→order pair as its own scoped update. Ids
// outside the owner's courses match no row and are skipped without error.
// It returns how many modules were updated.
func ReorderModules(db *gorm.DB, ownerID uint, orders map[uint]int) (int64, error) {
	var updated int64
	for _, id := range sortedKeys(orders) {
		owned := db.Model(&courseModels.Course{}).Select("id").Where("owner_id = ?", ownerID)
		res := db.Model(&courseModels.Module{}).
			Where("id = ? AND course_id IN (?)", id, owned).
			Update("order_index", orders[id])
		if res.Error != nil {
			return updated, errors.Wrapf(res.Error, "reorder module %d", id)
		}
		updated += res.RowsAffected
	}
	return updated, nil
}

// ReorderContents is ReorderModules for content rows, scoped through module and course.
func ReorderContents(db *gorm.DB, ownerID uint, orders map[uint]int) (int64, error) {
	var updated int64
	for _, id := range sortedKeys(orders) {
		owned := db.Model(&courseModels.Module{}).
			Select("modules.id").
			Joins("JOIN courses ON courses.id = modules.course_id").
			Where("courses.owner_id = ?", ownerID)
		res := db.Model(&courseModels.Content{}).
			Where("id = ? AND module_id IN (?)", id, owned).
			Update("order_index", orders[id])
		if res.Error != nil {
			return updated, errors.Wrapf(res.Error, "reorder content %d", id)
		}
		updated += res.RowsAffected
	}
	return updated, nil
}
