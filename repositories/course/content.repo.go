package courseRepository

import (
	"time"

	courseModels "educa/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func ListModuleContents(db *gorm.DB, moduleID uint) ([]courseModels.Content, error) {
	var contents []courseModels.Content
	err := db.Where("module_id = ?", moduleID).
		Order("order_index asc, id asc").
		Find(&contents).Error
	if err != nil {
		return nil, errors.Wrap(err, "list contents")
	}
	return contents, nil
}

// GetOwnedContent loads a content row whose module's course belongs to ownerID
func GetOwnedContent(db *gorm.DB, id, ownerID uint) (*courseModels.Content, error) {
	var content courseModels.Content
	err := db.Preload("Module").
		Joins("JOIN modules ON modules.id = contents.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("contents.id = ? AND courses.owner_id = ?", id, ownerID).
		First(&content).Error
	if err != nil {
		return nil, notFound(err, "content")
	}
	return &content, nil
}

// GetOwnedItem loads an item of the given kind created by ownerID
func GetOwnedItem(db *gorm.DB, kind courseModels.ItemKind, id, ownerID uint) (courseModels.Item, error) {
	item, err := courseModels.NewItem(kind)
	if err != nil {
		return nil, err
	}
	if err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(item).Error; err != nil {
		return nil, notFound(err, string(kind))
	}
	return item, nil
}

// SaveItem stores the item and, when create is set, links it into the module
// with a fresh order. Both writes share one transaction.
func SaveItem(db *gorm.DB, moduleID uint, item courseModels.Item, create bool) error {
	if item.Base().OwnerID == 0 {
		return errors.New("item has no owner")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return errors.Wrapf(err, "save %s", item.Kind())
		}
		if !create {
			return nil
		}

		order, err := nextOrder(tx, &courseModels.Content{}, "module_id", moduleID)
		if err != nil {
			return err
		}
		content := courseModels.Content{
			ModuleID:   moduleID,
			ItemType:   item.Kind(),
			ItemID:     item.Base().ID,
			OrderIndex: order,
		}
		if err := tx.Omit("Module").Create(&content).Error; err != nil {
			return errors.Wrap(err, "create content")
		}
		return nil
	})
}

// DeleteContent removes the item first and then the content row.
// The removed item is returned so its upload can be cleaned up.
func DeleteContent(db *gorm.DB, content *courseModels.Content) (courseModels.Item, error) {
	var removed courseModels.Item
	err := db.Transaction(func(tx *gorm.DB) error {
		item, err := courseModels.NewItem(content.ItemType)
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", content.ItemID).Limit(1).Find(item)
		if res.Error != nil {
			return errors.Wrap(res.Error, "load item")
		}
		if res.RowsAffected > 0 {
			if err := tx.Delete(item).Error; err != nil {
				return errors.Wrapf(err, "delete %s", content.ItemType)
			}
			removed = item
		}
		if err := tx.Delete(&courseModels.Content{}, content.ID).Error; err != nil {
			return errors.Wrap(err, "delete content")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// LoadItems resolves the items behind contents, keyed by content id
func LoadItems(db *gorm.DB, contents []courseModels.Content) (map[uint]courseModels.Item, error) {
	ids := make(map[courseModels.ItemKind][]uint)
	for _, content := range contents {
		ids[content.ItemType] = append(ids[content.ItemType], content.ItemID)
	}

	byKind := make(map[courseModels.ItemKind]map[uint]courseModels.Item)
	for kind, kindIDs := range ids {
		var (
			items []courseModels.Item
			err   error
		)
		switch kind {
		case courseModels.KindText:
			items, err = findItems[courseModels.Text](db.Where("id IN ?", kindIDs))
		case courseModels.KindFile:
			items, err = findItems[courseModels.File](db.Where("id IN ?", kindIDs))
		case courseModels.KindImage:
			items, err = findItems[courseModels.Image](db.Where("id IN ?", kindIDs))
		case courseModels.KindVideo:
			items, err = findItems[courseModels.Video](db.Where("id IN ?", kindIDs))
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		byKind[kind] = make(map[uint]courseModels.Item, len(items))
		for _, item := range items {
			byKind[kind][item.Base().ID] = item
		}
	}

	resolved := make(map[uint]courseModels.Item, len(contents))
	for _, content := range contents {
		if item, ok := byKind[content.ItemType][content.ItemID]; ok {
			resolved[content.ID] = item
		}
	}
	return resolved, nil
}

// OrphanItems returns items of kind created before cutoff that no content row references
func OrphanItems(db *gorm.DB, kind courseModels.ItemKind, cutoff time.Time) ([]courseModels.Item, error) {
	linked := db.Model(&courseModels.Content{}).Select("item_id").Where("item_type = ?", kind)
	query := db.Where("created_at < ? AND id NOT IN (?)", cutoff, linked)

	switch kind {
	case courseModels.KindText:
		return findItems[courseModels.Text](query)
	case courseModels.KindFile:
		return findItems[courseModels.File](query)
	case courseModels.KindImage:
		return findItems[courseModels.Image](query)
	case courseModels.KindVideo:
		return findItems[courseModels.Video](query)
	}
	return nil, courseModels.ErrUnknownItemKind
}

func DeleteItem(db *gorm.DB, item courseModels.Item) error {
	if err := db.Delete(item).Error; err != nil {
		return errors.Wrapf(err, "delete %s", item.Kind())
	}
	return nil
}

func findItems[T any, PT interface {
	*T
	courseModels.Item
}](query *gorm.DB) ([]courseModels.Item, error) {
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find items")
	}
	items := make([]courseModels.Item, 0, len(rows))
	for i := range rows {
		items = append(items, PT(&rows[i]))
	}
	return items, nil
}
