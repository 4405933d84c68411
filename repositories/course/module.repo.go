package courseRepository

import (
	courseModels "educa/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ModuleChange is one validated row of the module set editor.
// ID zero creates a module; Delete removes an existing one.
type ModuleChange struct {
	ID          uint
	Title       string
	Description string
	Delete      bool
}

func ListCourseModules(db *gorm.DB, courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	if err := modulesByOrder(db).Where("course_id = ?", courseID).Find(&modules).Error; err != nil {
		return nil, errors.Wrap(err, "list modules")
	}
	return modules, nil
}

// GetOwnedModule loads a module whose course belongs to ownerID
func GetOwnedModule(db *gorm.DB, id, ownerID uint) (*courseModels.Module, error) {
	var module courseModels.Module
	err := db.Preload("Course").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("modules.id = ? AND courses.owner_id = ?", id, ownerID).
		First(&module).Error
	if err != nil {
		return nil, notFound(err, "module")
	}
	return &module, nil
}

// nextOrder returns 0 for an empty parent and max(order)+1 otherwise
func nextOrder(db *gorm.DB, model interface{}, column string, parentID uint) (int, error) {
	var row struct {
		Total int64
		Top   int
	}
	err := db.Model(model).
		Select("COUNT(*) AS total, COALESCE(MAX(order_index), 0) AS top").
		Where(column+" = ?", parentID).
		Scan(&row).Error
	if err != nil {
		return 0, errors.Wrap(err, "next order")
	}
	if row.Total == 0 {
		return 0, nil
	}
	return row.Top + 1, nil
}

// ApplyModuleSet writes every change in one transaction; any failure rolls all of them back
func ApplyModuleSet(db *gorm.DB, courseID uint, changes []ModuleChange) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, change := range changes {
			switch {
			case change.Delete && change.ID != 0:
				if err := tx.Where("module_id = ?", change.ID).Delete(&courseModels.Content{}).Error; err != nil {
					return errors.Wrap(err, "delete module contents")
				}
				if err := tx.Where("id = ? AND course_id = ?", change.ID, courseID).Delete(&courseModels.Module{}).Error; err != nil {
					return errors.Wrap(err, "delete module")
				}
			case change.Delete:
				// a blank row marked for deletion
			case change.ID != 0:
				err := tx.Model(&courseModels.Module{}).
					Where("id = ? AND course_id = ?", change.ID, courseID).
					Updates(map[string]interface{}{"title": change.Title, "description": change.Description}).Error
				if err != nil {
					return errors.Wrap(err, "update module")
				}
			default:
				order, err := nextOrder(tx, &courseModels.Module{}, "course_id", courseID)
				if err != nil {
					return err
				}
				module := courseModels.Module{
					CourseID:    courseID,
					Title:       change.Title,
					Description: change.Description,
					OrderIndex:  order,
				}
				if err := tx.Omit("Course", "Contents").Create(&module).Error; err != nil {
					return errors.Wrap(err, "create module")
				}
			}
		}
		return nil
	})
}

// FirstModuleIDs maps each course to its first module by order
func FirstModuleIDs(db *gorm.DB, courseIDs []uint) (map[uint]uint, error) {
	first := make(map[uint]uint, len(courseIDs))
	if len(courseIDs) == 0 {
		return first, nil
	}

	var modules []courseModels.Module
	err := db.Select("id", "course_id", "order_index").
		Where("course_id IN ?", courseIDs).
		Order("course_id asc, order_index asc, id asc").
		Find(&modules).Error
	if err != nil {
		return nil, errors.Wrap(err, "first modules")
	}
	for _, module := range modules {
		if _, ok := first[module.CourseID]; !ok {
			first[module.CourseID] = module.ID
		}
	}
	return first, nil
}
