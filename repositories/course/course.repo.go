package courseRepository

import (
	courseModels "educa/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListSubjects returns every subject ordered by title
func ListSubjects(db *gorm.DB) ([]courseModels.Subject, error) {
	var subjects []courseModels.Subject
	if err := db.Order("title asc").Find(&subjects).Error; err != nil {
		return nil, errors.Wrap(err, "list subjects")
	}
	return subjects, nil
}

func GetSubject(db *gorm.DB, id uint) (*courseModels.Subject, error) {
	var subject courseModels.Subject
	if err := db.First(&subject, id).Error; err != nil {
		return nil, notFound(err, "subject")
	}
	return &subject, nil
}

func modulesByOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_index asc, id asc")
}

// ListCourses returns all courses, newest first, with their modules
func ListCourses(db *gorm.DB) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := db.Preload("Modules", modulesByOrder).
		Order("created_at desc, id desc").
		Find(&courses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	return courses, nil
}

func GetCourse(db *gorm.DB, id uint) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := db.Preload("Modules", modulesByOrder).First(&course, id).Error; err != nil {
		return nil, notFound(err, "course")
	}
	return &course, nil
}

// GetCourseWithContents loads a course with modules and their content rows in order
func GetCourseWithContents(db *gorm.DB, id uint) (*courseModels.Course, error) {
	var course courseModels.Course
	err := db.Preload("Modules", modulesByOrder).
		Preload("Modules.Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc, id asc")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, notFound(err, "course")
	}
	return &course, nil
}

// ListOwnedCourses returns the principal's courses, newest first
func ListOwnedCourses(db *gorm.DB, ownerID uint) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := db.Preload("Subject").
		Where("owner_id = ?", ownerID).
		Order("created_at desc, id desc").
		Find(&courses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list owned courses")
	}
	return courses, nil
}

func GetOwnedCourse(db *gorm.DB, id, ownerID uint) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := db.Preload("Subject").Where("id = ? AND owner_id = ?", id, ownerID).First(&course).Error; err != nil {
		return nil, notFound(err, "course")
	}
	return &course, nil
}

// SlugTaken reports whether another course already uses slug
func SlugTaken(db *gorm.DB, slug string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&courseModels.Course{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check slug")
	}
	return count > 0, nil
}

// SaveCourse inserts or updates a course. OwnerID must already be stamped.
func SaveCourse(db *gorm.DB, course *courseModels.Course) error {
	if course.OwnerID == 0 {
		return errors.New("course has no owner")
	}
	if err := db.Omit("Owner", "Subject", "Modules").Save(course).Error; err != nil {
		return errors.Wrap(err, "save course")
	}
	return nil
}

// DeleteOwnedCourse removes the course with its modules, content rows and student set
func DeleteOwnedCourse(db *gorm.DB, id, ownerID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		course, err := GetOwnedCourse(tx, id, ownerID)
		if err != nil {
			return err
		}

		moduleIDs := tx.Model(&courseModels.Module{}).Select("id").Where("course_id = ?", course.ID)
		if err := tx.Where("module_id IN (?)", moduleIDs).Delete(&courseModels.Content{}).Error; err != nil {
			return errors.Wrap(err, "delete course contents")
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Module{}).Error; err != nil {
			return errors.Wrap(err, "delete course modules")
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.CourseStudent{}).Error; err != nil {
			return errors.Wrap(err, "delete course students")
		}
		if err := tx.Delete(&courseModels.Course{}, course.ID).Error; err != nil {
			return errors.Wrap(err, "delete course")
		}
		return nil
	})
}
