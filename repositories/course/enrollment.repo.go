package courseRepository

import (
	"educa/models"
	courseModels "educa/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Enroll adds the user to the course's student set. Enrolling twice is a
// no-op; created reports whether a new row was written.
func Enroll(db *gorm.DB, courseID, userID uint) (created bool, err error) {
	if _, err := GetCourse(db, courseID); err != nil {
		return false, err
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User").
		Create(&courseModels.CourseStudent{CourseID: courseID, UserID: userID})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "enroll")
	}
	return res.RowsAffected > 0, nil
}

// ListStudents returns the users enrolled in a course
func ListStudents(db *gorm.DB, courseID uint) ([]models.User, error) {
	var students []models.User
	err := db.Joins("JOIN course_students ON course_students.user_id = users.id").
		Where("course_students.course_id = ?", courseID).
		Order("users.id asc").
		Find(&students).Error
	if err != nil {
		return nil, errors.Wrap(err, "list students")
	}
	return students, nil
}

// ListEnrolledCourses returns the courses a student is enrolled in
func ListEnrolledCourses(db *gorm.DB, userID uint) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := db.Preload("Modules", modulesByOrder).
		Joins("JOIN course_students ON course_students.course_id = courses.id").
		Where("course_students.user_id = ?", userID).
		Order("courses.created_at desc").
		Find(&courses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list enrolled courses")
	}
	return courses, nil
}
