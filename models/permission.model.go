package models

import "time"

// Capability is a named grant checked before a course management action runs.
type Capability string

const (
	ViewCourse   Capability = "view_course"
	AddCourse    Capability = "add_course"
	ChangeCourse Capability = "change_course"
	DeleteCourse Capability = "delete_course"
)

// CourseCapabilities are granted to every instructor on signup.
var CourseCapabilities = []Capability{ViewCourse, AddCourse, ChangeCourse, DeleteCourse}

type Permission struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_permission"`
	User       User `gorm:"foreignKey:UserID"`
	Role       string
	Permission Capability `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_permission"`
	CreatedAt  time.Time
}
