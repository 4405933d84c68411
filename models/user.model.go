package models

import "time"

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Role      string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Password  string     `json:"-" gorm:"not null"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
