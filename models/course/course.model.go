package course

import (
	"time"

	"educa/models"
)

// Subject is a catalog entry courses are filed under
type Subject struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"size:200;not null"`
	Slug  string `json:"slug" gorm:"size:200;uniqueIndex;not null"`
}

// Course is owned by an instructor and holds an ordered set of modules
type Course struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OwnerID   uint        `json:"owner" gorm:"index;not null"`
	Owner     models.User `json:"-" gorm:"foreignKey:OwnerID"`
	SubjectID uint        `json:"subject" gorm:"index;not null"`
	Subject   Subject     `json:"-" gorm:"foreignKey:SubjectID"`
	Title     string      `json:"title" gorm:"size:200;not null"`
	Slug      string      `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Overview  string      `json:"overview" gorm:"type:text"`
	Modules   []Module    `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt time.Time   `json:"created"`
}

// CourseStudent is the join row of a course's student set
type CourseStudent struct {
	CourseID   uint        `gorm:"primaryKey;autoIncrement:false"`
	UserID     uint        `gorm:"primaryKey;autoIncrement:false;index"`
	User       models.User `gorm:"foreignKey:UserID"`
	EnrolledAt time.Time   `gorm:"autoCreateTime"`
}
