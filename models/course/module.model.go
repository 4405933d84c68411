package course

// Module represents a section within a course
type Module struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	Course      Course    `json:"-" gorm:"foreignKey:CourseID"`
	Title       string    `json:"title" gorm:"size:250;not null"`
	Description string    `json:"description" gorm:"type:text"`
	OrderIndex  int       `json:"order" gorm:"default:0"` // client supplied, never renumbered
	Contents    []Content `json:"contents,omitempty" gorm:"foreignKey:ModuleID"`
}

// Content links a module to exactly one item of a fixed kind
type Content struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	ModuleID   uint     `json:"module_id" gorm:"index;not null"`
	Module     Module   `json:"-" gorm:"foreignKey:ModuleID"`
	ItemType   ItemKind `json:"item_type" gorm:"type:varchar(16);not null;index:idx_content_item"`
	ItemID     uint     `json:"item_id" gorm:"not null;index:idx_content_item"`
	OrderIndex int      `json:"order" gorm:"default:0"`
}
