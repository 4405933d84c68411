package models

import "time"

// LoginTracking records one successful sign-in
type LoginTracking struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address" gorm:"size:64"`
	Device    string    `json:"device" gorm:"size:255"`
	CreatedAt time.Time `json:"timestamp"`
}
