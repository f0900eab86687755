package models

import "time"

type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Username       string    `gorm:"not null" json:"username" validate:"required"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	ProfilePicture *string   `json:"profilePicture"`
	CurrentStreak  int       `gorm:"default:0" json:"currentStreak" validate:"min=0"`
	CreatedAt      time.Time `json:"createdAt"`
}
