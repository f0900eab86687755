package models

import "time"

// PersonalRecord is the best known lift per (user, exercise); there is at most
// one row per pair.
type PersonalRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"uniqueIndex:idx_pr_user_exercise;not null" json:"userId" validate:"required"`
	ExerciseID string    `gorm:"uniqueIndex:idx_pr_user_exercise;not null" json:"exerciseId" validate:"required"`
	Weight     float64   `gorm:"not null" json:"weight" validate:"min=0"`
	Reps       int       `gorm:"not null" json:"reps" validate:"min=1"`
	Date       time.Time `json:"date"`
}
