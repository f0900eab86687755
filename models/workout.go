package models

import "time"

// One training session
type Workout struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	UserID   string    `gorm:"index:idx_workouts_user_date;not null" json:"userId" validate:"required"`
	Name     string    `gorm:"not null" json:"name" validate:"required"`
	Category string    `gorm:"not null" json:"category" validate:"required"`
	Duration *int      `json:"duration" validate:"omitempty,min=0"` // minutes
	Date     time.Time `gorm:"index:idx_workouts_user_date" json:"date"`
	Notes    *string   `json:"notes"`
}

// Each set within a workout
type WorkoutSet struct {
	ID               string   `gorm:"primaryKey;size:36" json:"id"`
	WorkoutID        string   `gorm:"index;not null" json:"workoutId" validate:"required"`
	ExerciseID       string   `gorm:"not null" json:"exerciseId" validate:"required"`
	SetNumber        int      `gorm:"not null" json:"setNumber" validate:"min=1"`
	Reps             *int     `json:"reps" validate:"omitempty,min=0"`
	Weight           *float64 `json:"weight" validate:"omitempty,min=0"`
	IsPersonalRecord bool     `gorm:"default:false" json:"isPersonalRecord"`
}
