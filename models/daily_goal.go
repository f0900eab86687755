package models

// DailyGoals holds each user's daily targets. Nil fields fall back to the
// configured defaults.
type DailyGoals struct {
	ID             string   `gorm:"primaryKey;size:36" json:"id"`
	UserID         string   `gorm:"uniqueIndex;not null" json:"userId" validate:"required"`
	TargetCalories *int     `json:"targetCalories" validate:"omitempty,min=0"` // e.g. 2300 kcal
	TargetProtein  *float64 `json:"targetProtein" validate:"omitempty,min=0"`  // e.g. 180 g
	TargetWorkouts *int     `json:"targetWorkouts" validate:"omitempty,min=0"` // per week
}
