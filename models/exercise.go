package models

type Exercise struct {
	ID           string   `gorm:"primaryKey;size:36" json:"id"`
	Name         string   `gorm:"not null" json:"name" validate:"required"`
	Category     string   `gorm:"index;not null" json:"category" validate:"required"` // "push" | "pull" | "legs"
	MuscleGroups []string `gorm:"serializer:json" json:"muscleGroups"`
	Equipment    *string  `json:"equipment"`
}
