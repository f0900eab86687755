package models

import "time"

// UserMetrics is one body-composition snapshot. Every measurement is optional
// since scales report different subsets.
type UserMetrics struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	UserID            string    `gorm:"index;not null" json:"userId" validate:"required"`
	Date              time.Time `gorm:"index" json:"date"`
	Weight            *float64  `json:"weight" validate:"omitempty,gt=0"`
	BMI               *float64  `gorm:"column:bmi" json:"bmi" validate:"omitempty,gt=0"`
	BMICategory       string    `gorm:"-" json:"bmiCategory,omitempty"`
	BodyFat           *float64  `json:"bodyFat" validate:"omitempty,min=0,max=100"`
	MuscleRate        *float64  `json:"muscleRate" validate:"omitempty,min=0,max=100"`
	FatFreeBodyWeight *float64  `json:"fatFreeBodyWeight" validate:"omitempty,min=0"`
	SubcutaneousFat   *float64  `json:"subcutaneousFat" validate:"omitempty,min=0"`
	VisceralFat       *float64  `json:"visceralFat" validate:"omitempty,min=0"`
	BodyWater         *float64  `json:"bodyWater" validate:"omitempty,min=0,max=100"`
	SkeletalMuscle    *float64  `json:"skeletalMuscle" validate:"omitempty,min=0"`
	MuscleMass        *float64  `json:"muscleMass" validate:"omitempty,min=0"`
	BoneMass          *float64  `json:"boneMass" validate:"omitempty,min=0"`
	Protein           *float64  `json:"protein" validate:"omitempty,min=0"`
	BMR               *int      `gorm:"column:bmr" json:"bmr" validate:"omitempty,min=0"`
	BodyAge           *int      `json:"bodyAge" validate:"omitempty,min=0"`
}
