package models

import "time"

// A catalog entry from the diet chart (or added by hand)
type MealOption struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	Category        string  `gorm:"index;not null" json:"category" validate:"required"`
	Name            string  `gorm:"not null" json:"name" validate:"required"`
	Description     string  `gorm:"not null" json:"description" validate:"required"`
	Calories        int     `gorm:"not null" json:"calories" validate:"min=0"`
	Protein         float64 `gorm:"not null" json:"protein" validate:"min=0"`
	IsFromDietChart bool    `gorm:"default:true" json:"isFromDietChart"`
}

// Meal types accepted on a LoggedMeal
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// LoggedMeal records a user eating a catalog option or custom food. The
// custom* fields carry the resolved nutrition; nil means unknown.
type LoggedMeal struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"index:idx_logged_meals_user_date;not null" json:"userId" validate:"required"`
	MealOptionID   *string   `gorm:"size:36" json:"mealOptionId"`
	CustomMealName *string   `json:"customMealName" validate:"required_without=MealOptionID"`
	CustomCalories *int      `json:"customCalories" validate:"omitempty,min=0"`
	CustomProtein  *float64  `json:"customProtein" validate:"omitempty,min=0"`
	Date           time.Time `gorm:"index:idx_logged_meals_user_date" json:"date"`
	MealType       string    `gorm:"not null" json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
}
