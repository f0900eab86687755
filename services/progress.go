package services

import (
	"time"

	"fittrack/models"
	"fittrack/utils"
)

// GoalDefaults are the targets used when a user has no goal row, or when a
// field of it is unset.
type GoalDefaults struct {
	TargetCalories int
	TargetProtein  float64
	TargetWorkouts int
}

// DefaultGoals is the built-in target table.
func DefaultGoals() GoalDefaults {
	return GoalDefaults{TargetCalories: 2300, TargetProtein: 180, TargetWorkouts: 6}
}

// NutrientProgress is consumption against one daily target.
type NutrientProgress struct {
	Consumed   float64 `json:"consumed"`
	Target     float64 `json:"target"`
	Percentage float64 `json:"percentage"`
}

type ProgressSummary struct {
	Calories NutrientProgress `json:"calories"`
	Protein  NutrientProgress `json:"protein"`
}

type WorkoutProgress struct {
	Completed  int     `json:"completed"`
	Target     int     `json:"target"`
	Percentage float64 `json:"percentage"`
}

// percent returns consumed/target as a percentage clamped to [0, 100].
// A non-positive target yields 0.
func percent(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := consumed / target * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// resolveTargets merges goals over defaults field by field.
func resolveTargets(goals *models.DailyGoals, defaults GoalDefaults) (calories, protein float64, workouts int) {
	calories = float64(defaults.TargetCalories)
	protein = defaults.TargetProtein
	workouts = defaults.TargetWorkouts
	if goals == nil {
		return
	}
	if goals.TargetCalories != nil {
		calories = float64(*goals.TargetCalories)
	}
	if goals.TargetProtein != nil {
		protein = *goals.TargetProtein
	}
	if goals.TargetWorkouts != nil {
		workouts = *goals.TargetWorkouts
	}
	return
}

// ComputeProgress sums the custom nutrition of meals and compares it to the
// user's targets. Meals without a value contribute 0.
func ComputeProgress(meals []models.LoggedMeal, goals *models.DailyGoals, defaults GoalDefaults) ProgressSummary {
	var calories, protein float64
	for _, m := range meals {
		if m.CustomCalories != nil {
			calories += float64(*m.CustomCalories)
		}
		if m.CustomProtein != nil {
			protein += *m.CustomProtein
		}
	}

	targetCal, targetProt, _ := resolveTargets(goals, defaults)
	return ProgressSummary{
		Calories: NutrientProgress{Consumed: calories, Target: targetCal, Percentage: percent(calories, targetCal)},
		Protein:  NutrientProgress{Consumed: protein, Target: targetProt, Percentage: percent(protein, targetProt)},
	}
}

// ComputeWorkoutProgress counts workouts dated in the Monday-based week that
// contains now.
func ComputeWorkoutProgress(workouts []models.Workout, goals *models.DailyGoals, defaults GoalDefaults, now time.Time, loc *time.Location) WorkoutProgress {
	weekStart := utils.StartOfWeek(now, loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	done := 0
	for _, w := range workouts {
		if !w.Date.Before(weekStart) && w.Date.Before(weekEnd) {
			done++
		}
	}
	_, _, target := resolveTargets(goals, defaults)
	return WorkoutProgress{
		Completed:  done,
		Target:     target,
		Percentage: percent(float64(done), float64(target)),
	}
}
