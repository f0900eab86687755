package storage

import (
	"context"
	"fmt"

	"fittrack/models"
)

// DemoUserID is the account created by Seed.
const DemoUserID = "user-1"

func ptr[T any](v T) *T { return &v }

var dietChart = []models.MealOption{
	{Category: "post-workout", Name: "The Standard", Description: "1 Scoop Whey + 1 Large Banana", Calories: 240, Protein: 26},
	{Category: "post-workout", Name: "High-Protein Smoothie", Description: "1 Scoop Whey + 150g Curd + 1/2 Banana", Calories: 300, Protein: 35},
	{Category: "post-workout", Name: "The Whole Food Option", Description: "200g Low-Fat Paneer, sautéed", Calories: 320, Protein: 36},
	{Category: "post-workout", Name: "Sattu Power Drink", Description: "50g Sattu flour mixed in 300ml water with lemon & salt", Calories: 200, Protein: 12},
	{Category: "post-workout", Name: "Boiled Chickpeas", Description: "1 cup (~150g, measured after boiling) of black chana", Calories: 250, Protein: 13},

	{Category: "breakfast", Name: "Besan Chilla", Description: "2 medium chillas (from 100g besan) + 150g Curd", Calories: 500, Protein: 30},
	{Category: "breakfast", Name: "Sprouted Dal Salad", Description: "1 large bowl (~250g) of sprouted moong + 50g Peanuts", Calories: 450, Protein: 25},
	{Category: "breakfast", Name: "Paneer Poha", Description: "1 large plate of Poha with vegetables + 100g crumbled Paneer", Calories: 520, Protein: 22},
	{Category: "breakfast", Name: "Oats Upma", Description: "1 large bowl (from 80g oats) with vegetables + 200ml Skim Milk", Calories: 480, Protein: 20},
	{Category: "breakfast", Name: "Savory Dalia", Description: "1 large bowl of broken wheat porridge with mixed vegetables and lentils", Calories: 430, Protein: 15},

	{Category: "lunch", Name: "Rajma/Chana Bowl", Description: "1 large bowl of curry + 1.5 cups Brown Rice + Salad", Calories: 600, Protein: 25},
	{Category: "lunch", Name: "Soya Chunk Curry", Description: "Curry with 60g (dry) Soya Chunks + 2 Rotis + 100g Curd", Calories: 580, Protein: 35},
	{Category: "lunch", Name: "Mixed Dal Tadka", Description: "1 large bowl Dal + 1.5 cups Rice + Vegetable Sabzi", Calories: 550, Protein: 22},
	{Category: "lunch", Name: "Paneer Curry Bowl", Description: "Simple tomato-based curry with 150g Paneer + 2 Rotis + Salad", Calories: 620, Protein: 30},
	{Category: "lunch", Name: "Tofu Pulao", Description: "Vegetable pulao made with 1 cup rice + 150g cubed Tofu + Raita", Calories: 590, Protein: 24},

	{Category: "evening-snack", Name: "Roasted Chana & Nuts", Description: "1 cup Roasted Chana + handful of Peanuts/Almonds", Calories: 350, Protein: 15},
	{Category: "evening-snack", Name: "Simple Paneer", Description: "100g Low-Fat Paneer cubes with chaat masala", Calories: 160, Protein: 18},
	{Category: "evening-snack", Name: "Greek Yogurt/Hung Curd", Description: "1 cup (~200g) of homemade Hung Curd", Calories: 120, Protein: 20},
	{Category: "evening-snack", Name: "Fruit & Curd Bowl", Description: "1 apple, 1/2 pomegranate mixed with 150g Curd", Calories: 250, Protein: 10},
	{Category: "evening-snack", Name: "Makhana & Peanuts", Description: "2 cups of roasted fox nuts + 30g peanuts", Calories: 300, Protein: 12},

	{Category: "dinner", Name: "Paneer Bhurji/Stir-Fry", Description: "200g Paneer + vegetables + 1 Roti + Salad", Calories: 500, Protein: 40},
	{Category: "dinner", Name: "Tofu & Vegetable Stir-Fry", Description: "200g Tofu + assorted vegetables + Salad", Calories: 350, Protein: 25},
	{Category: "dinner", Name: "High-Protein Dal Soup", Description: "Very thick soup from 100g (dry) Moong/Masoor Dal", Calories: 400, Protein: 25},
	{Category: "dinner", Name: "Palak Paneer", Description: "Homemade Palak Paneer (200g paneer, minimal oil) + Salad", Calories: 480, Protein: 42},
	{Category: "dinner", Name: "Lentil & Vegetable Stew", Description: "Thick stew of mixed dals and vegetables (no rice/roti)", Calories: 420, Protein: 20},
}

var exerciseCatalog = []models.Exercise{
	{Name: "Dumbbell Bench Press", Category: "push", MuscleGroups: []string{"chest", "triceps", "shoulders"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Shoulder Press", Category: "push", MuscleGroups: []string{"shoulders", "triceps"}, Equipment: ptr("dumbbell")},
	{Name: "Incline Dumbbell Press", Category: "push", MuscleGroups: []string{"upper chest", "shoulders"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Lateral Raises", Category: "push", MuscleGroups: []string{"shoulders"}, Equipment: ptr("dumbbell")},
	{Name: "Resistance Band Push-ups", Category: "push", MuscleGroups: []string{"chest", "triceps", "shoulders"}, Equipment: ptr("resistance-band")},
	{Name: "Overhead Tricep Extension", Category: "push", MuscleGroups: []string{"triceps"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Chest Flys", Category: "push", MuscleGroups: []string{"chest"}, Equipment: ptr("dumbbell")},

	{Name: "Dumbbell Bent-Over Row", Category: "pull", MuscleGroups: []string{"back", "biceps"}, Equipment: ptr("dumbbell")},
	{Name: "Resistance Band Pull-Aparts", Category: "pull", MuscleGroups: []string{"rear delts", "upper back"}, Equipment: ptr("resistance-band")},
	{Name: "Renegade Rows", Category: "pull", MuscleGroups: []string{"back", "core"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Bicep Curls", Category: "pull", MuscleGroups: []string{"biceps"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Hammer Curls", Category: "pull", MuscleGroups: []string{"biceps", "forearms"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Pullovers", Category: "pull", MuscleGroups: []string{"lats", "chest"}, Equipment: ptr("dumbbell")},
	{Name: "Band-Resisted Curls", Category: "pull", MuscleGroups: []string{"biceps"}, Equipment: ptr("resistance-band")},

	{Name: "Dumbbell Goblet Squats", Category: "legs", MuscleGroups: []string{"quadriceps", "glutes"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Stiff-Leg Deadlifts", Category: "legs", MuscleGroups: []string{"hamstrings", "glutes"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Lunges", Category: "legs", MuscleGroups: []string{"quadriceps", "glutes"}, Equipment: ptr("dumbbell")},
	{Name: "Dumbbell Calf Raises", Category: "legs", MuscleGroups: []string{"calves"}, Equipment: ptr("dumbbell")},
	{Name: "Band-Resisted Glute Bridges", Category: "legs", MuscleGroups: []string{"glutes", "hamstrings"}, Equipment: ptr("resistance-band")},
	{Name: "Plank", Category: "legs", MuscleGroups: []string{"core"}, Equipment: ptr("bodyweight")},
	{Name: "Leg Raises", Category: "legs", MuscleGroups: []string{"core", "hip flexors"}, Equipment: ptr("bodyweight")},
}

// Seed loads the demo account, the diet-chart meal catalog and the exercise
// catalog. It does nothing when the demo user already exists.
func Seed(ctx context.Context, s Store) error {
	existing, err := s.GetUser(ctx, DemoUserID)
	if err != nil {
		return fmt.Errorf("seed: lookup demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	if _, err := s.CreateUser(ctx, &models.User{
		ID:             DemoUserID,
		Username:       "alex",
		Email:          "alex@fitness.app",
		ProfilePicture: ptr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?ixlib=rb-4.0.3&w=150&h=150&fit=crop&crop=face"),
	}); err != nil {
		return fmt.Errorf("seed: create demo user: %w", err)
	}
	if err := s.UpdateUserStreak(ctx, DemoUserID, 7); err != nil {
		return fmt.Errorf("seed: streak: %w", err)
	}

	for i := range dietChart {
		o := dietChart[i]
		o.IsFromDietChart = true
		if _, err := s.CreateMealOption(ctx, &o); err != nil {
			return fmt.Errorf("seed: meal option %q: %w", o.Name, err)
		}
	}
	for i := range exerciseCatalog {
		if _, err := s.CreateExercise(ctx, &exerciseCatalog[i]); err != nil {
			return fmt.Errorf("seed: exercise %q: %w", exerciseCatalog[i].Name, err)
		}
	}

	if _, err := s.CreateMetrics(ctx, &models.UserMetrics{
		UserID:            DemoUserID,
		Weight:            ptr(82.7),
		BMI:               ptr(24.7),
		BodyFat:           ptr(22.9),
		MuscleRate:        ptr(72.2),
		FatFreeBodyWeight: ptr(63.8),
		SubcutaneousFat:   ptr(15.5),
		VisceralFat:       ptr(6.4),
		BodyWater:         ptr(52.4),
		SkeletalMuscle:    ptr(53.0),
		MuscleMass:        ptr(59.7),
		BoneMass:          ptr(3.3),
		Protein:           ptr(20.7),
		BMR:               ptr(1848),
		BodyAge:           ptr(24),
	}); err != nil {
		return fmt.Errorf("seed: metrics: %w", err)
	}

	if _, err := s.UpsertGoals(ctx, &models.DailyGoals{
		UserID:         DemoUserID,
		TargetCalories: ptr(2300),
		TargetProtein:  ptr(180.0),
		TargetWorkouts: ptr(6),
	}); err != nil {
		return fmt.Errorf("seed: goals: %w", err)
	}
	return nil
}
