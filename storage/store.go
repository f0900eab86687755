// Package storage holds the record store contract and its adapters.
package storage

import (
	"context"
	"errors"
	"time"

	"fittrack/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned by mutations that target a missing record.
// Single-record lookups signal absence with a nil result and a nil error.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract the services depend on.
//
// Get* lookups return (nil, nil) when nothing matches. Create* assigns a
// fresh id and, where the record has one, the server timestamp. Invalid input
// fails with *ValidationError.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	UpdateUserStreak(ctx context.Context, id string, streak int) error
	SetProfilePicture(ctx context.Context, id, url string) error

	ListMetricsByUser(ctx context.Context, userID string) ([]models.UserMetrics, error)
	LatestMetricsByUser(ctx context.Context, userID string) (*models.UserMetrics, error)
	CreateMetrics(ctx context.Context, m *models.UserMetrics) (*models.UserMetrics, error)

	ListMealOptions(ctx context.Context, category string) ([]models.MealOption, error)
	GetMealOption(ctx context.Context, id string) (*models.MealOption, error)
	CreateMealOption(ctx context.Context, o *models.MealOption) (*models.MealOption, error)

	// ListMealsByUser returns every logged meal, or only those on day's
	// calendar date when day is non-nil.
	ListMealsByUser(ctx context.Context, userID string, day *time.Time) ([]models.LoggedMeal, error)
	TodaysMealsByUser(ctx context.Context, userID string) ([]models.LoggedMeal, error)
	CreateLoggedMeal(ctx context.Context, m *models.LoggedMeal) (*models.LoggedMeal, error)

	ListExercises(ctx context.Context, category string) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id string) (*models.Exercise, error)
	CreateExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error)

	ListWorkoutsByUser(ctx context.Context, userID string) ([]models.Workout, error)
	// RecentWorkoutsByUser returns at most limit workouts, newest first.
	RecentWorkoutsByUser(ctx context.Context, userID string, limit int) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id string) (*models.Workout, error)
	CreateWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error)

	ListWorkoutSets(ctx context.Context, workoutID string) ([]models.WorkoutSet, error)
	CreateWorkoutSet(ctx context.Context, s *models.WorkoutSet) (*models.WorkoutSet, error)

	ListPersonalRecords(ctx context.Context, userID string) ([]models.PersonalRecord, error)
	GetPersonalRecord(ctx context.Context, userID, exerciseID string) (*models.PersonalRecord, error)
	// UpsertPersonalRecord replaces the record for (userID, exerciseID).
	UpsertPersonalRecord(ctx context.Context, pr *models.PersonalRecord) (*models.PersonalRecord, error)
	// RaisePersonalRecord stores pr only when it beats the current record for
	// (userID, exerciseID): heavier, or as heavy for more reps. The compare and
	// the write are atomic. raised reports whether pr was stored.
	RaisePersonalRecord(ctx context.Context, pr *models.PersonalRecord) (raised bool, err error)

	GoalsByUser(ctx context.Context, userID string) (*models.DailyGoals, error)
	// UpsertGoals replaces the user's goals; the id of an existing row is kept.
	UpsertGoals(ctx context.Context, g *models.DailyGoals) (*models.DailyGoals, error)
}

// Options configure the calendar both adapters filter by.
type Options struct {
	// Location decides which calendar day a timestamp belongs to.
	Location *time.Location
	// Now is the server clock used for timestamps and "today".
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func newID() string { return uuid.NewString() }
