package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fittrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable clock shared by a store and its test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type storeFactory func(t *testing.T, opts Options) Store

// runStoreContract checks the behaviour every adapter must share.
func runStoreContract(t *testing.T, newStore storeFactory) {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	open := func(t *testing.T) (Store, *fakeClock) {
		clock := newFakeClock(base)
		return newStore(t, Options{Location: time.UTC, Now: clock.Now}), clock
	}

	t.Run("absent lookups return nil without error", func(t *testing.T) {
		s, _ := open(t)

		u, err := s.GetUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, u)

		byEmail, err := s.GetUserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, byEmail)

		m, err := s.LatestMetricsByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, m)

		g, err := s.GoalsByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, g)

		w, err := s.GetWorkout(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, w)

		pr, err := s.GetPersonalRecord(ctx, "nobody", "ex")
		require.NoError(t, err)
		assert.Nil(t, pr)

		meals, err := s.ListMealsByUser(ctx, "nobody", nil)
		require.NoError(t, err)
		assert.Empty(t, meals)
	})

	t.Run("user create assigns id and rejects duplicate email", func(t *testing.T) {
		s, _ := open(t)

		u, err := s.CreateUser(ctx, &models.User{Username: "sam", Email: "Sam@Example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, base, u.CreatedAt.UTC())

		got, err := s.GetUserByEmail(ctx, "sam@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)

		_, err = s.CreateUser(ctx, &models.User{Username: "sam2", Email: "sam@example.com"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Field)
	})

	t.Run("validation reports json field names", func(t *testing.T) {
		s, _ := open(t)

		_, err := s.CreateUser(ctx, &models.User{Username: "x", Email: "not-an-email"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Field)
		assert.Equal(t, "email", verr.Rule)

		_, err = s.CreateLoggedMeal(ctx, &models.LoggedMeal{UserID: "u", MealType: "brunch", CustomMealName: ptr("x")})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "mealType", verr.Field)

		_, err = s.CreateLoggedMeal(ctx, &models.LoggedMeal{UserID: "u", MealType: models.MealTypeLunch})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "customMealName", verr.Field)

		_, err = s.CreateWorkoutSet(ctx, &models.WorkoutSet{WorkoutID: "w", ExerciseID: "e", SetNumber: 0})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "setNumber", verr.Field)
	})

	t.Run("mutations on missing users return ErrNotFound", func(t *testing.T) {
		s, _ := open(t)
		assert.True(t, errors.Is(s.UpdateUserStreak(ctx, "ghost", 3), ErrNotFound))
		assert.True(t, errors.Is(s.SetProfilePicture(ctx, "ghost", "https://x"), ErrNotFound))

		var verr *ValidationError
		assert.ErrorAs(t, s.UpdateUserStreak(ctx, "ghost", -1), &verr)
	})

	t.Run("todays meals only include the current calendar day", func(t *testing.T) {
		s, clock := open(t)

		clock.Set(base.Add(-24 * time.Hour))
		_, err := s.CreateLoggedMeal(ctx, &models.LoggedMeal{UserID: "u1", CustomMealName: ptr("yesterday"), CustomCalories: ptr(900), MealType: models.MealTypeDinner})
		require.NoError(t, err)

		clock.Set(base)
		_, err = s.CreateLoggedMeal(ctx, &models.LoggedMeal{UserID: "u1", CustomMealName: ptr("oats"), CustomCalories: ptr(400), MealType: models.MealTypeBreakfast})
		require.NoError(t, err)
		_, err = s.CreateLoggedMeal(ctx, &models.LoggedMeal{UserID: "u2", CustomMealName: ptr("other user"), MealType: models.MealTypeLunch})
		require.NoError(t, err)

		today, err := s.TodaysMealsByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, today, 1)
		assert.Equal(t, "oats", *today[0].CustomMealName)

		all, err := s.ListMealsByUser(ctx, "u1", nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		yesterday := base.Add(-24 * time.Hour)
		prev, err := s.ListMealsByUser(ctx, "u1", &yesterday)
		require.NoError(t, err)
		require.Len(t, prev, 1)
		assert.Equal(t, 900, *prev[0].CustomCalories)
	})

	t.Run("latest metrics is the newest snapshot", func(t *testing.T) {
		s, clock := open(t)

		_, err := s.CreateMetrics(ctx, &models.UserMetrics{UserID: "u1", Weight: ptr(84.0)})
		require.NoError(t, err)
		clock.Set(base.Add(48 * time.Hour))
		_, err = s.CreateMetrics(ctx, &models.UserMetrics{UserID: "u1", Weight: ptr(82.7)})
		require.NoError(t, err)

		latest, err := s.LatestMetricsByUser(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.InDelta(t, 82.7, *latest.Weight, 1e-9)

		all, err := s.ListMetricsByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("recent workouts are newest first and limited", func(t *testing.T) {
		s, clock := open(t)
		for i := 0; i < 4; i++ {
			clock.Set(base.Add(time.Duration(i) * time.Hour))
			_, err := s.CreateWorkout(ctx, &models.Workout{UserID: "u1", Name: fmt.Sprintf("w%d", i), Category: "push"})
			require.NoError(t, err)
		}

		recent, err := s.RecentWorkoutsByUser(ctx, "u1", 3)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "w3", recent[0].Name)
		assert.Equal(t, "w1", recent[2].Name)

		none, err := s.RecentWorkoutsByUser(ctx, "u1", 0)
		require.NoError(t, err)
		assert.Empty(t, none)

		got, err := s.GetWorkout(ctx, recent[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "w3", got.Name)
	})

	t.Run("workout sets keep false personal record flag", func(t *testing.T) {
		s, _ := open(t)
		w, err := s.CreateWorkout(ctx, &models.Workout{UserID: "u1", Name: "Push", Category: "push"})
		require.NoError(t, err)

		_, err = s.CreateWorkoutSet(ctx, &models.WorkoutSet{WorkoutID: w.ID, ExerciseID: "e1", SetNumber: 1, Reps: ptr(8), Weight: ptr(20.0)})
		require.NoError(t, err)
		_, err = s.CreateWorkoutSet(ctx, &models.WorkoutSet{WorkoutID: w.ID, ExerciseID: "e1", SetNumber: 2, Reps: ptr(6), Weight: ptr(22.5), IsPersonalRecord: true})
		require.NoError(t, err)

		sets, err := s.ListWorkoutSets(ctx, w.ID)
		require.NoError(t, err)
		require.Len(t, sets, 2)
		assert.False(t, sets[0].IsPersonalRecord)
		assert.True(t, sets[1].IsPersonalRecord)
	})

	t.Run("catalogs filter by category", func(t *testing.T) {
		s, _ := open(t)
		_, err := s.CreateMealOption(ctx, &models.MealOption{Category: "breakfast", Name: "Chilla", Description: "besan", Calories: 500, Protein: 30})
		require.NoError(t, err)
		opt, err := s.CreateMealOption(ctx, &models.MealOption{Category: "dinner", Name: "Palak Paneer", Description: "paneer", Calories: 480, Protein: 42})
		require.NoError(t, err)
		_, err = s.CreateExercise(ctx, &models.Exercise{Name: "Plank", Category: "legs", MuscleGroups: []string{"core"}})
		require.NoError(t, err)

		dinner, err := s.ListMealOptions(ctx, "dinner")
		require.NoError(t, err)
		require.Len(t, dinner, 1)
		assert.Equal(t, "Palak Paneer", dinner[0].Name)

		all, err := s.ListMealOptions(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		got, err := s.GetMealOption(ctx, opt.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 480, got.Calories)

		ex, err := s.ListExercises(ctx, "legs")
		require.NoError(t, err)
		require.Len(t, ex, 1)
		assert.Equal(t, []string{"core"}, ex[0].MuscleGroups)
	})

	t.Run("upserts keep one row per key", func(t *testing.T) {
		s, _ := open(t)

		first, err := s.UpsertGoals(ctx, &models.DailyGoals{UserID: "u1", TargetCalories: ptr(2000)})
		require.NoError(t, err)
		second, err := s.UpsertGoals(ctx, &models.DailyGoals{UserID: "u1", TargetCalories: ptr(2500), TargetProtein: ptr(150.0)})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 2500, *second.TargetCalories)
		assert.Nil(t, second.TargetWorkouts)

		a, err := s.UpsertPersonalRecord(ctx, &models.PersonalRecord{UserID: "u1", ExerciseID: "e1", Weight: 20, Reps: 8})
		require.NoError(t, err)
		b, err := s.UpsertPersonalRecord(ctx, &models.PersonalRecord{UserID: "u1", ExerciseID: "e1", Weight: 25, Reps: 5})
		require.NoError(t, err)
		assert.Equal(t, a.ID, b.ID)
		assert.InDelta(t, 25, b.Weight, 1e-9)

		records, err := s.ListPersonalRecords(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("raising a record keeps the best lift", func(t *testing.T) {
		s, _ := open(t)
		lift := func(weight float64, reps int) bool {
			raised, err := s.RaisePersonalRecord(ctx, &models.PersonalRecord{UserID: "u1", ExerciseID: "e1", Weight: weight, Reps: reps})
			require.NoError(t, err)
			return raised
		}
		assert.True(t, lift(20, 8))
		assert.False(t, lift(20, 8))
		assert.False(t, lift(20, 6))
		assert.True(t, lift(20, 10))
		assert.False(t, lift(17.5, 15))
		assert.True(t, lift(22.5, 5))

		pr, err := s.GetPersonalRecord(ctx, "u1", "e1")
		require.NoError(t, err)
		require.NotNil(t, pr)
		assert.InDelta(t, 22.5, pr.Weight, 1e-9)
		assert.Equal(t, 5, pr.Reps)

		var verr *ValidationError
		_, err = s.RaisePersonalRecord(ctx, &models.PersonalRecord{UserID: "u1", ExerciseID: "e1", Weight: 50, Reps: 0})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "reps", verr.Field)
	})

	t.Run("concurrent raises never lose the heaviest lift", func(t *testing.T) {
		s, _ := open(t)
		weights := []float64{60, 100, 40, 80, 95, 20, 70, 10}
		var wg sync.WaitGroup
		errs := make(chan error, len(weights))
		for _, kg := range weights {
			wg.Add(1)
			go func(kg float64) {
				defer wg.Done()
				_, err := s.RaisePersonalRecord(ctx, &models.PersonalRecord{UserID: "u1", ExerciseID: "e1", Weight: kg, Reps: 5})
				errs <- err
			}(kg)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		records, err := s.ListPersonalRecords(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.InDelta(t, 100, records[0].Weight, 1e-9)
	})

	t.Run("concurrent appends are all kept", func(t *testing.T) {
		s, _ := open(t)
		const n = 20
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.CreateLoggedMeal(ctx, &models.LoggedMeal{
					UserID:         "u1",
					CustomMealName: ptr(fmt.Sprintf("meal %d", i)),
					CustomCalories: ptr(100),
					MealType:       models.MealTypeSnack,
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		meals, err := s.TodaysMealsByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, meals, n)
	})

	t.Run("seed is idempotent", func(t *testing.T) {
		s, _ := open(t)
		require.NoError(t, Seed(ctx, s))
		require.NoError(t, Seed(ctx, s))

		u, err := s.GetUser(ctx, DemoUserID)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, 7, u.CurrentStreak)

		options, err := s.ListMealOptions(ctx, "")
		require.NoError(t, err)
		assert.Len(t, options, 25)

		exercises, err := s.ListExercises(ctx, "")
		require.NoError(t, err)
		assert.Len(t, exercises, 21)

		g, err := s.GoalsByUser(ctx, DemoUserID)
		require.NoError(t, err)
		require.NotNil(t, g)
		assert.Equal(t, 2300, *g.TargetCalories)
	})
}
