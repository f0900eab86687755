package services

import (
	"context"
	"fmt"

	"fittrack/models"
	"fittrack/storage"
)

type WorkoutInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Duration *int    `json:"duration"`
	Notes    *string `json:"notes"`
}

type SetInput struct {
	ExerciseID string   `json:"exerciseId"`
	SetNumber  int      `json:"setNumber"`
	Reps       *int     `json:"reps"`
	Weight     *float64 `json:"weight"`
}

type RecordInput struct {
	ExerciseID string  `json:"exerciseId"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
}

// WorkoutService covers workouts, their sets, the exercise catalog and
// personal records.
type WorkoutService struct {
	store storage.Store
	opts  Options
}

func NewWorkoutService(store storage.Store, opts Options) *WorkoutService {
	return &WorkoutService{store: store, opts: opts.withDefaults()}
}

// ---------- exercises ----------

func (s *WorkoutService) ListExercises(ctx context.Context, category string) ([]models.Exercise, error) {
	return bounded(ctx, s.opts.StoreTimeout, "list exercises", func(c context.Context) ([]models.Exercise, error) {
		return s.store.ListExercises(c, category)
	})
}

func (s *WorkoutService) CreateExercise(ctx context.Context, in models.Exercise) (*models.Exercise, error) {
	return bounded(ctx, s.opts.StoreTimeout, "create exercise", func(c context.Context) (*models.Exercise, error) {
		return s.store.CreateExercise(c, &in)
	})
}

// ---------- workouts ----------

// List returns every workout oldest first, or the newest limit when limit > 0.
func (s *WorkoutService) List(ctx context.Context, userID string, limit int) ([]models.Workout, error) {
	if limit > 0 {
		return bounded(ctx, s.opts.StoreTimeout, "recent workouts", func(c context.Context) ([]models.Workout, error) {
			return s.store.RecentWorkoutsByUser(c, userID, limit)
		})
	}
	return bounded(ctx, s.opts.StoreTimeout, "list workouts", func(c context.Context) ([]models.Workout, error) {
		return s.store.ListWorkoutsByUser(c, userID)
	})
}

func (s *WorkoutService) Create(ctx context.Context, userID string, in WorkoutInput) (*models.Workout, error) {
	if _, err := requireUser(ctx, s.store, s.opts.StoreTimeout, userID); err != nil {
		return nil, err
	}
	return bounded(ctx, s.opts.StoreTimeout, "create workout", func(c context.Context) (*models.Workout, error) {
		return s.store.CreateWorkout(c, &models.Workout{
			UserID:   userID,
			Name:     in.Name,
			Category: in.Category,
			Duration: in.Duration,
			Notes:    in.Notes,
		})
	})
}

// requireWorkout loads a workout. A non-empty callerID must own it.
func (s *WorkoutService) requireWorkout(ctx context.Context, id, callerID string) (*models.Workout, error) {
	w, err := bounded(ctx, s.opts.StoreTimeout, "get workout", func(c context.Context) (*models.Workout, error) {
		return s.store.GetWorkout(c, id)
	})
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("workout %q: %w", id, storage.ErrNotFound)
	}
	if callerID != "" && w.UserID != callerID {
		return nil, fmt.Errorf("workout %q: %w", id, ErrForbidden)
	}
	return w, nil
}

func (s *WorkoutService) requireExercise(ctx context.Context, id string) error {
	if id == "" {
		return storage.NewValidationError("exerciseId", "required")
	}
	ex, err := bounded(ctx, s.opts.StoreTimeout, "get exercise", func(c context.Context) (*models.Exercise, error) {
		return s.store.GetExercise(c, id)
	})
	if err != nil {
		return err
	}
	if ex == nil {
		return storage.NewValidationError("exerciseId", "exists")
	}
	return nil
}

// ---------- sets ----------

// ListSets returns the sets of a workout. callerID is the authenticated user,
// empty when authentication is off.
func (s *WorkoutService) ListSets(ctx context.Context, callerID, workoutID string) ([]models.WorkoutSet, error) {
	if _, err := s.requireWorkout(ctx, workoutID, callerID); err != nil {
		return nil, err
	}
	return bounded(ctx, s.opts.StoreTimeout, "list sets", func(c context.Context) ([]models.WorkoutSet, error) {
		return s.store.ListWorkoutSets(c, workoutID)
	})
}

// AddSet stores a set and, when it beats the lifter's record for the
// exercise, flags it and raises the record. Sets without load or reps never
// count.
func (s *WorkoutService) AddSet(ctx context.Context, callerID, workoutID string, in SetInput) (*models.WorkoutSet, error) {
	w, err := s.requireWorkout(ctx, workoutID, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.requireExercise(ctx, in.ExerciseID); err != nil {
		return nil, err
	}

	set := models.WorkoutSet{
		WorkoutID:  workoutID,
		ExerciseID: in.ExerciseID,
		SetNumber:  in.SetNumber,
		Reps:       in.Reps,
		Weight:     in.Weight,
	}
	if err := storage.Validate(&set); err != nil {
		return nil, err
	}

	if in.Weight != nil && in.Reps != nil && *in.Reps >= 1 {
		set.IsPersonalRecord, err = bounded(ctx, s.opts.StoreTimeout, "raise personal record", func(c context.Context) (bool, error) {
			return s.store.RaisePersonalRecord(c, &models.PersonalRecord{
				UserID:     w.UserID,
				ExerciseID: in.ExerciseID,
				Weight:     *in.Weight,
				Reps:       *in.Reps,
			})
		})
		if err != nil {
			return nil, err
		}
	}

	return bounded(ctx, s.opts.StoreTimeout, "create set", func(c context.Context) (*models.WorkoutSet, error) {
		return s.store.CreateWorkoutSet(c, &set)
	})
}

// ---------- personal records ----------

// Records lists the user's records, or just the one for exerciseID when set.
func (s *WorkoutService) Records(ctx context.Context, userID, exerciseID string) ([]models.PersonalRecord, error) {
	if exerciseID == "" {
		return bounded(ctx, s.opts.StoreTimeout, "list personal records", func(c context.Context) ([]models.PersonalRecord, error) {
			return s.store.ListPersonalRecords(c, userID)
		})
	}
	pr, err := bounded(ctx, s.opts.StoreTimeout, "get personal record", func(c context.Context) (*models.PersonalRecord, error) {
		return s.store.GetPersonalRecord(c, userID, exerciseID)
	})
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return []models.PersonalRecord{}, nil
	}
	return []models.PersonalRecord{*pr}, nil
}

// SetRecord replaces the user's record for an exercise unconditionally.
func (s *WorkoutService) SetRecord(ctx context.Context, userID string, in RecordInput) (*models.PersonalRecord, error) {
	if _, err := requireUser(ctx, s.store, s.opts.StoreTimeout, userID); err != nil {
		return nil, err
	}
	if err := s.requireExercise(ctx, in.ExerciseID); err != nil {
		return nil, err
	}
	return bounded(ctx, s.opts.StoreTimeout, "upsert personal record", func(c context.Context) (*models.PersonalRecord, error) {
		return s.store.UpsertPersonalRecord(c, &models.PersonalRecord{
			UserID:     userID,
			ExerciseID: in.ExerciseID,
			Weight:     in.Weight,
			Reps:       in.Reps,
		})
	})
}
