package services

import (
	"context"

	"fittrack/models"
	"fittrack/storage"
)

// GoalsInput carries new targets; nil fields are absent.
type GoalsInput struct {
	TargetCalories *int     `json:"targetCalories"`
	TargetProtein  *float64 `json:"targetProtein"`
	TargetWorkouts *int     `json:"targetWorkouts"`
}

type GoalService struct {
	store storage.Store
	opts  Options
}

func NewGoalService(store storage.Store, opts Options) *GoalService {
	return &GoalService{store: store, opts: opts.withDefaults()}
}

// Get returns storage.ErrNotFound when the user never set goals.
func (s *GoalService) Get(ctx context.Context, userID string) (*models.DailyGoals, error) {
	g, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, storage.ErrNotFound
	}
	return g, nil
}

func (s *GoalService) current(ctx context.Context, userID string) (*models.DailyGoals, error) {
	return bounded(ctx, s.opts.StoreTimeout, "goals", func(c context.Context) (*models.DailyGoals, error) {
		return s.store.GoalsByUser(c, userID)
	})
}

// Replace stores in as the user's goals; absent fields fall back to the
// defaults at read time.
func (s *GoalService) Replace(ctx context.Context, userID string, in GoalsInput) (*models.DailyGoals, error) {
	if _, err := requireUser(ctx, s.store, s.opts.StoreTimeout, userID); err != nil {
		return nil, err
	}
	return s.upsert(ctx, &models.DailyGoals{
		UserID:         userID,
		TargetCalories: in.TargetCalories,
		TargetProtein:  in.TargetProtein,
		TargetWorkouts: in.TargetWorkouts,
	})
}

// Patch merges the given fields onto the current goals, or onto the default
// table when the user has none yet.
func (s *GoalService) Patch(ctx context.Context, userID string, in GoalsInput) (*models.DailyGoals, error) {
	if _, err := requireUser(ctx, s.store, s.opts.StoreTimeout, userID); err != nil {
		return nil, err
	}
	g, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		d := s.opts.Defaults
		g = &models.DailyGoals{
			UserID:         userID,
			TargetCalories: &d.TargetCalories,
			TargetProtein:  &d.TargetProtein,
			TargetWorkouts: &d.TargetWorkouts,
		}
	}
	if in.TargetCalories != nil {
		g.TargetCalories = in.TargetCalories
	}
	if in.TargetProtein != nil {
		g.TargetProtein = in.TargetProtein
	}
	if in.TargetWorkouts != nil {
		g.TargetWorkouts = in.TargetWorkouts
	}
	return s.upsert(ctx, g)
}

func (s *GoalService) upsert(ctx context.Context, g *models.DailyGoals) (*models.DailyGoals, error) {
	return bounded(ctx, s.opts.StoreTimeout, "upsert goals", func(c context.Context) (*models.DailyGoals, error) {
		return s.store.UpsertGoals(c, g)
	})
}
