package services

import (
	"context"
	"fmt"

	"fittrack/models"
	"fittrack/storage"
	"fittrack/utils"

	"golang.org/x/sync/errgroup"
)

// RecentWorkoutLimit is how many workouts the dashboard shows.
const RecentWorkoutLimit = 2

// DashboardView is the one-call home screen payload. User is nil and
// UserFound false when the id is unknown.
type DashboardView struct {
	Date           string              `json:"date"`
	User           *models.User        `json:"user"`
	UserFound      bool                `json:"userFound"`
	Metrics        *models.UserMetrics `json:"metrics"`
	TodaysMeals    []models.LoggedMeal `json:"todaysMeals"`
	RecentWorkouts []models.Workout    `json:"recentWorkouts"`
	Goals          *models.DailyGoals  `json:"goals"`
	Progress       ProgressSummary     `json:"progress"`
	WeeklyWorkouts WorkoutProgress     `json:"weeklyWorkouts"`
}

type DashboardService struct {
	store storage.Store
	opts  Options
}

func NewDashboardService(store storage.Store, opts Options) *DashboardService {
	return &DashboardService{store: store, opts: opts.withDefaults()}
}

// BuildDashboard reads everything the dashboard needs concurrently and
// aggregates today's progress. The first failing read cancels the rest.
func (s *DashboardService) BuildDashboard(ctx context.Context, userID string) (*DashboardView, error) {
	var (
		view     = &DashboardView{}
		workouts []models.Workout
		d        = s.opts.StoreTimeout
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.User, err = bounded(gctx, d, "get user", func(c context.Context) (*models.User, error) {
			return s.store.GetUser(c, userID)
		})
		return err
	})
	g.Go(func() (err error) {
		view.Metrics, err = bounded(gctx, d, "latest metrics", func(c context.Context) (*models.UserMetrics, error) {
			return s.store.LatestMetricsByUser(c, userID)
		})
		return err
	})
	g.Go(func() (err error) {
		view.TodaysMeals, err = bounded(gctx, d, "todays meals", func(c context.Context) ([]models.LoggedMeal, error) {
			return s.store.TodaysMealsByUser(c, userID)
		})
		return err
	})
	g.Go(func() (err error) {
		view.RecentWorkouts, err = bounded(gctx, d, "recent workouts", func(c context.Context) ([]models.Workout, error) {
			return s.store.RecentWorkoutsByUser(c, userID, RecentWorkoutLimit)
		})
		return err
	})
	g.Go(func() (err error) {
		workouts, err = bounded(gctx, d, "list workouts", func(c context.Context) ([]models.Workout, error) {
			return s.store.ListWorkoutsByUser(c, userID)
		})
		return err
	})
	g.Go(func() (err error) {
		view.Goals, err = bounded(gctx, d, "goals", func(c context.Context) (*models.DailyGoals, error) {
			return s.store.GoalsByUser(c, userID)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	now := s.opts.Now()
	view.Date = now.In(s.opts.Location).Format(utils.DateLayout)
	view.UserFound = view.User != nil
	if view.TodaysMeals == nil {
		view.TodaysMeals = []models.LoggedMeal{}
	}
	if view.RecentWorkouts == nil {
		view.RecentWorkouts = []models.Workout{}
	}
	view.Progress = ComputeProgress(view.TodaysMeals, view.Goals, s.opts.Defaults)
	view.WeeklyWorkouts = ComputeWorkoutProgress(workouts, view.Goals, s.opts.Defaults, now, s.opts.Location)
	return view, nil
}
