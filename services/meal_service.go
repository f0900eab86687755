package services

import (
	"context"
	"log/slog"
	"time"

	"fittrack/models"
	"fittrack/storage"
)

// LogMealInput logs either a catalog option or a custom food. Custom values
// override the option's nutrition when both are given.
type LogMealInput struct {
	MealOptionID   *string  `json:"mealOptionId"`
	CustomMealName *string  `json:"customMealName"`
	CustomCalories *int     `json:"customCalories"`
	CustomProtein  *float64 `json:"customProtein"`
	MealType       string   `json:"mealType"`
}

// MealOptionInput adds a catalog entry. IsFromDietChart defaults to true.
type MealOptionInput struct {
	Category        string  `json:"category"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Calories        int     `json:"calories"`
	Protein         float64 `json:"protein"`
	IsFromDietChart *bool   `json:"isFromDietChart"`
}

// ProgressNotifier is told how a user's daily progress changed.
type ProgressNotifier interface {
	ProgressChanged(ctx context.Context, userID string, before, after ProgressSummary) []models.Alert
}

type MealService struct {
	store  storage.Store
	opts   Options
	notify ProgressNotifier
}

func NewMealService(store storage.Store, opts Options, notify ProgressNotifier) *MealService {
	return &MealService{store: store, opts: opts.withDefaults(), notify: notify}
}

// ---------- catalog ----------

func (s *MealService) ListOptions(ctx context.Context, category string) ([]models.MealOption, error) {
	return bounded(ctx, s.opts.StoreTimeout, "list meal options", func(c context.Context) ([]models.MealOption, error) {
		return s.store.ListMealOptions(c, category)
	})
}

func (s *MealService) CreateOption(ctx context.Context, in MealOptionInput) (*models.MealOption, error) {
	o := models.MealOption{
		Category:        in.Category,
		Name:            in.Name,
		Description:     in.Description,
		Calories:        in.Calories,
		Protein:         in.Protein,
		IsFromDietChart: true,
	}
	if in.IsFromDietChart != nil {
		o.IsFromDietChart = *in.IsFromDietChart
	}
	return bounded(ctx, s.opts.StoreTimeout, "create meal option", func(c context.Context) (*models.MealOption, error) {
		return s.store.CreateMealOption(c, &o)
	})
}

// ---------- logged meals ----------

// List returns the user's meals, limited to one calendar day when day is set.
func (s *MealService) List(ctx context.Context, userID string, day *time.Time) ([]models.LoggedMeal, error) {
	return bounded(ctx, s.opts.StoreTimeout, "list meals", func(c context.Context) ([]models.LoggedMeal, error) {
		return s.store.ListMealsByUser(c, userID, day)
	})
}

func (s *MealService) Today(ctx context.Context, userID string) ([]models.LoggedMeal, error) {
	return bounded(ctx, s.opts.StoreTimeout, "todays meals", func(c context.Context) ([]models.LoggedMeal, error) {
		return s.store.TodaysMealsByUser(c, userID)
	})
}

// Log records a meal for an existing user. A catalog option fills in the
// name and nutrition the caller left out, so progress sees the real values.
func (s *MealService) Log(ctx context.Context, userID string, in LogMealInput) (*models.LoggedMeal, error) {
	if _, err := requireUser(ctx, s.store, s.opts.StoreTimeout, userID); err != nil {
		return nil, err
	}

	meal := models.LoggedMeal{
		UserID:         userID,
		MealOptionID:   in.MealOptionID,
		CustomMealName: in.CustomMealName,
		CustomCalories: in.CustomCalories,
		CustomProtein:  in.CustomProtein,
		MealType:       in.MealType,
	}
	if in.MealOptionID != nil {
		opt, err := bounded(ctx, s.opts.StoreTimeout, "get meal option", func(c context.Context) (*models.MealOption, error) {
			return s.store.GetMealOption(c, *in.MealOptionID)
		})
		if err != nil {
			return nil, err
		}
		if opt == nil {
			return nil, storage.NewValidationError("mealOptionId", "exists")
		}
		if meal.CustomMealName == nil {
			meal.CustomMealName = &opt.Name
		}
		if meal.CustomCalories == nil {
			meal.CustomCalories = &opt.Calories
		}
		if meal.CustomProtein == nil {
			meal.CustomProtein = &opt.Protein
		}
	}

	logged, err := bounded(ctx, s.opts.StoreTimeout, "log meal", func(c context.Context) (*models.LoggedMeal, error) {
		return s.store.CreateLoggedMeal(c, &meal)
	})
	if err != nil {
		return nil, err
	}
	s.publishProgress(ctx, userID, logged.ID)
	return logged, nil
}

// publishProgress recomputes today's progress with and without the new meal.
// Failures are logged; the meal is already stored.
func (s *MealService) publishProgress(ctx context.Context, userID, newMealID string) {
	if s.notify == nil {
		return
	}
	meals, err := s.Today(ctx, userID)
	if err != nil {
		s.opts.Logger.WarnContext(ctx, "progress refresh failed", slog.String("user_id", userID), slog.Any("error", err))
		return
	}
	goals, err := bounded(ctx, s.opts.StoreTimeout, "goals", func(c context.Context) (*models.DailyGoals, error) {
		return s.store.GoalsByUser(c, userID)
	})
	if err != nil {
		s.opts.Logger.WarnContext(ctx, "progress refresh failed", slog.String("user_id", userID), slog.Any("error", err))
		return
	}

	prev := make([]models.LoggedMeal, 0, len(meals))
	for _, m := range meals {
		if m.ID != newMealID {
			prev = append(prev, m)
		}
	}
	s.notify.ProgressChanged(ctx, userID,
		ComputeProgress(prev, goals, s.opts.Defaults),
		ComputeProgress(meals, goals, s.opts.Defaults))
}
