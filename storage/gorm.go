package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fittrack/models"
	"fittrack/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists records through GORM (PostgreSQL in production, SQLite
// for local runs and tests).
type GormStore struct {
	db   *gorm.DB
	opts Options
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, opts Options) *GormStore {
	return &GormStore{db: db, opts: opts.withDefaults()}
}

// now is stored in UTC so SQLite's text timestamps compare in order.
func (s *GormStore) now() time.Time { return s.opts.Now().UTC() }

// Migrate creates or updates every table the store uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserMetrics{},
		&models.MealOption{},
		&models.LoggedMeal{},
		&models.Exercise{},
		&models.Workout{},
		&models.WorkoutSet{},
		&models.PersonalRecord{},
		&models.DailyGoals{},
	)
}

// first runs q.First and maps a missing row to (nil, nil).
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// ---------- users ----------

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)))
}

func (s *GormStore) CreateUser(ctx context.Context, in *models.User) (*models.User, error) {
	u := *in
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt = s.now()
	if err := Validate(&u); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(email) = ?", strings.ToLower(u.Email)).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return NewValidationError("email", "unique")
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) updateUser(ctx context.Context, id, column string, value any) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) UpdateUserStreak(ctx context.Context, id string, streak int) error {
	if streak < 0 {
		return NewValidationError("streak", "min")
	}
	return s.updateUser(ctx, id, "current_streak", streak)
}

func (s *GormStore) SetProfilePicture(ctx context.Context, id, url string) error {
	return s.updateUser(ctx, id, "profile_picture", url)
}

// ---------- metrics ----------

func (s *GormStore) ListMetricsByUser(ctx context.Context, userID string) ([]models.UserMetrics, error) {
	out := []models.UserMetrics{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) LatestMetricsByUser(ctx context.Context, userID string) (*models.UserMetrics, error) {
	return first[models.UserMetrics](s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC"))
}

func (s *GormStore) CreateMetrics(ctx context.Context, in *models.UserMetrics) (*models.UserMetrics, error) {
	m := *in
	m.ID = newID()
	m.Date = s.now()
	if err := Validate(&m); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}
	return &m, nil
}

// ---------- meal catalog ----------

func (s *GormStore) ListMealOptions(ctx context.Context, category string) ([]models.MealOption, error) {
	out := []models.MealOption{}
	q := s.db.WithContext(ctx).Order("category ASC, name ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	return out, q.Find(&out).Error
}

func (s *GormStore) GetMealOption(ctx context.Context, id string) (*models.MealOption, error) {
	return first[models.MealOption](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *GormStore) CreateMealOption(ctx context.Context, in *models.MealOption) (*models.MealOption, error) {
	o := *in
	o.ID = newID()
	if err := Validate(&o); err != nil {
		return nil, err
	}
	// Select("*") so a false IsFromDietChart is written instead of the column default
	if err := s.db.WithContext(ctx).Select("*").Create(&o).Error; err != nil {
		return nil, fmt.Errorf("create meal option: %w", err)
	}
	return &o, nil
}

// ---------- logged meals ----------

func (s *GormStore) ListMealsByUser(ctx context.Context, userID string, day *time.Time) ([]models.LoggedMeal, error) {
	out := []models.LoggedMeal{}
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if day != nil {
		start, end := utils.DayBounds(*day, s.opts.Location)
		q = q.Where("date >= ? AND date < ?", start.UTC(), end.UTC())
	}
	return out, q.Order("date ASC").Find(&out).Error
}

func (s *GormStore) TodaysMealsByUser(ctx context.Context, userID string) ([]models.LoggedMeal, error) {
	today := s.now()
	return s.ListMealsByUser(ctx, userID, &today)
}

func (s *GormStore) CreateLoggedMeal(ctx context.Context, in *models.LoggedMeal) (*models.LoggedMeal, error) {
	m := *in
	m.ID = newID()
	m.Date = s.now()
	if err := Validate(&m); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create logged meal: %w", err)
	}
	return &m, nil
}

// ---------- exercises ----------

func (s *GormStore) ListExercises(ctx context.Context, category string) ([]models.Exercise, error) {
	out := []models.Exercise{}
	q := s.db.WithContext(ctx).Order("category ASC, name ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	return out, q.Find(&out).Error
}

func (s *GormStore) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	return first[models.Exercise](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *GormStore) CreateExercise(ctx context.Context, in *models.Exercise) (*models.Exercise, error) {
	e := *in
	e.ID = newID()
	if err := Validate(&e); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return &e, nil
}

// ---------- workouts ----------

func (s *GormStore) ListWorkoutsByUser(ctx context.Context, userID string) ([]models.Workout, error) {
	out := []models.Workout{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) RecentWorkoutsByUser(ctx context.Context, userID string, limit int) ([]models.Workout, error) {
	out := []models.Workout{}
	if limit <= 0 {
		return out, nil
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (s *GormStore) GetWorkout(ctx context.Context, id string) (*models.Workout, error) {
	return first[models.Workout](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *GormStore) CreateWorkout(ctx context.Context, in *models.Workout) (*models.Workout, error) {
	w := *in
	w.ID = newID()
	w.Date = s.now()
	if err := Validate(&w); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return &w, nil
}

func (s *GormStore) ListWorkoutSets(ctx context.Context, workoutID string) ([]models.WorkoutSet, error) {
	out := []models.WorkoutSet{}
	err := s.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("set_number ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) CreateWorkoutSet(ctx context.Context, in *models.WorkoutSet) (*models.WorkoutSet, error) {
	set := *in
	set.ID = newID()
	if err := Validate(&set); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Select("*").Create(&set).Error; err != nil {
		return nil, fmt.Errorf("create workout set: %w", err)
	}
	return &set, nil
}

// ---------- personal records ----------

func (s *GormStore) ListPersonalRecords(ctx context.Context, userID string) ([]models.PersonalRecord, error) {
	out := []models.PersonalRecord{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("exercise_id ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) GetPersonalRecord(ctx context.Context, userID, exerciseID string) (*models.PersonalRecord, error) {
	return first[models.PersonalRecord](s.db.WithContext(ctx).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID))
}

func (s *GormStore) UpsertPersonalRecord(ctx context.Context, in *models.PersonalRecord) (*models.PersonalRecord, error) {
	pr := *in
	pr.ID = newID()
	pr.Date = s.now()
	if err := Validate(&pr); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight", "reps", "date"}),
	}).Create(&pr).Error
	if err != nil {
		return nil, fmt.Errorf("upsert personal record: %w", err)
	}
	// reload so the caller sees the surviving row id
	return s.GetPersonalRecord(ctx, pr.UserID, pr.ExerciseID)
}

func (s *GormStore) RaisePersonalRecord(ctx context.Context, in *models.PersonalRecord) (bool, error) {
	pr := *in
	pr.ID = newID()
	pr.Date = s.now()
	if err := Validate(&pr); err != nil {
		return false, err
	}
	// the conflict update only fires for a better lift, so RowsAffected is 0
	// when the stored record stands
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight", "reps", "date"}),
		Where: clause.Where{Exprs: []clause.Expression{clause.Expr{
			SQL: "excluded.weight > personal_records.weight OR " +
				"(excluded.weight = personal_records.weight AND excluded.reps > personal_records.reps)",
		}}},
	}).Create(&pr)
	if res.Error != nil {
		return false, fmt.Errorf("raise personal record: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ---------- goals ----------

func (s *GormStore) GoalsByUser(ctx context.Context, userID string) (*models.DailyGoals, error) {
	return first[models.DailyGoals](s.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (s *GormStore) UpsertGoals(ctx context.Context, in *models.DailyGoals) (*models.DailyGoals, error) {
	g := *in
	g.ID = newID()
	if err := Validate(&g); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_calories", "target_protein", "target_workouts"}),
	}).Create(&g).Error
	if err != nil {
		return nil, fmt.Errorf("upsert goals: %w", err)
	}
	return s.GoalsByUser(ctx, g.UserID)
}
