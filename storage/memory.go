package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fittrack/models"
	"fittrack/utils"
)

// bucket is an append-only list guarded by its own lock, so writes for one
// user never wait on another user's writes.
type bucket[T any] struct {
	mu    sync.RWMutex
	items []T
}

func (b *bucket[T]) append(v T) {
	b.mu.Lock()
	b.items = append(b.items, v)
	b.mu.Unlock()
}

func (b *bucket[T]) snapshot() []T {
	if b == nil {
		return []T{}
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

// MemoryStore keeps every record in process memory. Its lifetime is the
// process lifetime.
type MemoryStore struct {
	opts Options

	mu          sync.RWMutex
	users       map[string]models.User
	emails      map[string]string
	mealOptions map[string]models.MealOption
	optionOrder []string
	exercises   map[string]models.Exercise
	exOrder     []string
	workoutByID map[string]models.Workout
	records     map[string]models.PersonalRecord
	goals       map[string]models.DailyGoals

	metrics  map[string]*bucket[models.UserMetrics]
	meals    map[string]*bucket[models.LoggedMeal]
	workouts map[string]*bucket[models.Workout]
	sets     map[string]*bucket[models.WorkoutSet]
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		opts:        opts.withDefaults(),
		users:       make(map[string]models.User),
		emails:      make(map[string]string),
		mealOptions: make(map[string]models.MealOption),
		exercises:   make(map[string]models.Exercise),
		workoutByID: make(map[string]models.Workout),
		records:     make(map[string]models.PersonalRecord),
		goals:       make(map[string]models.DailyGoals),
		metrics:     make(map[string]*bucket[models.UserMetrics]),
		meals:       make(map[string]*bucket[models.LoggedMeal]),
		workouts:    make(map[string]*bucket[models.Workout]),
		sets:        make(map[string]*bucket[models.WorkoutSet]),
	}
}

// bucketFor returns the bucket for key, creating it on first write.
func bucketFor[T any](s *MemoryStore, m map[string]*bucket[T], key string) *bucket[T] {
	s.mu.RLock()
	b := m[key]
	s.mu.RUnlock()
	if b != nil {
		return b
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if b = m[key]; b == nil {
		b = &bucket[T]{}
		m[key] = b
	}
	return b
}

func lookupBucket[T any](s *MemoryStore, m map[string]*bucket[T], key string) *bucket[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return m[key]
}

// ---------- users ----------

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, in *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := *in
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt = s.opts.Now()
	if err := Validate(&u); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, taken := s.emails[key]; taken {
		return nil, NewValidationError("email", "unique")
	}
	s.users[u.ID] = u
	s.emails[key] = u.ID
	return &u, nil
}

func (s *MemoryStore) UpdateUserStreak(ctx context.Context, id string, streak int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if streak < 0 {
		return NewValidationError("streak", "min")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.CurrentStreak = streak
	s.users[id] = u
	return nil
}

func (s *MemoryStore) SetProfilePicture(ctx context.Context, id, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ProfilePicture = &url
	s.users[id] = u
	return nil
}

// ---------- metrics ----------

func (s *MemoryStore) ListMetricsByUser(ctx context.Context, userID string) ([]models.UserMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lookupBucket(s, s.metrics, userID).snapshot(), nil
}

func (s *MemoryStore) LatestMetricsByUser(ctx context.Context, userID string) (*models.UserMetrics, error) {
	all, err := s.ListMetricsByUser(ctx, userID)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	latest := all[0]
	for _, m := range all[1:] {
		// later appends win ties
		if !m.Date.Before(latest.Date) {
			latest = m
		}
	}
	return &latest, nil
}

func (s *MemoryStore) CreateMetrics(ctx context.Context, in *models.UserMetrics) (*models.UserMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := *in
	m.ID = newID()
	m.Date = s.opts.Now()
	if err := Validate(&m); err != nil {
		return nil, err
	}
	bucketFor(s, s.metrics, m.UserID).append(m)
	return &m, nil
}

// ---------- meal catalog ----------

func (s *MemoryStore) ListMealOptions(ctx context.Context, category string) ([]models.MealOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MealOption, 0, len(s.optionOrder))
	for _, id := range s.optionOrder {
		o := s.mealOptions[id]
		if category == "" || o.Category == category {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetMealOption(ctx context.Context, id string) (*models.MealOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.mealOptions[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *MemoryStore) CreateMealOption(ctx context.Context, in *models.MealOption) (*models.MealOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := *in
	o.ID = newID()
	if err := Validate(&o); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.mealOptions[o.ID] = o
	s.optionOrder = append(s.optionOrder, o.ID)
	s.mu.Unlock()
	return &o, nil
}

// ---------- logged meals ----------

func (s *MemoryStore) ListMealsByUser(ctx context.Context, userID string, day *time.Time) ([]models.LoggedMeal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := lookupBucket(s, s.meals, userID).snapshot()
	if day == nil {
		return all, nil
	}
	start, end := utils.DayBounds(*day, s.opts.Location)
	out := make([]models.LoggedMeal, 0, len(all))
	for _, m := range all {
		if !m.Date.Before(start) && m.Date.Before(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) TodaysMealsByUser(ctx context.Context, userID string) ([]models.LoggedMeal, error) {
	today := s.opts.Now()
	return s.ListMealsByUser(ctx, userID, &today)
}

func (s *MemoryStore) CreateLoggedMeal(ctx context.Context, in *models.LoggedMeal) (*models.LoggedMeal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := *in
	m.ID = newID()
	m.Date = s.opts.Now()
	if err := Validate(&m); err != nil {
		return nil, err
	}
	bucketFor(s, s.meals, m.UserID).append(m)
	return &m, nil
}

// ---------- exercises ----------

func (s *MemoryStore) ListExercises(ctx context.Context, category string) ([]models.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Exercise, 0, len(s.exOrder))
	for _, id := range s.exOrder {
		e := s.exercises[id]
		if category == "" || e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exercises[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemoryStore) CreateExercise(ctx context.Context, in *models.Exercise) (*models.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := *in
	e.ID = newID()
	if err := Validate(&e); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.exercises[e.ID] = e
	s.exOrder = append(s.exOrder, e.ID)
	s.mu.Unlock()
	return &e, nil
}

// ---------- workouts ----------

func (s *MemoryStore) ListWorkoutsByUser(ctx context.Context, userID string) ([]models.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lookupBucket(s, s.workouts, userID).snapshot(), nil
}

func (s *MemoryStore) RecentWorkoutsByUser(ctx context.Context, userID string, limit int) ([]models.Workout, error) {
	all, err := s.ListWorkoutsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []models.Workout{}, nil
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemoryStore) GetWorkout(ctx context.Context, id string) (*models.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workoutByID[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *MemoryStore) CreateWorkout(ctx context.Context, in *models.Workout) (*models.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w := *in
	w.ID = newID()
	w.Date = s.opts.Now()
	if err := Validate(&w); err != nil {
		return nil, err
	}
	b := bucketFor(s, s.workouts, w.UserID)
	b.append(w)
	s.mu.Lock()
	s.workoutByID[w.ID] = w
	s.mu.Unlock()
	return &w, nil
}

func (s *MemoryStore) ListWorkoutSets(ctx context.Context, workoutID string) ([]models.WorkoutSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lookupBucket(s, s.sets, workoutID).snapshot(), nil
}

func (s *MemoryStore) CreateWorkoutSet(ctx context.Context, in *models.WorkoutSet) (*models.WorkoutSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set := *in
	set.ID = newID()
	if err := Validate(&set); err != nil {
		return nil, err
	}
	bucketFor(s, s.sets, set.WorkoutID).append(set)
	return &set, nil
}

// ---------- personal records ----------

func recordKey(userID, exerciseID string) string { return userID + "|" + exerciseID }

func (s *MemoryStore) ListPersonalRecords(ctx context.Context, userID string) ([]models.PersonalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.PersonalRecord{}
	for _, pr := range s.records {
		if pr.UserID == userID {
			out = append(out, pr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExerciseID < out[j].ExerciseID })
	return out, nil
}

func (s *MemoryStore) GetPersonalRecord(ctx context.Context, userID, exerciseID string) (*models.PersonalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	pr, ok := s.records[recordKey(userID, exerciseID)]
	if !ok {
		return nil, nil
	}
	return &pr, nil
}

func (s *MemoryStore) UpsertPersonalRecord(ctx context.Context, in *models.PersonalRecord) (*models.PersonalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pr := *in
	pr.Date = s.opts.Now()
	if pr.ID == "" {
		pr.ID = newID()
	}
	if err := Validate(&pr); err != nil {
		return nil, err
	}
	key := recordKey(pr.UserID, pr.ExerciseID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok {
		pr.ID = existing.ID
	}
	s.records[key] = pr
	return &pr, nil
}

func (s *MemoryStore) RaisePersonalRecord(ctx context.Context, in *models.PersonalRecord) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	pr := *in
	pr.Date = s.opts.Now()
	pr.ID = newID()
	if err := Validate(&pr); err != nil {
		return false, err
	}
	key := recordKey(pr.UserID, pr.ExerciseID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok {
		if !beats(pr, existing) {
			return false, nil
		}
		pr.ID = existing.ID
	}
	s.records[key] = pr
	return true, nil
}

func beats(pr, current models.PersonalRecord) bool {
	return pr.Weight > current.Weight || (pr.Weight == current.Weight && pr.Reps > current.Reps)
}

// ---------- goals ----------

func (s *MemoryStore) GoalsByUser(ctx context.Context, userID string) (*models.DailyGoals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[userID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (s *MemoryStore) UpsertGoals(ctx context.Context, in *models.DailyGoals) (*models.DailyGoals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g := *in
	if g.ID == "" {
		g.ID = newID()
	}
	if err := Validate(&g); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.goals[g.UserID]; ok {
		g.ID = existing.ID
	}
	s.goals[g.UserID] = g
	return &g, nil
}
