package services

import (
	"context"
	"errors"

	"fittrack/models"
	"fittrack/storage"
	"fittrack/utils"
)

// MetricsInput is a body-composition reading. HeightCm is not stored; when
// given with Weight and no BMI, the BMI is derived from it.
type MetricsInput struct {
	models.UserMetrics
	HeightCm *float64 `json:"heightCm"`
}

type MetricsService struct {
	store storage.Store
	opts  Options
}

func NewMetricsService(store storage.Store, opts Options) *MetricsService {
	return &MetricsService{store: store, opts: opts.withDefaults()}
}

// withCategory fills the derived BMI band; it is never stored.
func withCategory(m *models.UserMetrics) {
	if m.BMI != nil {
		m.BMICategory = utils.BMICategory(*m.BMI)
	}
}

func (s *MetricsService) List(ctx context.Context, userID string) ([]models.UserMetrics, error) {
	out, err := bounded(ctx, s.opts.StoreTimeout, "list metrics", func(c context.Context) ([]models.UserMetrics, error) {
		return s.store.ListMetricsByUser(c, userID)
	})
	if err != nil {
		return nil, err
	}
	for i := range out {
		withCategory(&out[i])
	}
	return out, nil
}

// Latest returns storage.ErrNotFound when the user has no readings.
func (s *MetricsService) Latest(ctx context.Context, userID string) (*models.UserMetrics, error) {
	m, err := bounded(ctx, s.opts.StoreTimeout, "latest metrics", func(c context.Context) (*models.UserMetrics, error) {
		return s.store.LatestMetricsByUser(c, userID)
	})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, storage.ErrNotFound
	}
	withCategory(m)
	return m, nil
}

func (s *MetricsService) Create(ctx context.Context, userID string, in MetricsInput) (*models.UserMetrics, error) {
	if _, err := requireUser(ctx, s.store, s.opts.StoreTimeout, userID); err != nil {
		return nil, err
	}

	m := in.UserMetrics
	m.UserID = userID
	m.BMICategory = ""
	if m.BMI == nil && m.Weight != nil && in.HeightCm != nil {
		bmi, err := utils.CalculateBMI(*in.HeightCm, *m.Weight)
		if err != nil {
			if errors.Is(err, utils.ErrImplausibleBody) {
				return nil, storage.NewValidationError("heightCm", "range")
			}
			return nil, storage.NewValidationError("heightCm", "gt")
		}
		m.BMI = &bmi
	}

	created, err := bounded(ctx, s.opts.StoreTimeout, "create metrics", func(c context.Context) (*models.UserMetrics, error) {
		return s.store.CreateMetrics(c, &m)
	})
	if err != nil {
		return nil, err
	}
	withCategory(created)
	return created, nil
}
