package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fittrack/models"
	"fittrack/storage"
	"fittrack/utils"
)

// LabelSource names what is visible in an image.
type LabelSource interface {
	Labels(ctx context.Context, dataURI string) ([]string, error)
}

// Recognition is a photo's labels plus the catalog options they point at.
type Recognition struct {
	Labels  []string            `json:"labels"`
	Matches []models.MealOption `json:"matches"`
}

// labels too broad to narrow the catalog
var genericLabels = map[string]bool{
	"food": true, "meal": true, "dish": true, "plant": true, "produce": true,
	"lunch": true, "dinner": true, "breakfast": true, "bowl": true, "plate": true,
	"cuisine": true, "vegetable": true,
}

type RecognitionService struct {
	store  storage.Store
	opts   Options
	labels LabelSource
}

// NewRecognitionService returns a service that answers ErrFeatureDisabled
// when labels is nil.
func NewRecognitionService(store storage.Store, opts Options, labels LabelSource) *RecognitionService {
	return &RecognitionService{store: store, opts: opts.withDefaults(), labels: labels}
}

// Recognize labels a meal photo and returns the options whose name,
// description or category mention one of the labels.
func (s *RecognitionService) Recognize(ctx context.Context, dataURI string) (*Recognition, error) {
	if s.labels == nil {
		return nil, fmt.Errorf("meal recognition: %w", ErrFeatureDisabled)
	}
	labels, err := s.labels.Labels(ctx, dataURI)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidDataURI) {
			return nil, storage.NewValidationError("image", "datauri")
		}
		return nil, fmt.Errorf("meal recognition: %w", err)
	}

	options, err := bounded(ctx, s.opts.StoreTimeout, "list meal options", func(c context.Context) ([]models.MealOption, error) {
		return s.store.ListMealOptions(c, "")
	})
	if err != nil {
		return nil, err
	}
	return &Recognition{Labels: labels, Matches: MatchOptions(labels, options)}, nil
}

// MatchOptions keeps options mentioning any specific label, in catalog order.
func MatchOptions(labels []string, options []models.MealOption) []models.MealOption {
	terms := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if len(l) < 3 || genericLabels[l] {
			continue
		}
		terms = append(terms, l)
	}

	out := []models.MealOption{}
	for _, o := range options {
		text := strings.ToLower(o.Name + " " + o.Description + " " + o.Category)
		for _, t := range terms {
			if strings.Contains(text, t) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
