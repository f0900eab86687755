package storage

import (
	"context"
	"testing"
	"time"

	"fittrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T, opts Options) Store {
		return NewMemoryStore(opts)
	})
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.CreateLoggedMeal(ctx, &models.LoggedMeal{UserID: "u1", CustomMealName: ptr("x"), MealType: models.MealTypeSnack})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_DayUsesConfiguredZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC on the 9th is already the 10th in Kolkata.
	clock := newFakeClock(time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC))
	s := NewMemoryStore(Options{Location: kolkata, Now: clock.Now})
	ctx := context.Background()

	_, err = s.CreateLoggedMeal(ctx, &models.LoggedMeal{UserID: "u1", CustomMealName: ptr("late"), MealType: models.MealTypeDinner})
	require.NoError(t, err)

	clock.Set(time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC))
	meals, err := s.TodaysMealsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, meals, 1)
}
