package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []map[string]any
}

func (f *fakeBroadcaster) Broadcast(_ string, payload any) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, payload.(map[string]any))
	return 1
}

func (f *fakeBroadcaster) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e["kind"].(string))
	}
	return out
}

type fakePusher struct {
	messages []string
	err      error
}

func (f *fakePusher) PushToUser(_ context.Context, _, _, body string, _ map[string]string) error {
	f.messages = append(f.messages, body)
	return f.err
}

func summary(calPct, protPct float64) ProgressSummary {
	return ProgressSummary{
		Calories: NutrientProgress{Consumed: calPct * 23, Target: 2300, Percentage: calPct},
		Protein:  NutrientProgress{Consumed: protPct * 1.8, Target: 180, Percentage: protPct},
	}
}

func TestAlertBus_AlertsOnlyWhenGoalIsCrossed(t *testing.T) {
	live := &fakeBroadcaster{}
	push := &fakePusher{}
	bus := NewAlertBus(live, push, nil)
	ctx := context.Background()

	alerts := bus.ProgressChanged(ctx, "u1", summary(40, 90), summary(60, 100))
	require.Len(t, alerts, 1)
	assert.Equal(t, "goal", alerts[0].Type)
	assert.Contains(t, alerts[0].Message, "protein")
	assert.Equal(t, []string{EventProgressUpdated, EventAlertCreated}, live.kinds())
	assert.Len(t, push.messages, 1)

	// already past the goal: no second alert
	alerts = bus.ProgressChanged(ctx, "u1", summary(60, 100), summary(100, 100))
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "calorie")

	alerts = bus.ProgressChanged(ctx, "u1", summary(100, 100), summary(100, 100))
	assert.Empty(t, alerts)
}

func TestAlertBus_PushFailureIsNotFatal(t *testing.T) {
	push := &fakePusher{err: errors.New("throttled")}
	bus := NewAlertBus(nil, push, nil)

	alerts := bus.ProgressChanged(context.Background(), "u1", summary(0, 0), summary(100, 100))
	assert.Len(t, alerts, 2)
	assert.Len(t, push.messages, 2)
}
