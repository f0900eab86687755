package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fittrack/models"

	"github.com/google/uuid"
)

// Broadcaster delivers live events to a user's open sockets.
type Broadcaster interface {
	Broadcast(userID string, payload any) int
}

// Pusher delivers an out-of-band notification.
type Pusher interface {
	PushToUser(ctx context.Context, userID, title, body string, data map[string]string) error
}

const (
	EventProgressUpdated = "progress.updated"
	EventAlertCreated    = "alert.created"
)

// AlertBus turns progress changes into live events and goal alerts. Either
// sink may be nil.
type AlertBus struct {
	live Broadcaster
	push Pusher
	log  *slog.Logger
	now  func() time.Time
}

func NewAlertBus(live Broadcaster, push Pusher, log *slog.Logger) *AlertBus {
	if log == nil {
		log = slog.Default()
	}
	return &AlertBus{live: live, push: push, log: log, now: time.Now}
}

// ProgressChanged publishes the new summary and raises one alert per nutrient
// whose percentage reached 100 with this change.
func (b *AlertBus) ProgressChanged(ctx context.Context, userID string, before, after ProgressSummary) []models.Alert {
	if b == nil {
		return nil
	}
	if b.live != nil {
		b.live.Broadcast(userID, map[string]any{
			"kind":     EventProgressUpdated,
			"progress": after,
		})
	}

	var alerts []models.Alert
	crossed := func(name string, prev, next NutrientProgress) {
		if prev.Percentage >= 100 || next.Percentage < 100 {
			return
		}
		alerts = append(alerts, b.emit(ctx, userID, "goal",
			fmt.Sprintf("Daily %s goal reached: %.0f of %.0f", name, next.Consumed, next.Target)))
	}
	crossed("calorie", before.Calories, after.Calories)
	crossed("protein", before.Protein, after.Protein)
	return alerts
}

func (b *AlertBus) emit(ctx context.Context, userID, typ, message string) models.Alert {
	a := models.Alert{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: b.now(),
	}
	if b.live != nil {
		b.live.Broadcast(userID, map[string]any{
			"kind":  EventAlertCreated,
			"alert": a,
		})
	}
	if b.push != nil {
		if err := b.push.PushToUser(ctx, userID, "New Alert", message, map[string]string{
			"type": typ, "alertId": a.ID,
		}); err != nil {
			b.log.WarnContext(ctx, "push alert failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}
	return a
}
