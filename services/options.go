package services

import (
	"log/slog"
	"time"
)

// Options are shared by every service.
type Options struct {
	// StoreTimeout bounds each store call; zero disables the bound.
	StoreTimeout time.Duration
	Defaults     GoalDefaults
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Defaults == (GoalDefaults{}) {
		o.Defaults = DefaultGoals()
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
