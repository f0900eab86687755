package services

import (
	"sync"
	"testing"
	"time"

	"fittrack/storage"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func ptr[T any](v T) *T { return &v }

// monday 2025-03-10, 09:00 UTC
var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) (*storage.MemoryStore, *testClock, Options) {
	t.Helper()
	clock := &testClock{now: testNow}
	store := storage.NewMemoryStore(storage.Options{Location: time.UTC, Now: clock.Now})
	opts := Options{
		StoreTimeout: time.Second,
		Location:     time.UTC,
		Now:          clock.Now,
	}
	return store, clock, opts
}
