package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds_UsesConfiguredZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC on the 3rd is already 01:30 on the 4th in Kolkata
	ts := time.Date(2025, 3, 3, 20, 0, 0, 0, time.UTC)

	start, end := DayBounds(ts, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), end)

	start, end = DayBounds(ts, kolkata)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, kolkata), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestStartOfWeek_Monday(t *testing.T) {
	cases := map[string]struct {
		in   time.Time
		want time.Time
	}{
		"sunday":    {time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		"monday":    {time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		"wednesday": {time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, StartOfWeek(tc.in, time.UTC))
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-03-04", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("04/03/2025", time.UTC)
	assert.Error(t, err)
}
