package utils

import "time"

const DateLayout = "2006-01-02"

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns the half-open window [start, end) covering t's calendar
// day in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := DayStart(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// StartOfWeek returns the Monday midnight of t's week in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	tt := DayStart(t, loc)
	wd := int(tt.Weekday())
	if wd == 0 {
		wd = 7
	}
	return tt.AddDate(0, 0, -(wd - 1))
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
