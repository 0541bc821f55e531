package clock

import (
	"time"

	"github.com/jinzhu/now"
)

// Clock supplies "now" so date-boundary logic is deterministic in
// tests. Calendar days are [local midnight, next local midnight).
type Clock interface {
	Now() time.Time
}

// System is the wall clock in server-local time.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Test use only.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// DayBounds returns the first and last instants of t's calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	n := now.With(t)
	return n.BeginningOfDay(), n.EndOfDay()
}

// TodayBounds returns the bounds of the clock's current calendar day.
func TodayBounds(c Clock) (time.Time, time.Time) {
	return DayBounds(c.Now())
}

// DateString formats t as the calendar-day key used by daily grouping.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
