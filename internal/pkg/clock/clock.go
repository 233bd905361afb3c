package clock

import "time"

// Clock supplies the current time to services. Business rules never read
// time.Now directly so tests can pin "today" to a fixed date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

// Day truncates t to midnight UTC. All leave dates are day-granular.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the clock's current date at day granularity.
func Today(c Clock) time.Time {
	return Day(c.Now())
}
