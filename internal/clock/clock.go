package clock

import "time"

// Clock abstracts time access so that schedule-sensitive code
// (time-of-day multipliers, lastCalculated stamps) is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the real wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FakeClock returns a fixed time and can be advanced manually in tests.
type FakeClock struct {
	Current time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{Current: t}
}

func (c *FakeClock) Now() time.Time {
	return c.Current
}

// Advance moves the fake clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
