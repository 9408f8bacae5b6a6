// Package clock provides an injectable time source pinned to the
// family's local time zone. All day-boundary and weekend decisions in
// the engine go through this package so tests can use a fixed clock.
package clock

import (
	"sync"
	"time"
)

// DateLayout - формат календарного дня (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Clock is the interface for time operations.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// RealClock wraps time.Now in a fixed location.
type RealClock struct {
	Loc *time.Location
}

func NewRealClock(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{Loc: loc}
}

func (c *RealClock) Now() time.Time            { return time.Now().In(c.Loc) }
func (c *RealClock) Location() *time.Location  { return c.Loc }

// MockClock is a test clock with controllable time.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *MockClock) Location() *time.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Location()
}

// Set jumps the mock clock to the given time.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves the mock clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Today returns the current calendar day in the clock's location.
func Today(c Clock) string {
	return c.Now().In(c.Location()).Format(DateLayout)
}

// DateOf converts an instant to a family-local calendar day.
func DateOf(c Clock, t time.Time) string {
	return t.In(c.Location()).Format(DateLayout)
}

// IsWeekend reports whether a YYYY-MM-DD day is Saturday or Sunday.
// Malformed input counts as a weekday.
func IsWeekend(c Clock, date string) bool {
	d, err := time.ParseInLocation(DateLayout, date, c.Location())
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
