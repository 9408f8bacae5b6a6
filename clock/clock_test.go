package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func almaty(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Almaty")
	assert.NoError(t, err)
	return loc
}

func TestTodayUsesFamilyTimezone(t *testing.T) {
	loc := almaty(t)
	// 2025-06-06 23:30 UTC = 2025-06-07 в Алматы (UTC+5)
	clk := NewMockClock(time.Date(2025, 6, 6, 23, 30, 0, 0, time.UTC).In(loc))

	assert.Equal(t, "2025-06-07", Today(clk))
}

func TestDateOfConvertsInstant(t *testing.T) {
	loc := almaty(t)
	clk := NewMockClock(time.Date(2025, 6, 6, 12, 0, 0, 0, loc))

	utcMidnightish := time.Date(2025, 6, 6, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-07", DateOf(clk, utcMidnightish))
}

func TestIsWeekend(t *testing.T) {
	clk := NewMockClock(time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC))

	assert.False(t, IsWeekend(clk, "2025-06-06")) // пятница
	assert.True(t, IsWeekend(clk, "2025-06-07"))  // суббота
	assert.True(t, IsWeekend(clk, "2025-06-08"))  // воскресенье
	assert.False(t, IsWeekend(clk, "2025-06-09")) // понедельник
	assert.False(t, IsWeekend(clk, "not-a-date"))
}

func TestMockClockAdvance(t *testing.T) {
	start := time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)

	clk.Advance(42 * time.Minute)
	assert.Equal(t, start.Add(42*time.Minute), clk.Now())

	clk.Set(start)
	assert.Equal(t, start, clk.Now())
}
