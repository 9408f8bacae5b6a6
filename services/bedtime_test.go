package services

import (
	"testing"
	"time"

	"KidScreen/clock"
	"KidScreen/models"

	"github.com/stretchr/testify/assert"
)

func childWithBedtime(weekday, weekend *models.BedtimeWindow) models.Child {
	return models.Child{
		ID:   1,
		UID:  "child-1",
		Name: "Alice",
		Settings: models.ChildSettings{
			Bedtime: models.BedtimeRestrictions{Weekday: weekday, Weekend: weekend},
		},
	}
}

func TestInRestWindowOvernight(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC))
	svc := NewBedtimeService(clk)
	child := childWithBedtime(&models.BedtimeWindow{Bedtime: "21:30", WakeTime: "07:00"}, nil)

	// Пятница 2025-06-06 - будний день
	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 6, h, m, 0, 0, time.UTC)
	}

	assert.True(t, svc.InRestWindow(child, at(23, 0)))
	assert.True(t, svc.InRestWindow(child, at(6, 0)))
	assert.False(t, svc.InRestWindow(child, at(12, 0)))
	assert.False(t, svc.InRestWindow(child, at(7, 0))) // ровно на подъеме - уже свободен
	assert.True(t, svc.InRestWindow(child, at(6, 59)))
	assert.True(t, svc.InRestWindow(child, at(21, 30))) // ровно на отбое - уже внутри
	assert.False(t, svc.InRestWindow(child, at(21, 29)))
}

func TestInRestWindowSameDay(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC))
	svc := NewBedtimeService(clk)
	// "Тихий час" 13:00-15:00, границы включительно
	child := childWithBedtime(&models.BedtimeWindow{Bedtime: "13:00", WakeTime: "15:00"}, nil)

	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 6, h, m, 0, 0, time.UTC)
	}

	assert.False(t, svc.InRestWindow(child, at(12, 59)))
	assert.True(t, svc.InRestWindow(child, at(13, 0)))
	assert.True(t, svc.InRestWindow(child, at(14, 0)))
	assert.True(t, svc.InRestWindow(child, at(15, 0)))
	assert.False(t, svc.InRestWindow(child, at(15, 1)))
}

func TestInRestWindowNoRestriction(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 6, 23, 0, 0, 0, time.UTC))
	svc := NewBedtimeService(clk)
	child := childWithBedtime(nil, nil)

	assert.False(t, svc.InRestWindowNow(child))
}

// Переход через полночь меняет расписание: пятница 23:30 идет по
// будничному окну, суббота 00:30 - по выходному.
func TestInRestWindowScheduleFollowsCalendarDay(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC))
	svc := NewBedtimeService(clk)
	child := childWithBedtime(
		&models.BedtimeWindow{Bedtime: "21:30", WakeTime: "07:00"}, // будни
		&models.BedtimeWindow{Bedtime: "23:45", WakeTime: "09:00"}, // выходные
	)

	friday2330 := time.Date(2025, 6, 6, 23, 30, 0, 0, time.UTC)
	saturday0030 := time.Date(2025, 6, 7, 0, 30, 0, 0, time.UTC)
	saturday2330 := time.Date(2025, 6, 7, 23, 30, 0, 0, time.UTC)

	assert.True(t, svc.InRestWindow(child, friday2330))   // будничный отбой 21:30 уже прошел
	assert.True(t, svc.InRestWindow(child, saturday0030)) // выходное окно, до подъема 09:00
	assert.False(t, svc.InRestWindow(child, saturday2330)) // выходной отбой 23:45 еще не настал
}

func TestInRestWindowBadClockString(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 6, 23, 0, 0, 0, time.UTC))
	svc := NewBedtimeService(clk)
	child := childWithBedtime(&models.BedtimeWindow{Bedtime: "25:99", WakeTime: "07:00"}, nil)

	// Неразборчивое окно не должно запирать ребенка
	assert.False(t, svc.InRestWindowNow(child))
}
