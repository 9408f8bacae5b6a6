package services

import (
	"fmt"
	"time"

	"KidScreen/clock"
	"KidScreen/models"
)

// BedtimeService определяет, попадает ли момент времени в окно сна
// ребенка. Окно через полночь (например 21:30-07:00) - штатный случай.
type BedtimeService struct {
	Clock clock.Clock
}

func NewBedtimeService(clk clock.Clock) *BedtimeService {
	return &BedtimeService{Clock: clk}
}

// InRestWindow - true, если instant лежит в окне сна. Расписание
// будни/выходные выбирается по календарному дню самого instant:
// пятница 23:30 идет по будничному окну, суббота 00:30 - уже по
// выходному.
func (s *BedtimeService) InRestWindow(child models.Child, instant time.Time) bool {
	local := instant.In(s.Clock.Location())
	date := local.Format(clock.DateLayout)

	window := child.Settings.Bedtime.Weekday
	if clock.IsWeekend(s.Clock, date) {
		window = child.Settings.Bedtime.Weekend
	}
	if window == nil {
		// Окно не настроено - ребенок никогда не "в режиме сна".
		return false
	}

	bed, err := parseClockMinutes(window.Bedtime)
	if err != nil {
		return false
	}
	wake, err := parseClockMinutes(window.WakeTime)
	if err != nil {
		return false
	}

	nowMin := local.Hour()*60 + local.Minute()

	if bed > wake {
		// Окно через полночь: внутри с момента отбоя и строго до
		// подъема - ровно в wakeTime ребенок уже свободен.
		return nowMin >= bed || nowMin < wake
	}
	// Дневное окно: границы включительно.
	return nowMin >= bed && nowMin <= wake
}

// InRestWindowNow - то же для текущего момента часов.
func (s *BedtimeService) InRestWindowNow(child models.Child) bool {
	return s.InRestWindow(child, s.Clock.Now())
}

// parseClockMinutes разбирает "HH:mm" в минуты от полуночи.
func parseClockMinutes(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("bad clock time %q: %w", v, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
