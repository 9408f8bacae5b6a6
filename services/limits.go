package services

import (
	"KidScreen/clock"
	"KidScreen/models"
)

// Откуда взялся лимит: из настроек ребенка или подставлено значение
// по умолчанию (настройки еще не заполнены). UI показывает разницу.
const (
	LimitSourceSettings = "settings"
	LimitSourceDefault  = "default"
)

// ResolvedLimits - действующие лимиты на конкретный день.
type ResolvedLimits struct {
	DailyTotal int            `json:"daily_total"`
	PerDevice  map[string]int `json:"per_device,omitempty"`
	PerApp     map[string]int `json:"per_app,omitempty"`
	Source     string         `json:"source"`
}

// LimitService выбирает блок лимитов будни/выходные для ребенка.
type LimitService struct {
	Clock clock.Clock
}

func NewLimitService(clk clock.Clock) *LimitService {
	return &LimitService{Clock: clk}
}

// ResolveLimits возвращает лимиты ребенка на указанный день.
// Отсутствующий dailyTotal не ошибка: подставляется
// models.DefaultDailyTotalMinutes с пометкой source=default.
func (s *LimitService) ResolveLimits(child models.Child, date string) ResolvedLimits {
	block := child.Settings.Limits.Weekday
	if clock.IsWeekend(s.Clock, date) {
		block = child.Settings.Limits.Weekend
	}

	resolved := ResolvedLimits{
		PerDevice: block.PerDevice,
		PerApp:    block.PerApp,
	}
	if block.DailyTotal != nil {
		resolved.DailyTotal = *block.DailyTotal
		resolved.Source = LimitSourceSettings
	} else {
		resolved.DailyTotal = models.DefaultDailyTotalMinutes
		resolved.Source = LimitSourceDefault
	}
	return resolved
}

// ResolveBonusRatio возвращает коэффициент начисления бонусных минут
// для активности; nil - активность неизвестна или выключена.
func (s *LimitService) ResolveBonusRatio(child models.Child, activityID string) *float64 {
	activity, ok := child.Settings.BonusActivities[activityID]
	if !ok || !activity.Enabled {
		return nil
	}
	ratio := activity.Ratio
	return &ratio
}
