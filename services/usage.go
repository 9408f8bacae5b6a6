package services

import "KidScreen/models"

// UsageService считает производные метрики по списку сессий ребенка.
// Все функции чистые: никакого скрытого состояния, результат полностью
// определяется сессиями и настройками на дату.
type UsageService struct {
	Limits *LimitService
}

func NewUsageService(limits *LimitService) *UsageService {
	return &UsageService{Limits: limits}
}

// UsageSummary - снимок использования на один день.
type UsageSummary struct {
	Date             string `json:"date"`
	UsedMinutes      int    `json:"used_minutes"`
	BonusEarned      int    `json:"bonus_earned"`
	EffectiveLimit   int    `json:"effective_limit"`
	RemainingMinutes int    `json:"remaining_minutes"`
	UsagePercentage  int    `json:"usage_percentage"`
	LimitSource      string `json:"limit_source"`
}

// UsedTime - сумма минут за день по сессиям с countsTowardTotal.
// Штрафные сессии входят сюда же: отдельного "штрафного" пула нет,
// они отличимы только по kind.
func (s *UsageService) UsedTime(sessions []models.Session, date string) int {
	total := 0
	for _, sess := range sessions {
		if sess.Date == date && sess.CountsTowardTotal {
			total += sess.DurationMinutes
		}
	}
	return total
}

// BonusEarned - бонусные минуты, начисленные за день.
func (s *UsageService) BonusEarned(sessions []models.Session, date string) int {
	total := 0
	for _, sess := range sessions {
		if sess.Date == date && sess.Kind == models.SessionKindBonus {
			total += sess.BonusTimeAwarded
		}
	}
	return total
}

// EffectiveDailyLimit - базовая квота плюс заработанные бонусы.
func (s *UsageService) EffectiveDailyLimit(child models.Child, sessions []models.Session, date string) int {
	limits := s.Limits.ResolveLimits(child, date)
	return limits.DailyTotal + s.BonusEarned(sessions, date)
}

// RemainingTime - остаток квоты, для отображения никогда не
// отрицательный (штрафы могут увести расход за лимит).
func (s *UsageService) RemainingTime(child models.Child, sessions []models.Session, date string) int {
	remaining := s.EffectiveDailyLimit(child, sessions, date) - s.UsedTime(sessions, date)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UsagePercentage - процент израсходованной квоты, 0..100.
// Нулевой эффективный лимит дает 0%.
func (s *UsageService) UsagePercentage(child models.Child, sessions []models.Session, date string) int {
	limit := s.EffectiveDailyLimit(child, sessions, date)
	if limit <= 0 {
		return 0
	}
	pct := (s.UsedTime(sessions, date)*100 + limit/2) / limit
	if pct > 100 {
		return 100
	}
	return pct
}

// Summary собирает все метрики одним вызовом для выдачи наружу.
func (s *UsageService) Summary(child models.Child, sessions []models.Session, date string) UsageSummary {
	limits := s.Limits.ResolveLimits(child, date)
	return UsageSummary{
		Date:             date,
		UsedMinutes:      s.UsedTime(sessions, date),
		BonusEarned:      s.BonusEarned(sessions, date),
		EffectiveLimit:   s.EffectiveDailyLimit(child, sessions, date),
		RemainingMinutes: s.RemainingTime(child, sessions, date),
		UsagePercentage:  s.UsagePercentage(child, sessions, date),
		LimitSource:      limits.Source,
	}
}
