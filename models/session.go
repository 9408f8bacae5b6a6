package models

import (
	"fmt"
	"time"
)

// Виды сессий.
const (
	SessionKindRegular    = "regular"
	SessionKindBonus      = "bonus"
	SessionKindPunishment = "punishment"
)

// Состояния жизненного цикла. CLOSED - терминальное состояние,
// дальше меняются только отдельные поля через Edit.
const (
	SessionStateActive = "active"
	SessionStateClosed = "closed"
)

// Session - единица учета экранного времени. Обычная сессия тратит
// дневную квоту, бонусная начисляет минуты сверх лимита, штрафная
// списывает квоту напрямую.
type Session struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UID     string `json:"uid" gorm:"uniqueIndex;size:64"`
	ChildID uint   `json:"child_id" gorm:"index:idx_sessions_child_date"`
	// Календарный день семьи в формате YYYY-MM-DD.
	Date  string `json:"date" gorm:"index:idx_sessions_child_date;size:10"`
	Kind  string `json:"kind" gorm:"size:16"`
	State string `json:"state" gorm:"size:16"`
	// Для regular - потраченные минуты; для bonus - длительность
	// активности; для punishment - списанные минуты.
	DurationMinutes   int        `json:"duration_minutes"`
	CountsTowardTotal bool       `json:"counts_toward_total"`
	App               string     `json:"app,omitempty"`
	Device            string     `json:"device,omitempty"`
	TimeStarted       *time.Time `json:"time_started,omitempty"`
	TimeEnded         *time.Time `json:"time_ended,omitempty"`
	BonusTimeAwarded  int        `json:"bonus_time_awarded,omitempty"`
	Reason            string     `json:"reason,omitempty"`
	UpdatedBy         string     `json:"updated_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (s *Session) IsActive() bool { return s.State == SessionStateActive }
func (s *Session) IsClosed() bool { return s.State == SessionStateClosed }

// ElapsedMinutes возвращает округленную длительность между
// TimeStarted и TimeEnded.
func (s *Session) ElapsedMinutes() int {
	if s.TimeStarted == nil || s.TimeEnded == nil {
		return 0
	}
	secs := s.TimeEnded.Sub(*s.TimeStarted).Seconds()
	return int(secs/60 + 0.5)
}

// Validate проверяет инварианты сессии перед записью в базу.
func (s *Session) Validate() error {
	switch s.Kind {
	case SessionKindRegular, SessionKindBonus, SessionKindPunishment:
	default:
		return fmt.Errorf("%w: unknown session kind %q", ErrValidation, s.Kind)
	}

	if s.DurationMinutes < 0 {
		return fmt.Errorf("%w: negative duration", ErrValidation)
	}

	switch s.State {
	case SessionStateActive:
		// Активной может быть только обычная сессия с запущенным таймером.
		if s.Kind != SessionKindRegular {
			return fmt.Errorf("%w: %s session cannot be active", ErrValidation, s.Kind)
		}
		if s.TimeStarted == nil {
			return fmt.Errorf("%w: active session without time_started", ErrValidation)
		}
		if s.TimeEnded != nil {
			return fmt.Errorf("%w: active session with time_ended", ErrValidation)
		}
	case SessionStateClosed:
		// Закрытая сессия либо имеет обе временные метки, либо ни одной
		// (мгновенная запись: quick-add, бонус, штраф).
		if (s.TimeStarted == nil) != (s.TimeEnded == nil) {
			return fmt.Errorf("%w: timestamps must be present together", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown session state %q", ErrValidation, s.State)
	}

	if s.Kind != SessionKindBonus && s.BonusTimeAwarded != 0 {
		return fmt.Errorf("%w: bonus_time_awarded on %s session", ErrValidation, s.Kind)
	}
	if s.Kind == SessionKindBonus && s.CountsTowardTotal {
		return fmt.Errorf("%w: bonus session cannot count toward total", ErrValidation)
	}

	return nil
}
