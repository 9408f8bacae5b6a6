package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateActiveSession(t *testing.T) {
	started := time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)

	ok := Session{
		Kind: SessionKindRegular, State: SessionStateActive,
		TimeStarted: &started, CountsTowardTotal: true,
	}
	assert.NoError(t, ok.Validate())

	// Активная без time_started - нарушение
	bad := Session{Kind: SessionKindRegular, State: SessionStateActive}
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	// Бонус не бывает активным
	bonus := Session{Kind: SessionKindBonus, State: SessionStateActive, TimeStarted: &started}
	assert.ErrorIs(t, bonus.Validate(), ErrValidation)
}

func TestValidateClosedTimestampsTogether(t *testing.T) {
	started := time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)
	ended := started.Add(30 * time.Minute)

	closed := Session{
		Kind: SessionKindRegular, State: SessionStateClosed,
		TimeStarted: &started, TimeEnded: &ended, DurationMinutes: 30,
	}
	assert.NoError(t, closed.Validate())

	instant := Session{
		Kind: SessionKindPunishment, State: SessionStateClosed, DurationMinutes: 15,
		CountsTowardTotal: true,
	}
	assert.NoError(t, instant.Validate())

	half := Session{
		Kind: SessionKindRegular, State: SessionStateClosed, TimeEnded: &ended,
	}
	assert.ErrorIs(t, half.Validate(), ErrValidation)
}

func TestValidateKindFieldCrossChecks(t *testing.T) {
	// bonus_time_awarded только у бонусных
	regular := Session{
		Kind: SessionKindRegular, State: SessionStateClosed,
		DurationMinutes: 10, BonusTimeAwarded: 5,
	}
	assert.ErrorIs(t, regular.Validate(), ErrValidation)

	// Бонус не может тратить квоту
	bonus := Session{
		Kind: SessionKindBonus, State: SessionStateClosed,
		BonusTimeAwarded: 5, CountsTowardTotal: true,
	}
	assert.ErrorIs(t, bonus.Validate(), ErrValidation)

	negative := Session{Kind: SessionKindRegular, State: SessionStateClosed, DurationMinutes: -1}
	assert.ErrorIs(t, negative.Validate(), ErrValidation)

	unknown := Session{Kind: "detention", State: SessionStateClosed}
	assert.ErrorIs(t, unknown.Validate(), ErrValidation)
}

func TestElapsedMinutesRounds(t *testing.T) {
	started := time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)

	endAt := func(d time.Duration) *time.Time {
		e := started.Add(d)
		return &e
	}

	s := Session{TimeStarted: &started}

	s.TimeEnded = endAt(30*time.Minute + 29*time.Second)
	assert.Equal(t, 30, s.ElapsedMinutes())

	s.TimeEnded = endAt(30*time.Minute + 30*time.Second)
	assert.Equal(t, 31, s.ElapsedMinutes())

	s.TimeEnded = nil
	assert.Equal(t, 0, s.ElapsedMinutes())
}

func TestSettingsPatchApply(t *testing.T) {
	settings := ChildSettings{
		Bedtime: BedtimeRestrictions{
			Weekday: &BedtimeWindow{Bedtime: "21:30", WakeTime: "07:00"},
		},
	}

	daily := 75
	patch := SettingsPatch{
		WeekdayLimits:       &DayLimits{DailyTotal: &daily},
		ClearWeekdayBedtime: true,
	}

	changed := patch.Apply(&settings)
	assert.ElementsMatch(t, []string{"limits.weekday", "bedtime.weekday"}, changed)
	assert.Equal(t, 75, *settings.Limits.Weekday.DailyTotal)
	assert.Nil(t, settings.Bedtime.Weekday)

	assert.True(t, SettingsPatch{}.IsEmpty())
	assert.False(t, patch.IsEmpty())
}
