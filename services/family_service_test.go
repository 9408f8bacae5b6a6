package services

import (
	"testing"
	"time"

	"KidScreen/clock"
	"KidScreen/models"
	"KidScreen/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func familyServiceFixture(t *testing.T) (*FamilyService, *mocks.FamilyRepository, *mocks.SessionRepository) {
	t.Helper()
	familyRepo := new(mocks.FamilyRepository)
	sessionRepo := new(mocks.SessionRepository)
	clk := clock.NewMockClock(time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC))
	usage := NewUsageService(NewLimitService(clk))

	hash, err := bcrypt.GenerateFromPassword([]byte("4242"), bcrypt.MinCost)
	assert.NoError(t, err)

	return NewFamilyService(familyRepo, sessionRepo, usage, clk, hash), familyRepo, sessionRepo
}

func TestGetFamilyStateGuardianSeesEverything(t *testing.T) {
	svc, familyRepo, sessionRepo := familyServiceFixture(t)

	family := models.Family{ID: 10, UID: "fam-1"}
	guardians := []models.Guardian{{ID: 5, UID: "guardian-1", FamilyID: 10}}
	children := []models.Child{
		{ID: 1, UID: "child-1", FamilyID: 10, Settings: models.ChildSettings{
			Limits: models.Limits{Weekday: models.DayLimits{DailyTotal: intPtr(90)}},
		}},
		{ID: 2, UID: "child-2", FamilyID: 10},
	}

	familyRepo.On("FindByUID", "fam-1").Return(family, nil)
	familyRepo.On("ListGuardians", uint(10)).Return(guardians, nil)
	familyRepo.On("ListChildren", uint(10)).Return(children, nil)
	sessionRepo.On("ListByChild", uint(1)).Return([]models.Session{
		{Date: "2025-06-06", Kind: models.SessionKindRegular, State: models.SessionStateClosed,
			DurationMinutes: 30, CountsTowardTotal: true},
	}, nil)
	sessionRepo.On("ListByChild", uint(2)).Return([]models.Session{}, nil)

	state, err := svc.GetFamilyState("fam-1", models.UserTypeGuardian, "guardian-1")
	assert.NoError(t, err)

	assert.Len(t, state.Guardians, 1)
	assert.Len(t, state.Children, 2)
	// Сводка на сегодня посчитана на месте
	assert.Equal(t, 30, state.Children[0].Usage.UsedMinutes)
	assert.Equal(t, 60, state.Children[0].Usage.RemainingMinutes)
}

func TestGetFamilyStateChildSeesOnlySelf(t *testing.T) {
	svc, familyRepo, sessionRepo := familyServiceFixture(t)

	family := models.Family{ID: 10, UID: "fam-1"}
	child := models.Child{ID: 1, UID: "child-1", FamilyID: 10}

	familyRepo.On("FindByUID", "fam-1").Return(family, nil)
	familyRepo.On("FindChildByUID", uint(10), "child-1").Return(child, nil)
	sessionRepo.On("ListByChild", uint(1)).Return([]models.Session{}, nil)

	state, err := svc.GetFamilyState("fam-1", models.UserTypeChild, "child-1")
	assert.NoError(t, err)

	// Список опекунов ребенку не отдаем
	assert.Empty(t, state.Guardians)
	if assert.Len(t, state.Children, 1) {
		assert.Equal(t, "child-1", state.Children[0].Child.UID)
	}
}

func TestGetFamilyStateUnknownFamily(t *testing.T) {
	svc, familyRepo, _ := familyServiceFixture(t)
	familyRepo.On("FindByUID", "nope").Return(models.Family{}, models.ErrFamilyNotFound)

	_, err := svc.GetFamilyState("nope", models.UserTypeGuardian, "guardian-1")
	assert.ErrorIs(t, err, models.ErrFamilyNotFound)
}

func TestChallengePasscode(t *testing.T) {
	svc, _, _ := familyServiceFixture(t)

	assert.True(t, svc.ChallengePasscode("4242"))
	assert.False(t, svc.ChallengePasscode("0000"))
	assert.False(t, svc.ChallengePasscode(""))

	// Без настроенного кода повышение прав всегда отклоняется
	svc.PasscodeHash = nil
	assert.False(t, svc.ChallengePasscode("4242"))
}
