package services

import (
	"testing"
	"time"

	"KidScreen/clock"
	"KidScreen/models"
	"KidScreen/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func settingsFixture() (*SettingsService, *mocks.FamilyRepository, *capturingPublisher) {
	familyRepo := new(mocks.FamilyRepository)
	publisher := &capturingPublisher{}
	clk := clock.NewMockClock(time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC))
	return NewSettingsService(familyRepo, clk, publisher), familyRepo, publisher
}

func TestUpdateChildSettingsAppliesPatch(t *testing.T) {
	svc, familyRepo, publisher := settingsFixture()

	family := models.Family{ID: 10, UID: "fam-1"}
	child := models.Child{ID: 1, UID: "child-1", FamilyID: 10}

	familyRepo.On("FindByUID", "fam-1").Return(family, nil)
	familyRepo.On("FindChildByUID", uint(10), "child-1").Return(child, nil)

	var savedChild models.Child
	familyRepo.On("SaveChild", mock.AnythingOfType("models.Child")).
		Run(func(args mock.Arguments) { savedChild = args.Get(0).(models.Child) }).
		Return(nil)
	familyRepo.On("Touch", uint(10)).Return(nil)

	patch := models.SettingsPatch{
		WeekdayLimits:  &models.DayLimits{DailyTotal: intPtr(60)},
		WeekdayBedtime: &models.BedtimeWindow{Bedtime: "21:00", WakeTime: "07:30"},
	}

	updated, err := svc.UpdateChildSettings(guardianActor, "fam-1", "child-1", patch)
	assert.NoError(t, err)

	assert.Equal(t, 60, *updated.Settings.Limits.Weekday.DailyTotal)
	assert.Equal(t, "21:00", updated.Settings.Bedtime.Weekday.Bedtime)
	assert.Equal(t, savedChild.Settings, updated.Settings)

	// По событию на каждый измененный блок
	assert.Len(t, publisher.events, 2)
	blocks := []string{publisher.events[0].Setting, publisher.events[1].Setting}
	assert.Contains(t, blocks, "limits.weekday")
	assert.Contains(t, blocks, "bedtime.weekday")
	for _, e := range publisher.events {
		assert.Equal(t, models.EventSettingChanged, e.Type)
		assert.Equal(t, "child-1", e.ChildUID)
	}
}

func TestUpdateChildSettingsValidation(t *testing.T) {
	svc, _, _ := settingsFixture()

	_, err := svc.UpdateChildSettings(guardianActor, "fam-1", "child-1", models.SettingsPatch{})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.UpdateChildSettings(guardianActor, "fam-1", "child-1", models.SettingsPatch{
		WeekdayBedtime: &models.BedtimeWindow{Bedtime: "25:00", WakeTime: "07:00"},
	})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.UpdateChildSettings(guardianActor, "fam-1", "child-1", models.SettingsPatch{
		WeekdayLimits: &models.DayLimits{DailyTotal: intPtr(-5)},
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateChildSettingsNeedsPrivilege(t *testing.T) {
	svc, _, _ := settingsFixture()

	_, err := svc.UpdateChildSettings(childActor, "fam-1", "child-1", models.SettingsPatch{
		WeekdayLimits: &models.DayLimits{DailyTotal: intPtr(60)},
	})
	assert.ErrorIs(t, err, models.ErrPasscodeRequired)
}

func TestUpdateMasterSettingsBroadcastsToChildren(t *testing.T) {
	svc, familyRepo, publisher := settingsFixture()

	family := models.Family{ID: 10, UID: "fam-1", Version: 3}
	children := []models.Child{
		{ID: 1, UID: "child-1", FamilyID: 10},
		{ID: 2, UID: "child-2", FamilyID: 10},
	}

	familyRepo.On("FindByUID", "fam-1").Return(family, nil)
	familyRepo.On("SaveFamilyCAS", mock.AnythingOfType("models.Family")).
		Return(models.Family{ID: 10, UID: "fam-1", Version: 4}, nil)
	familyRepo.On("ListChildren", uint(10)).Return(children, nil)

	var savedChildren []models.Child
	familyRepo.On("SaveChild", mock.AnythingOfType("models.Child")).
		Run(func(args mock.Arguments) { savedChildren = append(savedChildren, args.Get(0).(models.Child)) }).
		Return(nil)

	patch := models.SettingsPatch{WeekendLimits: &models.DayLimits{DailyTotal: intPtr(150)}}

	updated, err := svc.UpdateMasterSettings(guardianActor, "fam-1", patch)
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.Version)

	// Патч лег на каждого ребенка семьи
	assert.Len(t, savedChildren, 2)
	for _, c := range savedChildren {
		assert.Equal(t, 150, *c.Settings.Limits.Weekend.DailyTotal)
	}

	// Общесемейное событие без child_uid
	if assert.Len(t, publisher.events, 1) {
		assert.Equal(t, models.EventSettingChanged, publisher.events[0].Type)
		assert.Empty(t, publisher.events[0].ChildUID)
	}
}

func TestUpdateMasterSettingsRetriesOnVersionConflict(t *testing.T) {
	svc, familyRepo, _ := settingsFixture()

	family := models.Family{ID: 10, UID: "fam-1", Version: 3}
	familyRepo.On("FindByUID", "fam-1").Return(family, nil)

	// Первая запись проигрывает гонку, вторая проходит
	familyRepo.On("SaveFamilyCAS", mock.AnythingOfType("models.Family")).
		Return(models.Family{}, models.ErrVersionConflict).Once()
	familyRepo.On("SaveFamilyCAS", mock.AnythingOfType("models.Family")).
		Return(models.Family{ID: 10, UID: "fam-1", Version: 5}, nil).Once()
	familyRepo.On("ListChildren", uint(10)).Return([]models.Child{}, nil)

	patch := models.SettingsPatch{RequireApproval: boolPtr(true)}
	updated, err := svc.UpdateMasterSettings(guardianActor, "fam-1", patch)
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Version)
	familyRepo.AssertExpectations(t)
}

func boolPtr(v bool) *bool { return &v }
