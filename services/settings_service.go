package services

import (
	"errors"
	"fmt"

	"KidScreen/clock"
	"KidScreen/models"
	"KidScreen/repositories"
)

// SettingsService применяет типизированные патчи настроек и
// рассылает setting_changed по каждому измененному блоку.
type SettingsService struct {
	FamilyRepo repositories.FamilyRepository
	Clock      clock.Clock
	Publisher  EventPublisher
}

func NewSettingsService(familyRepo repositories.FamilyRepository, clk clock.Clock, publisher EventPublisher) *SettingsService {
	return &SettingsService{FamilyRepo: familyRepo, Clock: clk, Publisher: publisher}
}

func (s *SettingsService) validatePatch(patch models.SettingsPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: empty settings patch", models.ErrValidation)
	}
	for _, w := range []*models.BedtimeWindow{patch.WeekdayBedtime, patch.WeekendBedtime} {
		if w == nil {
			continue
		}
		if _, err := parseClockMinutes(w.Bedtime); err != nil {
			return fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		if _, err := parseClockMinutes(w.WakeTime); err != nil {
			return fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
	}
	for _, dl := range []*models.DayLimits{patch.WeekdayLimits, patch.WeekendLimits} {
		if dl != nil && dl.DailyTotal != nil && *dl.DailyTotal < 0 {
			return fmt.Errorf("%w: negative daily total", models.ErrValidation)
		}
	}
	if patch.BonusActivities != nil {
		for id, a := range *patch.BonusActivities {
			if a.Ratio < 0 {
				return fmt.Errorf("%w: negative ratio for activity %q", models.ErrValidation, id)
			}
		}
	}
	return nil
}

// UpdateChildSettings применяет патч к настройкам одного ребенка.
func (s *SettingsService) UpdateChildSettings(actor models.Actor, familyUID, childUID string, patch models.SettingsPatch) (models.Child, error) {
	if !actor.Privileged() {
		return models.Child{}, models.ErrPasscodeRequired
	}
	if err := s.validatePatch(patch); err != nil {
		return models.Child{}, err
	}

	family, err := s.FamilyRepo.FindByUID(familyUID)
	if err != nil {
		return models.Child{}, err
	}
	child, err := s.FamilyRepo.FindChildByUID(family.ID, childUID)
	if err != nil {
		return models.Child{}, err
	}

	changed := patch.Apply(&child.Settings)
	if err := s.FamilyRepo.SaveChild(child); err != nil {
		return models.Child{}, err
	}
	if err := s.FamilyRepo.Touch(family.ID); err != nil {
		return models.Child{}, err
	}

	s.publishChanges(family.UID, childUID, changed)
	return child, nil
}

// UpdateMasterSettings применяет патч к общим настройкам семьи и
// транслирует его на каждого ребенка. Запись семьи идет через CAS;
// при проигрыше гонки один повтор с перечитыванием.
func (s *SettingsService) UpdateMasterSettings(actor models.Actor, familyUID string, patch models.SettingsPatch) (models.Family, error) {
	if !actor.Privileged() {
		return models.Family{}, models.ErrPasscodeRequired
	}
	if err := s.validatePatch(patch); err != nil {
		return models.Family{}, err
	}

	var family models.Family
	var changed []string
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		family, err = s.FamilyRepo.FindByUID(familyUID)
		if err != nil {
			return models.Family{}, err
		}
		changed = patch.Apply(&family.MasterSettings)
		family, err = s.FamilyRepo.SaveFamilyCAS(family)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrVersionConflict) {
			return models.Family{}, err
		}
	}
	if err != nil {
		return models.Family{}, err
	}

	// Трансляция на всех детей семьи.
	children, err := s.FamilyRepo.ListChildren(family.ID)
	if err != nil {
		return models.Family{}, err
	}
	for _, child := range children {
		patch.Apply(&child.Settings)
		if err := s.FamilyRepo.SaveChild(child); err != nil {
			return models.Family{}, err
		}
	}

	s.publishChanges(family.UID, "", changed)
	return family, nil
}

func (s *SettingsService) publishChanges(familyUID, childUID string, blocks []string) {
	if s.Publisher == nil {
		return
	}
	for _, block := range blocks {
		s.Publisher.PublishEvent(models.FamilyEvent{
			Type:      models.EventSettingChanged,
			FamilyUID: familyUID,
			ChildUID:  childUID,
			Setting:   block,
			Timestamp: s.Clock.Now().UTC(),
		})
	}
}
