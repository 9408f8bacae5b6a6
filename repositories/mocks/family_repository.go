package mocks

import (
	"KidScreen/models"

	"github.com/stretchr/testify/mock"
)

// FamilyRepository - мок для тестов сервисов.
type FamilyRepository struct {
	mock.Mock
}

func (m *FamilyRepository) FindByUID(uid string) (models.Family, error) {
	args := m.Called(uid)
	return args.Get(0).(models.Family), args.Error(1)
}

func (m *FamilyRepository) FindGuardianByUID(uid string) (models.Guardian, error) {
	args := m.Called(uid)
	return args.Get(0).(models.Guardian), args.Error(1)
}

func (m *FamilyRepository) ListGuardians(familyID uint) ([]models.Guardian, error) {
	args := m.Called(familyID)
	return args.Get(0).([]models.Guardian), args.Error(1)
}

func (m *FamilyRepository) FindChildByUID(familyID uint, uid string) (models.Child, error) {
	args := m.Called(familyID, uid)
	return args.Get(0).(models.Child), args.Error(1)
}

func (m *FamilyRepository) ListChildren(familyID uint) ([]models.Child, error) {
	args := m.Called(familyID)
	return args.Get(0).([]models.Child), args.Error(1)
}

func (m *FamilyRepository) SaveChild(child models.Child) error {
	args := m.Called(child)
	return args.Error(0)
}

func (m *FamilyRepository) SaveFamilyCAS(family models.Family) (models.Family, error) {
	args := m.Called(family)
	return args.Get(0).(models.Family), args.Error(1)
}

func (m *FamilyRepository) Touch(familyID uint) error {
	args := m.Called(familyID)
	return args.Error(0)
}
