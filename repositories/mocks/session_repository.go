package mocks

import (
	"KidScreen/models"

	"github.com/stretchr/testify/mock"
)

// SessionRepository - мок для тестов сервисов.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) FindByUID(childID uint, sessionUID string) (models.Session, error) {
	args := m.Called(childID, sessionUID)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *SessionRepository) ListByChild(childID uint) ([]models.Session, error) {
	args := m.Called(childID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *SessionRepository) ListByChildAndDate(childID uint, date string) ([]models.Session, error) {
	args := m.Called(childID, date)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *SessionRepository) Create(session models.Session) (models.Session, error) {
	args := m.Called(session)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *SessionRepository) Save(session models.Session) (models.Session, error) {
	args := m.Called(session)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *SessionRepository) Delete(childID uint, sessionUID string) error {
	args := m.Called(childID, sessionUID)
	return args.Error(0)
}
