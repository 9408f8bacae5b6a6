package impl

import (
	"fmt"

	"KidScreen/models"
	"KidScreen/repositories"

	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) repositories.SessionRepository {
	return &SessionRepositoryImpl{DB: db}
}

func (r *SessionRepositoryImpl) FindByUID(childID uint, sessionUID string) (models.Session, error) {
	var session models.Session
	err := r.DB.Where("child_id = ? AND uid = ?", childID, sessionUID).First(&session).Error
	if err != nil {
		return models.Session{}, translate(err, models.ErrSessionNotFound)
	}
	return session, nil
}

func (r *SessionRepositoryImpl) ListByChild(childID uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.DB.Where("child_id = ?", childID).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return sessions, nil
}

func (r *SessionRepositoryImpl) ListByChildAndDate(childID uint, date string) ([]models.Session, error) {
	var sessions []models.Session
	err := r.DB.Where("child_id = ? AND date = ?", childID, date).Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return sessions, nil
}

func (r *SessionRepositoryImpl) Create(session models.Session) (models.Session, error) {
	if err := r.DB.Create(&session).Error; err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return session, nil
}

func (r *SessionRepositoryImpl) Save(session models.Session) (models.Session, error) {
	if err := r.DB.Save(&session).Error; err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return session, nil
}

func (r *SessionRepositoryImpl) Delete(childID uint, sessionUID string) error {
	res := r.DB.Where("child_id = ? AND uid = ?", childID, sessionUID).Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}
