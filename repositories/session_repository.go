package repositories

import "KidScreen/models"

type SessionRepository interface {
	FindByUID(childID uint, sessionUID string) (models.Session, error)
	ListByChild(childID uint) ([]models.Session, error)
	ListByChildAndDate(childID uint, date string) ([]models.Session, error)
	Create(session models.Session) (models.Session, error)
	Save(session models.Session) (models.Session, error)
	Delete(childID uint, sessionUID string) error
}
