package repositories

import "KidScreen/models"

type FamilyRepository interface {
	FindByUID(uid string) (models.Family, error)
	FindGuardianByUID(uid string) (models.Guardian, error)
	ListGuardians(familyID uint) ([]models.Guardian, error)
	FindChildByUID(familyID uint, uid string) (models.Child, error)
	ListChildren(familyID uint) ([]models.Child, error)
	SaveChild(child models.Child) error
	// SaveFamilyCAS записывает семью, только если ее версия в базе
	// совпадает с family.Version; при расхождении возвращает
	// models.ErrVersionConflict.
	SaveFamilyCAS(family models.Family) (models.Family, error)
	// Touch поднимает версию и last_updated после любой мутации сессий.
	Touch(familyID uint) error
}
