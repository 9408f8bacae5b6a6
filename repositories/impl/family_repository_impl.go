package impl

import (
	"errors"
	"fmt"
	"time"

	"KidScreen/models"
	"KidScreen/repositories"

	"gorm.io/gorm"
)

type FamilyRepositoryImpl struct {
	DB *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) repositories.FamilyRepository {
	return &FamilyRepositoryImpl{DB: db}
}

// translate приводит ошибки gorm к доменной таксономии.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}

func (r *FamilyRepositoryImpl) FindByUID(uid string) (models.Family, error) {
	var family models.Family
	if err := r.DB.Where("uid = ?", uid).First(&family).Error; err != nil {
		return models.Family{}, translate(err, models.ErrFamilyNotFound)
	}
	return family, nil
}

func (r *FamilyRepositoryImpl) FindGuardianByUID(uid string) (models.Guardian, error) {
	var guardian models.Guardian
	if err := r.DB.Where("uid = ?", uid).First(&guardian).Error; err != nil {
		return models.Guardian{}, translate(err, models.ErrGuardianNotFound)
	}
	return guardian, nil
}

func (r *FamilyRepositoryImpl) ListGuardians(familyID uint) ([]models.Guardian, error) {
	var guardians []models.Guardian
	if err := r.DB.Where("family_id = ?", familyID).Find(&guardians).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return guardians, nil
}

func (r *FamilyRepositoryImpl) FindChildByUID(familyID uint, uid string) (models.Child, error) {
	var child models.Child
	if err := r.DB.Where("family_id = ? AND uid = ?", familyID, uid).First(&child).Error; err != nil {
		return models.Child{}, translate(err, models.ErrChildNotFound)
	}
	return child, nil
}

func (r *FamilyRepositoryImpl) ListChildren(familyID uint) ([]models.Child, error) {
	var children []models.Child
	if err := r.DB.Where("family_id = ?", familyID).Find(&children).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return children, nil
}

func (r *FamilyRepositoryImpl) SaveChild(child models.Child) error {
	if err := r.DB.Save(&child).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

// SaveFamilyCAS - compare-and-swap по колонке version. Две
// конкурирующие записи не могут молча затереть друг друга: проигравшая
// получает ErrVersionConflict и должна перечитать семью.
func (r *FamilyRepositoryImpl) SaveFamilyCAS(family models.Family) (models.Family, error) {
	expected := family.Version
	family.Version = expected + 1
	family.LastUpdated = time.Now().UTC()

	res := r.DB.Model(&models.Family{}).
		Where("id = ? AND version = ?", family.ID, expected).
		Updates(map[string]interface{}{
			"name":            family.Name,
			"timezone":        family.Timezone,
			"master_settings": family.MasterSettings,
			"version":         family.Version,
			"last_updated":    family.LastUpdated,
		})
	if res.Error != nil {
		return models.Family{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		// Либо семья исчезла, либо версия ушла вперед.
		var current models.Family
		if err := r.DB.First(&current, family.ID).Error; err != nil {
			return models.Family{}, translate(err, models.ErrFamilyNotFound)
		}
		return models.Family{}, models.ErrVersionConflict
	}
	return family, nil
}

func (r *FamilyRepositoryImpl) Touch(familyID uint) error {
	res := r.DB.Model(&models.Family{}).
		Where("id = ?", familyID).
		Updates(map[string]interface{}{
			"version":      gorm.Expr("version + 1"),
			"last_updated": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrFamilyNotFound
	}
	return nil
}
