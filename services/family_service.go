package services

import (
	"KidScreen/clock"
	"KidScreen/models"
	"KidScreen/repositories"

	"golang.org/x/crypto/bcrypt"
)

// FamilyService собирает снимок состояния семьи под конкретного
// зрителя и проверяет семейный код опекуна.
type FamilyService struct {
	FamilyRepo   repositories.FamilyRepository
	SessionRepo  repositories.SessionRepository
	Usage        *UsageService
	Clock        clock.Clock
	PasscodeHash []byte // bcrypt-хэш общего кода опекуна
}

func NewFamilyService(
	familyRepo repositories.FamilyRepository,
	sessionRepo repositories.SessionRepository,
	usage *UsageService,
	clk clock.Clock,
	passcodeHash []byte,
) *FamilyService {
	return &FamilyService{
		FamilyRepo:   familyRepo,
		SessionRepo:  sessionRepo,
		Usage:        usage,
		Clock:        clk,
		PasscodeHash: passcodeHash,
	}
}

// ChildSnapshot - ребенок вместе с сессиями и сводкой на сегодня.
type ChildSnapshot struct {
	Child    models.Child     `json:"child"`
	Sessions []models.Session `json:"sessions"`
	Usage    UsageSummary     `json:"usage"`
}

// FamilyState - отфильтрованный снимок для зрителя. Опекун видит
// всех детей; ребенок - только себя и общие настройки семьи.
type FamilyState struct {
	Family    models.Family     `json:"family"`
	Guardians []models.Guardian `json:"guardians,omitempty"`
	Children  []ChildSnapshot   `json:"children"`
}

// GetFamilyState возвращает состояние семьи глазами зрителя.
func (s *FamilyService) GetFamilyState(familyUID, viewerType, viewerUID string) (FamilyState, error) {
	family, err := s.FamilyRepo.FindByUID(familyUID)
	if err != nil {
		return FamilyState{}, err
	}

	state := FamilyState{Family: family}
	today := clock.Today(s.Clock)

	if viewerType == models.UserTypeGuardian {
		guardians, err := s.FamilyRepo.ListGuardians(family.ID)
		if err != nil {
			return FamilyState{}, err
		}
		state.Guardians = guardians

		children, err := s.FamilyRepo.ListChildren(family.ID)
		if err != nil {
			return FamilyState{}, err
		}
		for _, child := range children {
			snap, err := s.childSnapshot(child, today)
			if err != nil {
				return FamilyState{}, err
			}
			state.Children = append(state.Children, snap)
		}
		return state, nil
	}

	// Ребенок: только собственная запись, без списка опекунов.
	child, err := s.FamilyRepo.FindChildByUID(family.ID, viewerUID)
	if err != nil {
		return FamilyState{}, err
	}
	snap, err := s.childSnapshot(child, today)
	if err != nil {
		return FamilyState{}, err
	}
	state.Children = append(state.Children, snap)
	return state, nil
}

func (s *FamilyService) childSnapshot(child models.Child, today string) (ChildSnapshot, error) {
	sessions, err := s.SessionRepo.ListByChild(child.ID)
	if err != nil {
		return ChildSnapshot{}, err
	}
	return ChildSnapshot{
		Child:    child,
		Sessions: sessions,
		Usage:    s.Usage.Summary(child, sessions, today),
	}, nil
}

// ChallengePasscode сверяет код с bcrypt-хэшем. Успех дает ребенку
// права опекуна на одну операцию.
func (s *FamilyService) ChallengePasscode(passcode string) bool {
	if len(s.PasscodeHash) == 0 || passcode == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.PasscodeHash, []byte(passcode)) == nil
}
