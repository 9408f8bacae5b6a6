package services

import (
	"fmt"
	"log"
	"time"

	"KidScreen/clock"
	"KidScreen/models"
	"KidScreen/repositories"

	"github.com/google/uuid"
)

// SessionService - контроллер жизненного цикла сессий. Проверяет
// ограничения (квота, режим сна), пишет через репозитории и после
// успешной записи рассылает событие семьи. Рассылка не влияет на
// результат операции: запись уже в базе.
type SessionService struct {
	FamilyRepo  repositories.FamilyRepository
	SessionRepo repositories.SessionRepository
	Usage       *UsageService
	Bedtime     *BedtimeService
	Clock       clock.Clock
	Publisher   EventPublisher
	Push        PushNotifier
}

func NewSessionService(
	familyRepo repositories.FamilyRepository,
	sessionRepo repositories.SessionRepository,
	usage *UsageService,
	bedtime *BedtimeService,
	clk clock.Clock,
	publisher EventPublisher,
	push PushNotifier,
) *SessionService {
	return &SessionService{
		FamilyRepo:  familyRepo,
		SessionRepo: sessionRepo,
		Usage:       usage,
		Bedtime:     bedtime,
		Clock:       clk,
		Publisher:   publisher,
		Push:        push,
	}
}

// StartSessionInput - параметры запуска обычной сессии.
type StartSessionInput struct {
	App    string `json:"app,omitempty"`
	Device string `json:"device,omitempty"`
	// CountsTowardTotal по умолчанию true; false - "свободная" сессия
	// вне квоты (например, учебное приложение).
	CountsTowardTotal *bool `json:"counts_toward_total,omitempty"`
}

// QuickAddInput - мгновенная запись уже прошедшей сессии.
type QuickAddInput struct {
	Date            string `json:"date,omitempty"` // пусто = сегодня
	DurationMinutes int    `json:"duration_minutes"`
	App             string `json:"app,omitempty"`
	Device          string `json:"device,omitempty"`
}

// BonusActivityInput - засчитать выполненную бонусную активность.
type BonusActivityInput struct {
	ActivityID      string `json:"activity_id"`
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `json:"reason,omitempty"`
}

// BonusAwardInput - прямое начисление бонусных минут опекуном.
type BonusAwardInput struct {
	Minutes int    `json:"minutes"`
	Reason  string `json:"reason,omitempty"`
}

// PunishmentInput - штраф: списывает минуты из остатка дня.
type PunishmentInput struct {
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `json:"reason"`
}

// SessionUpdate - частичное редактирование полей сессии. Состояние
// жизненного цикла оно не меняет, кроме закрытия активной сессии
// установкой time_ended.
type SessionUpdate struct {
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Reason          *string    `json:"reason,omitempty"`
	App             *string    `json:"app,omitempty"`
	Device          *string    `json:"device,omitempty"`
	TimeStarted     *time.Time `json:"time_started,omitempty"`
	TimeEnded       *time.Time `json:"time_ended,omitempty"`
}

// lookupChild резолвит пару семья+ребенок для всех операций.
func (s *SessionService) lookupChild(familyUID, childUID string) (models.Family, models.Child, error) {
	family, err := s.FamilyRepo.FindByUID(familyUID)
	if err != nil {
		return models.Family{}, models.Child{}, err
	}
	child, err := s.FamilyRepo.FindChildByUID(family.ID, childUID)
	if err != nil {
		return models.Family{}, models.Child{}, err
	}
	return family, child, nil
}

// StartSession открывает активную сессию. Для ребенка действуют оба
// ограничения; опекун (или ребенок с кодом) их обходит.
func (s *SessionService) StartSession(actor models.Actor, familyUID, childUID string, input StartSessionInput) (models.Session, error) {
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return models.Session{}, err
	}

	counts := true
	if input.CountsTowardTotal != nil {
		counts = *input.CountsTowardTotal
	}

	now := s.Clock.Now()
	today := clock.DateOf(s.Clock, now)

	if !actor.Privileged() {
		if counts {
			sessions, err := s.SessionRepo.ListByChildAndDate(child.ID, today)
			if err != nil {
				return models.Session{}, err
			}
			if s.Usage.RemainingTime(child, sessions, today) <= 0 {
				return models.Session{}, models.ErrQuotaExceeded
			}
		}
		if s.Bedtime.InRestWindow(child, now) {
			return models.Session{}, models.ErrBedtimeActive
		}
	}

	started := now.UTC()
	session := models.Session{
		UID:               uuid.NewString(),
		ChildID:           child.ID,
		Date:              today,
		Kind:              models.SessionKindRegular,
		State:             models.SessionStateActive,
		CountsTowardTotal: counts,
		App:               input.App,
		Device:            input.Device,
		TimeStarted:       &started,
		UpdatedBy:         actor.UID,
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}

	created, err := s.persist(family, session, models.EventSessionAdded, childUID)
	if err != nil {
		return models.Session{}, err
	}
	return created, nil
}

// EndSession закрывает активную сессию и пересчитывает длительность
// по фактическому времени.
func (s *SessionService) EndSession(actor models.Actor, familyUID, childUID, sessionUID string) (models.Session, error) {
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return models.Session{}, err
	}

	session, err := s.SessionRepo.FindByUID(child.ID, sessionUID)
	if err != nil {
		return models.Session{}, err
	}
	if session.IsClosed() {
		return models.Session{}, models.ErrSessionAlreadyClosed
	}

	ended := s.Clock.Now().UTC()
	session.TimeEnded = &ended
	session.State = models.SessionStateClosed
	session.DurationMinutes = session.ElapsedMinutes()
	session.UpdatedBy = actor.UID
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}

	saved, err := s.SessionRepo.Save(session)
	if err != nil {
		return models.Session{}, err
	}
	s.touchAndPublish(family, saved, models.EventSessionEnded, childUID)

	// Если после закрытия квота исчерпана - предупреждаем опекунов.
	if s.Push != nil && saved.CountsTowardTotal {
		sessions, lerr := s.SessionRepo.ListByChildAndDate(child.ID, saved.Date)
		if lerr == nil && s.Usage.RemainingTime(child, sessions, saved.Date) <= 0 {
			s.Push.NotifyFamily(family.ID, "Screen time limit reached",
				fmt.Sprintf("%s has used up today's screen time", child.Name),
				map[string]string{"child_uid": childUID, "type": "quota_exhausted"},
				childUID)
		}
	}
	return saved, nil
}

// QuickAdd записывает уже завершенную сессию одним вызовом.
func (s *SessionService) QuickAdd(actor models.Actor, familyUID, childUID string, input QuickAddInput) (models.Session, error) {
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return models.Session{}, err
	}

	if input.DurationMinutes < models.MinSessionMinutes || input.DurationMinutes > models.MaxSessionMinutes {
		return models.Session{}, models.ErrInvalidDuration
	}

	date := input.Date
	if date == "" {
		date = clock.Today(s.Clock)
	} else if _, perr := time.Parse(clock.DateLayout, date); perr != nil {
		// Кривая дата дала бы сессию, не попадающую ни в один день
		return models.Session{}, fmt.Errorf("%w: bad date %q", models.ErrValidation, date)
	}

	session := models.Session{
		UID:               uuid.NewString(),
		ChildID:           child.ID,
		Date:              date,
		Kind:              models.SessionKindRegular,
		State:             models.SessionStateClosed,
		DurationMinutes:   input.DurationMinutes,
		CountsTowardTotal: true,
		App:               input.App,
		Device:            input.Device,
		UpdatedBy:         actor.UID,
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}
	return s.persist(family, session, models.EventSessionAdded, childUID)
}

// RecordBonusActivity конвертирует время активности в бонусные минуты
// по коэффициенту из настроек ребенка.
func (s *SessionService) RecordBonusActivity(actor models.Actor, familyUID, childUID string, input BonusActivityInput) (models.Session, error) {
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return models.Session{}, err
	}

	if input.DurationMinutes < models.MinSessionMinutes || input.DurationMinutes > models.MaxSessionMinutes {
		return models.Session{}, models.ErrInvalidDuration
	}
	ratio := s.Usage.Limits.ResolveBonusRatio(child, input.ActivityID)
	if ratio == nil {
		return models.Session{}, fmt.Errorf("%w: bonus activity %q is not available", models.ErrValidation, input.ActivityID)
	}

	awarded := int(float64(input.DurationMinutes)**ratio + 0.5)
	reason := input.Reason
	if reason == "" {
		reason = input.ActivityID
	}

	session := models.Session{
		UID:              uuid.NewString(),
		ChildID:          child.ID,
		Date:             clock.Today(s.Clock),
		Kind:             models.SessionKindBonus,
		State:            models.SessionStateClosed,
		DurationMinutes:  input.DurationMinutes,
		BonusTimeAwarded: awarded,
		Reason:           reason,
		UpdatedBy:        actor.UID,
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}

	created, err := s.persist(family, session, models.EventBonusApplied, childUID)
	if err != nil {
		return models.Session{}, err
	}
	if s.Push != nil {
		s.Push.NotifyFamily(family.ID, "Bonus time earned",
			fmt.Sprintf("%s earned %d bonus minutes", child.Name, awarded),
			map[string]string{"child_uid": childUID, "type": "bonus_applied"})
	}
	return created, nil
}

// AwardBonus - прямое начисление минут опекуном, без активности.
func (s *SessionService) AwardBonus(actor models.Actor, familyUID, childUID string, input BonusAwardInput) (models.Session, error) {
	if !actor.Privileged() {
		return models.Session{}, models.ErrPasscodeRequired
	}
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return models.Session{}, err
	}
	if input.Minutes < models.MinSessionMinutes || input.Minutes > models.MaxSessionMinutes {
		return models.Session{}, models.ErrInvalidDuration
	}

	session := models.Session{
		UID:              uuid.NewString(),
		ChildID:          child.ID,
		Date:             clock.Today(s.Clock),
		Kind:             models.SessionKindBonus,
		State:            models.SessionStateClosed,
		BonusTimeAwarded: input.Minutes,
		Reason:           input.Reason,
		UpdatedBy:        actor.UID,
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}

	created, err := s.persist(family, session, models.EventBonusApplied, childUID)
	if err != nil {
		return models.Session{}, err
	}
	if s.Push != nil {
		s.Push.NotifyFamily(family.ID, "Bonus time awarded",
			fmt.Sprintf("%s received %d bonus minutes", child.Name, input.Minutes),
			map[string]string{"child_uid": childUID, "type": "bonus_applied"})
	}
	return created, nil
}

// ApplyPunishment списывает минуты, увеличивая израсходованное время.
// Намеренно не проверяет остаток: расход может уйти за лимит, наружу
// остаток все равно показывается не ниже нуля.
func (s *SessionService) ApplyPunishment(actor models.Actor, familyUID, childUID string, input PunishmentInput) (models.Session, error) {
	if !actor.Privileged() {
		return models.Session{}, models.ErrPasscodeRequired
	}
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return models.Session{}, err
	}
	if input.DurationMinutes < models.MinSessionMinutes {
		return models.Session{}, models.ErrInvalidDuration
	}

	session := models.Session{
		UID:               uuid.NewString(),
		ChildID:           child.ID,
		Date:              clock.Today(s.Clock),
		Kind:              models.SessionKindPunishment,
		State:             models.SessionStateClosed,
		DurationMinutes:   input.DurationMinutes,
		CountsTowardTotal: true,
		Reason:            input.Reason,
		UpdatedBy:         actor.UID,
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}

	created, err := s.persist(family, session, models.EventPunishmentApplied, childUID)
	if err != nil {
		return models.Session{}, err
	}
	if s.Push != nil {
		s.Push.NotifyFamily(family.ID, "Screen time reduced",
			fmt.Sprintf("%s lost %d minutes of screen time", child.Name, input.DurationMinutes),
			map[string]string{"child_uid": childUID, "type": "punishment_applied"})
	}
	return created, nil
}

// UpdateSession редактирует поля сессии. Повторный вызов с тем же
// патчем дает тот же результат. Если в патче появились обе временные
// метки, а явная длительность не передана - длительность
// пересчитывается.
func (s *SessionService) UpdateSession(actor models.Actor, familyUID, childUID, sessionUID string, update SessionUpdate) (models.Session, error) {
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return models.Session{}, err
	}

	session, err := s.SessionRepo.FindByUID(child.ID, sessionUID)
	if err != nil {
		return models.Session{}, err
	}

	wasActive := session.IsActive()

	if update.App != nil {
		session.App = *update.App
	}
	if update.Device != nil {
		session.Device = *update.Device
	}
	if update.Reason != nil {
		session.Reason = *update.Reason
	}
	if update.TimeStarted != nil {
		ts := update.TimeStarted.UTC()
		session.TimeStarted = &ts
	}
	if update.TimeEnded != nil {
		te := update.TimeEnded.UTC()
		session.TimeEnded = &te
		session.State = models.SessionStateClosed
	}

	if update.DurationMinutes != nil {
		if *update.DurationMinutes < 0 {
			return models.Session{}, models.ErrInvalidDuration
		}
		session.DurationMinutes = *update.DurationMinutes
	} else if (update.TimeStarted != nil || update.TimeEnded != nil) &&
		session.TimeStarted != nil && session.TimeEnded != nil {
		session.DurationMinutes = session.ElapsedMinutes()
	}

	session.UpdatedBy = actor.UID
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}

	saved, err := s.SessionRepo.Save(session)
	if err != nil {
		return models.Session{}, err
	}

	eventType := models.EventSessionUpdated
	if wasActive && saved.IsClosed() {
		eventType = models.EventSessionEnded
	}
	s.touchAndPublish(family, saved, eventType, childUID)
	return saved, nil
}

// DeleteSession убирает сессию насовсем. Ребенку нужен код опекуна.
func (s *SessionService) DeleteSession(actor models.Actor, familyUID, childUID, sessionUID string) error {
	if !actor.Privileged() {
		return models.ErrPasscodeRequired
	}
	family, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return err
	}

	session, err := s.SessionRepo.FindByUID(child.ID, sessionUID)
	if err != nil {
		return err
	}
	if err := s.SessionRepo.Delete(child.ID, sessionUID); err != nil {
		return err
	}
	s.touchAndPublish(family, session, models.EventSessionDeleted, childUID)
	return nil
}

// GetUsage возвращает сводку использования на день.
func (s *SessionService) GetUsage(familyUID, childUID, date string) (UsageSummary, error) {
	_, child, err := s.lookupChild(familyUID, childUID)
	if err != nil {
		return UsageSummary{}, err
	}
	if date == "" {
		date = clock.Today(s.Clock)
	}
	sessions, err := s.SessionRepo.ListByChildAndDate(child.ID, date)
	if err != nil {
		return UsageSummary{}, err
	}
	return s.Usage.Summary(child, sessions, date), nil
}

// persist: создать сессию, поднять версию семьи, разослать событие.
func (s *SessionService) persist(family models.Family, session models.Session, eventType, childUID string) (models.Session, error) {
	created, err := s.SessionRepo.Create(session)
	if err != nil {
		return models.Session{}, err
	}
	s.touchAndPublish(family, created, eventType, childUID)
	return created, nil
}

func (s *SessionService) touchAndPublish(family models.Family, session models.Session, eventType, childUID string) {
	if err := s.FamilyRepo.Touch(family.ID); err != nil {
		// Сессия уже записана; несдвинутая версия не повод падать.
		log.Printf("[SessionService] failed to touch family %s: %v", family.UID, err)
	}
	if s.Publisher != nil {
		sess := session
		s.Publisher.PublishEvent(models.FamilyEvent{
			Type:      eventType,
			FamilyUID: family.UID,
			ChildUID:  childUID,
			Session:   &sess,
			Timestamp: s.Clock.Now().UTC(),
		})
	}
}
