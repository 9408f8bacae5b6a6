package models

import "errors"

// Ошибки движка. Контроллеры сопоставляют их HTTP-статусам через
// errors.Is, сервисы оборачивают с контекстом через %w.
var (
	ErrFamilyNotFound       = errors.New("family not found")
	ErrChildNotFound        = errors.New("child not found")
	ErrGuardianNotFound     = errors.New("guardian not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyClosed = errors.New("session already closed")

	ErrValidation      = errors.New("validation error")
	ErrInvalidDuration = errors.New("invalid duration")

	// Бизнес-ограничения: опекун может их обойти.
	ErrQuotaExceeded = errors.New("daily screen time quota exceeded")
	ErrBedtimeActive = errors.New("bedtime restriction is active")

	ErrPasscodeRequired = errors.New("guardian passcode required")

	// Запись проиграла optimistic-lock гонку; повторите чтение и запись.
	ErrVersionConflict = errors.New("version conflict")

	ErrStoreUnavailable = errors.New("store unavailable")
)
