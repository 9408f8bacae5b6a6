package models

import "time"

// Типы событий, рассылаемых после успешных мутаций.
const (
	EventSessionAdded      = "session_added"
	EventSessionUpdated    = "session_updated"
	EventSessionEnded      = "session_ended"
	EventSessionDeleted    = "session_deleted"
	EventBonusApplied      = "bonus_applied"
	EventPunishmentApplied = "punishment_applied"
	EventSettingChanged    = "setting_changed"
)

// FamilyEvent - сообщение для websocket-канала семьи и push-уведомлений.
// Канал не является источником истины: клиент, пропустивший событие,
// перечитывает полное состояние семьи.
type FamilyEvent struct {
	Type      string    `json:"type"`
	FamilyUID string    `json:"family_uid"`
	ChildUID  string    `json:"child_uid,omitempty"`
	Session   *Session  `json:"session,omitempty"`
	Setting   string    `json:"setting,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
