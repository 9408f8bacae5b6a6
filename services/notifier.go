package services

import "KidScreen/models"

// EventPublisher - живой канал семьи (websocket-хаб). Доставка
// best-effort: запись в базу уже состоялась, подписчик без соединения
// догонит состояние при следующем чтении.
type EventPublisher interface {
	PublishEvent(event models.FamilyEvent)
}

// PushNotifier - push-уведомления на устройства (FCM).
type PushNotifier interface {
	NotifyFamily(familyID uint, title, body string, data map[string]string, skipUIDs ...string)
}
