package services

import (
	"context"
	"fmt"
	"log"

	"KidScreen/repositories"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// NotificationService - push-уведомления через Firebase Cloud
// Messaging. Доставка best-effort: ошибки логируются и не влияют на
// исход вызвавшей операции.
type NotificationService struct {
	FCMClient  *messaging.Client
	FamilyRepo repositories.FamilyRepository
}

func NewNotificationService(app *firebase.App, familyRepo repositories.FamilyRepository) (*NotificationService, error) {
	ctx := context.Background()
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing FCM client: %w", err)
	}
	return &NotificationService{FCMClient: client, FamilyRepo: familyRepo}, nil
}

// Send отправляет одно уведомление на устройство.
func (s *NotificationService) Send(deviceToken, title, body string, data map[string]string) error {
	if deviceToken == "" {
		// Нет токена - просто пропускаем.
		return nil
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: deviceToken,
	}

	resp, err := s.FCMClient.Send(context.Background(), message)
	if err != nil {
		log.Printf("[FCM] send failed: %v", err)
		return err
	}
	log.Printf("[FCM] sent %s: %s", resp, title)
	return nil
}

// NotifyFamily рассылает уведомление всем членам семьи, кроме
// перечисленных в skipUIDs.
func (s *NotificationService) NotifyFamily(familyID uint, title, body string, data map[string]string, skipUIDs ...string) {
	skip := make(map[string]bool)
	for _, uid := range skipUIDs {
		skip[uid] = true
	}

	guardians, err := s.FamilyRepo.ListGuardians(familyID)
	if err != nil {
		log.Printf("[FCM] list guardians: %v", err)
	}
	for _, g := range guardians {
		if !skip[g.UID] {
			s.Send(g.DeviceToken, title, body, data)
		}
	}

	children, err := s.FamilyRepo.ListChildren(familyID)
	if err != nil {
		log.Printf("[FCM] list children: %v", err)
	}
	for _, c := range children {
		if !skip[c.UID] {
			s.Send(c.DeviceToken, title, body, data)
		}
	}
}
