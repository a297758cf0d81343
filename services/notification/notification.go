package notification

import (
	"context"
	"fmt"

	clientRepo "wellnest/database/repository/client"
	providerRepo "wellnest/database/repository/provider"
	"wellnest/utils"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendClientPushNotification(ctx context.Context, clientID, title, body string, data map[string]string) error
	SendProviderPushNotification(ctx context.Context, providerID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Clients   clientRepo.ClientRepository
	Providers providerRepo.ProviderRepository
}

func NewDefaultNotificationService(
	clients clientRepo.ClientRepository,
	providers providerRepo.ProviderRepository,
) (*DefaultNotificationService, error) {
	if clients == nil || providers == nil {
		return nil, fmt.Errorf("notification service initialization error: client or provider repository is nil")
	}
	return &DefaultNotificationService{
		Clients:   clients,
		Providers: providers,
	}, nil
}

// SendClientPushNotification looks up a client's FCM token and sends a push.
func (s *DefaultNotificationService) SendClientPushNotification(
	ctx context.Context,
	clientID, title, body string,
	data map[string]string,
) error {
	c, err := s.Clients.GetByID(clientID)
	if err != nil {
		return fmt.Errorf("SendClientPushNotification: could not find client %s: %w", clientID, err)
	}
	if c.FCMToken == "" {
		return fmt.Errorf("SendClientPushNotification: client %s has no FCM token", clientID)
	}
	return send(ctx, c.FCMToken, title, body, withRole(data, "client"))
}

// SendProviderPushNotification looks up a provider's FCM token and sends a push.
func (s *DefaultNotificationService) SendProviderPushNotification(
	ctx context.Context,
	providerID, title, body string,
	data map[string]string,
) error {
	p, err := s.Providers.GetByIDWithProjection(providerID, bson.M{"id": 1, "fcm_token": 1})
	if err != nil {
		return fmt.Errorf("SendProviderPushNotification: could not find provider %s: %w", providerID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("SendProviderPushNotification: provider %s has no FCM token", providerID)
	}
	return send(ctx, p.FCMToken, title, body, withRole(data, "provider"))
}

func withRole(data map[string]string, role string) map[string]string {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = role
	}
	return data
}

func send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
