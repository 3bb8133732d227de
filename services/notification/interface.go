package notification

import (
	"context"

	"lexmap/models"
)

// NotificationService delivers outbound pushes for session events. The
// interaction core only publishes events; delivery and any persistence live
// here, on the collaborator side.
type NotificationService interface {
	SendPush(ctx context.Context, deviceID, title, body string, data map[string]string) error
	HandleSessionEvent(ev models.SessionEvent)
}

// DeviceRegistry maps device ids to their push tokens.
type DeviceRegistry interface {
	RegisterToken(ctx context.Context, deviceID, token string) error
	Token(ctx context.Context, deviceID string) (string, error)
}
