package notification

import (
	"context"
	"fmt"

	"lexmap/models"
	"lexmap/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService sends FCM pushes. When no FCM client is
// configured (development without credentials), deliveries degrade to log
// lines instead of failing.
type DefaultNotificationService struct {
	Devices DeviceRegistry
}

var _ NotificationService = (*DefaultNotificationService)(nil)

// SendPush looks up the device's token and sends a push.
func (s *DefaultNotificationService) SendPush(ctx context.Context, deviceID, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	if utils.FCMClient == nil {
		logger.Info("push delivery skipped (FCM disabled)",
			zap.String("deviceId", deviceID),
			zap.String("title", title),
		)
		return nil
	}

	token, err := s.Devices.Token(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("SendPush: %w", err)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}

// HandleSessionEvent reacts to outbound session events. Only events that
// carry a device id produce a push; the rest are logged for observability.
func (s *DefaultNotificationService) HandleSessionEvent(ev models.SessionEvent) {
	logger := utils.GetLogger()
	logger.Info("session event",
		zap.String("type", string(ev.Type)),
		zap.String("sessionId", ev.SessionID),
		zap.String("entityId", ev.EntityID),
	)

	if ev.Type != models.EventAppointmentScheduled {
		return
	}
	deviceID := ev.Data["deviceId"]
	if deviceID == "" {
		return
	}

	body := fmt.Sprintf("Your consultation on %s at %s is confirmed.", ev.Data["date"], ev.Data["time"])
	if err := s.SendPush(context.Background(), deviceID, "Appointment confirmed", body, ev.Data); err != nil {
		logger.Warn("failed to push appointment confirmation", zap.Error(err))
	}
}
