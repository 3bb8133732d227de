package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lexmap/config"
	"lexmap/models"
	"lexmap/services/notification"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// reminderLead is how long before the appointment the reminder fires.
const reminderLead = time.Hour

// ReminderPayload is the queued task body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	EntityID      string `json:"entityId"`
	DeviceID      string `json:"deviceId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Mode          string `json:"mode"`
}

func redisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderScheduler enqueues appointment reminders on the asynq queue. It
// implements session.ReminderScheduler.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisQueueOpt())}
}

// ScheduleReminder queues a reminder one hour before the appointment, or
// immediately when the slot is closer than that.
func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	payload := ReminderPayload{
		AppointmentID: appt.ID,
		EntityID:      appt.EntityID,
		DeviceID:      appt.DeviceID,
		Date:          appt.Date,
		Time:          appt.Time,
		Mode:          string(appt.Mode),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeAppointmentReminder, body)
	opts := []asynq.Option{asynq.Queue("default")}
	if fireAt, ok := reminderTime(appt); ok {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

func reminderTime(appt models.Appointment) (time.Time, bool) {
	slot, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Time, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	fireAt := slot.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return time.Time{}, false
	}
	return fireAt, true
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentReminder, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		body := fmt.Sprintf("Reminder: your consultation is at %s on %s.", p.Time, p.Date)
		data := map[string]string{
			"appointmentId": p.AppointmentID,
			"entityId":      p.EntityID,
			"date":          p.Date,
			"time":          p.Time,
			"mode":          p.Mode,
		}
		if err := notifSvc.SendPush(ctx, p.DeviceID, "Upcoming consultation", body, data); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}
