package session

import (
	"context"

	"lexmap/models"
)

// ToggleControl names a device toggle on a call/video session.
type ToggleControl string

const (
	ToggleAudio     ToggleControl = "audio"
	ToggleVideo     ToggleControl = "video"
	ToggleSpeaker   ToggleControl = "speaker"
	ToggleRecording ToggleControl = "recording"
)

// InteractionService drives the single-focus interaction session state
// machine. At most one session is non-closed at any time; requesting a new
// mode force-closes the current one first.
type InteractionService interface {
	// Request opens a session in Requested state for the entity and mode, or
	// rejects synchronously with ModeUnavailableError.
	Request(ctx context.Context, entityID string, mode models.SessionMode) (models.SessionView, error)
	// Close cancels the active session and all its pending timers.
	Close(ctx context.Context) (models.SessionView, error)
	// Snapshot returns the active session view, if any.
	Snapshot() (models.SessionView, bool)

	// SendMessage appends a user chat message and schedules the simulated
	// counterpart reply.
	SendMessage(ctx context.Context, text string) (models.SessionView, error)

	// StartCall activates a call/video session and starts the elapsed ticker.
	StartCall(ctx context.Context) (models.SessionView, error)
	// Toggle flips a device toggle on the active call/video session.
	Toggle(ctx context.Context, control ToggleControl) (models.SessionView, error)
	// EndCall stops the ticker, resets elapsed time and closes the session.
	EndCall(ctx context.Context) (models.SessionView, error)

	// SubmitSchedule validates and submits an appointment request.
	SubmitSchedule(ctx context.Context, req models.ScheduleRequest) (models.SessionView, error)

	// Subscribe registers a collaborator for outbound session events.
	Subscribe(fn func(models.SessionEvent))
}

// ReminderScheduler queues a reminder for a confirmed appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}

// Confirmer finalizes a schedule submission. The default simulation always
// succeeds; a real backend integration replaces it with a network call and
// keeps the same state transitions, including the failed terminal state.
type Confirmer func(ctx context.Context, appt models.Appointment) error
