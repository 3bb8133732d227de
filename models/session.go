package models

import "time"

// SessionMode identifies which interaction overlay a session drives.
type SessionMode string

const (
	ModeChat     SessionMode = "chat"
	ModeCall     SessionMode = "call"
	ModeVideo    SessionMode = "video"
	ModeSchedule SessionMode = "schedule"
)

// ValidSessionMode reports whether m is a known mode.
func ValidSessionMode(m SessionMode) bool {
	switch m {
	case ModeChat, ModeCall, ModeVideo, ModeSchedule:
		return true
	}
	return false
}

// SessionState is the lifecycle phase of an interaction session.
type SessionState string

const (
	SessionClosed    SessionState = "closed"
	SessionRequested SessionState = "requested"
	SessionActive    SessionState = "active"
)

// SessionOutcome distinguishes how a closed session terminated.
type SessionOutcome string

const (
	OutcomeNone      SessionOutcome = ""
	OutcomeSuccess   SessionOutcome = "success"
	OutcomeFailed    SessionOutcome = "failed"
	OutcomeCancelled SessionOutcome = "cancelled"
)

// ChatSender identifies the author of a chat message.
type ChatSender string

const (
	SenderUser        ChatSender = "user"
	SenderCounterpart ChatSender = "counterpart"
)

// ChatMessage is one entry in a chat session's ordered message list.
type ChatMessage struct {
	ID     string     `json:"id"`
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
	SentAt time.Time  `json:"sentAt"`
}

// CallToggles holds the device toggle flags of a call/video session.
type CallToggles struct {
	Audio     bool `json:"audio"`
	Video     bool `json:"video"`
	Speaker   bool `json:"speaker"`
	Recording bool `json:"recording"`
}

// AppointmentMode selects between a remote and an in-person consultation.
type AppointmentMode string

const (
	AppointmentOnline  AppointmentMode = "online"
	AppointmentOffline AppointmentMode = "offline"
)

// ScheduleRequest is the submission payload of a schedule session.
type ScheduleRequest struct {
	Date     string          `json:"date"` // "2006-01-02"
	Time     string          `json:"time"` // free-form slot label, e.g. "14:30"
	Mode     AppointmentMode `json:"mode"`
	DeviceID string          `json:"deviceId"`
}

// Appointment is a confirmed scheduling outcome.
type Appointment struct {
	ID          string          `json:"id"`
	EntityID    string          `json:"entityId"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Mode        AppointmentMode `json:"mode"`
	DeviceID    string          `json:"deviceId,omitempty"`
	ScheduledAt time.Time       `json:"scheduledAt"`
}

// SessionView is the read-only snapshot of a session surfaced to clients.
type SessionView struct {
	ID                string         `json:"id"`
	EntityID          string         `json:"entityId"`
	Mode              SessionMode    `json:"mode"`
	State             SessionState   `json:"state"`
	Outcome           SessionOutcome `json:"outcome,omitempty"`
	Messages          []ChatMessage  `json:"messages,omitempty"`
	CounterpartTyping bool           `json:"counterpartTyping,omitempty"`
	ElapsedSeconds    int            `json:"elapsedSeconds"`
	Elapsed           string         `json:"elapsed,omitempty"`
	Toggles           CallToggles    `json:"toggles,omitzero"`
	Appointment       *Appointment   `json:"appointment,omitempty"`
	StartedAt         time.Time      `json:"startedAt,omitzero"`
}

// SessionEventType labels the outbound events a session publishes.
type SessionEventType string

const (
	EventMessageSent          SessionEventType = "message_sent"
	EventCallEnded            SessionEventType = "call_ended"
	EventAppointmentScheduled SessionEventType = "appointment_scheduled"
)

// SessionEvent is delivered to subscribers of the session manager. The core
// never performs navigation or persistence on its own behalf; collaborators
// react to these instead.
type SessionEvent struct {
	Type      SessionEventType  `json:"type"`
	SessionID string            `json:"sessionId"`
	EntityID  string            `json:"entityId"`
	Data      map[string]string `json:"data,omitempty"`
	At        time.Time         `json:"at"`
}
