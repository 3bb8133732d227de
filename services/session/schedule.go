package session

import (
	"context"
	"time"

	"lexmap/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// confirmationDelay simulates the round trip of a scheduling backend.
const confirmationDelay = 1500 * time.Millisecond

// SubmitSchedule validates the request and, when valid, moves the session
// through Active(submitting) to a terminal Closed state once the
// confirmation resolves. Validation failures are synchronous, leave the
// session in Requested and start no timer.
func (m *Manager) SubmitSchedule(ctx context.Context, req models.ScheduleRequest) (models.SessionView, error) {
	m.mu.Lock()
	s := m.active
	if s == nil {
		m.mu.Unlock()
		return models.SessionView{}, ErrNoActiveSession
	}
	if s.mode != models.ModeSchedule {
		got := s.mode
		m.mu.Unlock()
		return models.SessionView{}, &WrongModeError{Want: models.ModeSchedule, Got: got}
	}
	if s.state != models.SessionRequested {
		m.mu.Unlock()
		return models.SessionView{}, &ValidationError{Field: "state", Message: "a submission is already in progress"}
	}
	now := m.clock.Now()
	m.mu.Unlock()

	if err := validateScheduleRequest(req, now); err != nil {
		return models.SessionView{}, err
	}

	// An in-person visit needs a granted location; a denied or missing grant
	// blocks the submission outright.
	if req.Mode == models.AppointmentOffline {
		loc, err := m.location.Resolve(ctx, req.DeviceID)
		if err != nil {
			return models.SessionView{}, err
		}
		if !loc.Granted {
			return models.SessionView{}, &ValidationError{
				Field:   "location",
				Message: "location access is required to book an in-person visit",
			}
		}
	}

	m.mu.Lock()
	// Re-check under the lock; the session may have been replaced while the
	// location lookup was in flight.
	if m.active != s || s.state != models.SessionRequested {
		m.mu.Unlock()
		return models.SessionView{}, ErrNoActiveSession
	}
	appt := models.Appointment{
		ID:          uuid.New().String(),
		EntityID:    s.entityID,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        req.Mode,
		DeviceID:    req.DeviceID,
		ScheduledAt: m.clock.Now(),
	}
	s.state = models.SessionActive
	sess := s
	task := m.clock.AfterFunc(confirmationDelay, func() { m.onConfirmation(sess, appt) })
	s.tasks = append(s.tasks, task)
	view := m.viewLocked(s)
	m.mu.Unlock()

	return view, nil
}

func validateScheduleRequest(req models.ScheduleRequest, now time.Time) error {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return &ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD form"}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !day.After(today) {
		return &ValidationError{Field: "date", Message: "date must be after today"}
	}
	if req.Time == "" {
		return &ValidationError{Field: "time", Message: "time must not be empty"}
	}
	if req.Mode != models.AppointmentOnline && req.Mode != models.AppointmentOffline {
		return &ValidationError{Field: "mode", Message: "mode must be online or offline"}
	}
	return nil
}

// onConfirmation resolves the simulated (or real) confirmation and moves the
// session to its terminal state. Success and failure are distinguishable via
// the closed session's outcome.
func (m *Manager) onConfirmation(sess *session, appt models.Appointment) {
	var confirmErr error
	if m.confirm != nil {
		confirmErr = m.confirm(context.Background(), appt)
	}

	m.mu.Lock()
	if m.active != sess || sess.state != models.SessionActive {
		m.mu.Unlock()
		return
	}
	var view models.SessionView
	var ev *models.SessionEvent
	if confirmErr != nil {
		m.logger.Warn("appointment confirmation failed",
			zap.String("sessionId", sess.id),
			zap.Error(&ConfirmationFailedError{Reason: confirmErr.Error()}),
		)
		view = m.forceCloseLocked(models.OutcomeFailed)
	} else {
		sess.appointment = &appt
		e := m.event(models.EventAppointmentScheduled, sess, map[string]string{
			"appointmentId": appt.ID,
			"date":          appt.Date,
			"time":          appt.Time,
			"mode":          string(appt.Mode),
			"deviceId":      appt.DeviceID,
		})
		ev = &e
		view = m.forceCloseLocked(models.OutcomeSuccess)
	}
	m.mu.Unlock()

	m.archiveView(context.Background(), view)
	if ev != nil {
		m.publish(*ev)
		if m.reminders != nil {
			if err := m.reminders.ScheduleReminder(context.Background(), appt); err != nil {
				m.logger.Warn("failed to schedule appointment reminder", zap.Error(err))
			}
		}
	}
}
