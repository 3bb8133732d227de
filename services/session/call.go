package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lexmap/models"

	"go.uber.org/zap"
)

const callTick = time.Second

// StartCall moves a requested call/video session to Active, marks the
// provider in_call and starts the per-second elapsed ticker.
func (m *Manager) StartCall(ctx context.Context) (models.SessionView, error) {
	m.mu.Lock()
	s := m.active
	if s == nil {
		m.mu.Unlock()
		return models.SessionView{}, ErrNoActiveSession
	}
	if s.mode != models.ModeCall && s.mode != models.ModeVideo {
		got := s.mode
		m.mu.Unlock()
		return models.SessionView{}, &WrongModeError{Want: models.ModeCall, Got: got}
	}
	if s.state == models.SessionActive {
		view := m.viewLocked(s)
		m.mu.Unlock()
		return view, nil
	}

	if p, ok := m.directory.Provider(s.entityID); ok {
		s.prevStatus = p.Status
	}
	s.state = models.SessionActive
	s.startedAt = m.clock.Now()
	s.elapsed = 0
	s.toggles = models.CallToggles{
		Audio: true,
		Video: s.mode == models.ModeVideo,
	}
	sess := s
	s.tick = m.clock.AfterFunc(callTick, func() { m.onCallTick(sess) })
	// The status write must land before the lock is released; a concurrent
	// close restores the previous status and must not race ahead of it.
	if err := m.directory.SetProviderStatus(s.entityID, models.ProviderInCall); err != nil {
		m.logger.Warn("failed to mark provider in_call", zap.String("entityId", s.entityID), zap.Error(err))
	}
	view := m.viewLocked(s)
	m.mu.Unlock()
	return view, nil
}

// onCallTick advances the elapsed counter by exactly one second and
// reschedules itself while the session stays active.
func (m *Manager) onCallTick(sess *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != sess || sess.state != models.SessionActive {
		return
	}
	sess.elapsed++
	sess.tick = m.clock.AfterFunc(callTick, func() { m.onCallTick(sess) })
}

// Toggle flips one device toggle on the active call/video session.
func (m *Manager) Toggle(ctx context.Context, control ToggleControl) (models.SessionView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.active
	if s == nil {
		return models.SessionView{}, ErrNoActiveSession
	}
	if s.mode != models.ModeCall && s.mode != models.ModeVideo {
		return models.SessionView{}, &WrongModeError{Want: models.ModeCall, Got: s.mode}
	}
	switch control {
	case ToggleAudio:
		s.toggles.Audio = !s.toggles.Audio
	case ToggleVideo:
		s.toggles.Video = !s.toggles.Video
	case ToggleSpeaker:
		s.toggles.Speaker = !s.toggles.Speaker
	case ToggleRecording:
		s.toggles.Recording = !s.toggles.Recording
	default:
		return models.SessionView{}, fmt.Errorf("unknown toggle control %q", control)
	}
	return m.viewLocked(s), nil
}

// EndCall stops the ticker, resets the elapsed counter so the next call
// starts from zero, restores the provider's status and closes the session.
func (m *Manager) EndCall(ctx context.Context) (models.SessionView, error) {
	m.mu.Lock()
	s := m.active
	if s == nil {
		m.mu.Unlock()
		return models.SessionView{}, ErrNoActiveSession
	}
	if s.mode != models.ModeCall && s.mode != models.ModeVideo {
		got := s.mode
		m.mu.Unlock()
		return models.SessionView{}, &WrongModeError{Want: models.ModeCall, Got: got}
	}

	duration := s.elapsed
	ev := m.event(models.EventCallEnded, s, map[string]string{
		"seconds":  strconv.Itoa(duration),
		"duration": FormatElapsed(duration),
	})
	view := m.forceCloseLocked(models.OutcomeSuccess)
	m.mu.Unlock()

	m.archiveView(ctx, view)
	m.publish(ev)
	return view, nil
}

// FormatElapsed renders seconds as "MM:SS" (e.g. 185 -> "03:05").
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
