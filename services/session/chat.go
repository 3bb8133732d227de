package session

import (
	"context"
	"strings"
	"time"

	"lexmap/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Chat reply pacing. The typing indicator appears between 1s and 2s after the
// user message, the reply lands a fixed second later, so the whole exchange
// stays within 3 seconds.
const (
	typingDelayMin  = time.Second
	typingDelaySpan = time.Second
	composeDelay    = time.Second
)

// fallbackReply is appended when the reply source errors; simulation
// failures are never user-visible.
const fallbackReply = "Thank you for reaching out. I will get back to you shortly."

// SendMessage appends a user message to the active chat session and
// schedules the simulated counterpart reply. The reply task is owned by the
// session and cancelled if the session closes first.
func (m *Manager) SendMessage(ctx context.Context, text string) (models.SessionView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.SessionView{}, &ValidationError{Field: "text", Message: "message text must not be empty"}
	}

	m.mu.Lock()
	s := m.active
	if s == nil {
		m.mu.Unlock()
		return models.SessionView{}, ErrNoActiveSession
	}
	if s.mode != models.ModeChat {
		got := s.mode
		m.mu.Unlock()
		return models.SessionView{}, &WrongModeError{Want: models.ModeChat, Got: got}
	}
	if s.state == models.SessionRequested {
		s.state = models.SessionActive
	}

	msg := models.ChatMessage{
		ID:     uuid.New().String(),
		Sender: models.SenderUser,
		Text:   text,
		SentAt: m.clock.Now(),
	}
	s.messages = append(s.messages, msg)

	delay := typingDelayMin + time.Duration(m.rng.Int63n(int64(typingDelaySpan)))
	sess := s
	prompt := text
	task := m.clock.AfterFunc(delay, func() { m.onTypingStart(sess, prompt) })
	s.tasks = append(s.tasks, task)

	view := m.viewLocked(s)
	ev := m.event(models.EventMessageSent, s, map[string]string{"messageId": msg.ID})
	m.mu.Unlock()

	m.publish(ev)
	return view, nil
}

// onTypingStart flips the typing indicator and schedules the reply append.
// Fires on the clock goroutine; suppressed when the session is no longer the
// active one.
func (m *Manager) onTypingStart(sess *session, prompt string) {
	m.mu.Lock()
	if m.active != sess || sess.state != models.SessionActive {
		m.mu.Unlock()
		return
	}
	sess.typing = true
	task := m.clock.AfterFunc(composeDelay, func() { m.onReply(sess, prompt) })
	sess.tasks = append(sess.tasks, task)
	m.mu.Unlock()
}

// onReply appends the counterpart reply and clears the typing indicator.
func (m *Manager) onReply(sess *session, prompt string) {
	// Resolve the reply before taking the lock; the source may do IO.
	text := fallbackReply
	if m.replies != nil {
		reply, err := m.replies.Reply(context.Background(), sess.entityID, prompt)
		if err != nil {
			m.logger.Debug("reply source failed, using fallback", zap.Error(err))
		} else if reply != "" {
			text = reply
		}
	}

	m.mu.Lock()
	if m.active != sess || sess.state != models.SessionActive {
		// Session closed while the reply was in flight; never append to a
		// closed session.
		m.mu.Unlock()
		return
	}
	sess.typing = false
	sess.messages = append(sess.messages, models.ChatMessage{
		ID:     uuid.New().String(),
		Sender: models.SenderCounterpart,
		Text:   text,
		SentAt: m.clock.Now(),
	})
	m.mu.Unlock()
}
