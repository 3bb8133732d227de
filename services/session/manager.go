package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"lexmap/models"
	"lexmap/services/directory"
	"lexmap/services/intelligence"
	"lexmap/services/location"
	"lexmap/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session is the mutable state behind one interaction. Timer callbacks hold
// a pointer to their session and must verify it is still the active one
// before applying any effect; a timer never outlives the session that
// created it, and a late firing against a closed session is suppressed.
type session struct {
	id        string
	entityID  string
	kind      models.EntityKind
	mode      models.SessionMode
	state     models.SessionState
	outcome   models.SessionOutcome
	startedAt time.Time

	// chat
	messages []models.ChatMessage
	typing   bool

	// call / video
	toggles    models.CallToggles
	elapsed    int
	tick       utils.Task
	prevStatus models.ProviderStatus

	// schedule
	appointment *models.Appointment

	// pending one-shot timers (chat reply, schedule confirmation)
	tasks []utils.Task
}

// Config wires the manager's collaborators. Archive, Reminders, Replies and
// Confirm are optional; nil disables the corresponding side effect.
type Config struct {
	Clock     utils.Clock
	Directory directory.DirectoryService
	Location  location.LocationService
	Replies   intelligence.ReplySource
	Archive   Archive
	Reminders ReminderScheduler
	Confirm   Confirmer
	Seed      int64
}

// Manager implements InteractionService. All session state lives behind one
// mutex; the map viewport is untouched here, selection stays with the
// renderer.
type Manager struct {
	mu          sync.Mutex
	clock       utils.Clock
	rng         *rand.Rand
	directory   directory.DirectoryService
	location    location.LocationService
	replies     intelligence.ReplySource
	archive     Archive
	reminders   ReminderScheduler
	confirm     Confirmer
	logger      *zap.Logger
	subscribers []func(models.SessionEvent)
	active      *session
}

var _ InteractionService = (*Manager)(nil)

func NewManager(cfg Config) *Manager {
	clock := cfg.Clock
	if clock == nil {
		clock = utils.NewRealClock()
	}
	return &Manager{
		clock:     clock,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		directory: cfg.Directory,
		location:  cfg.Location,
		replies:   cfg.Replies,
		archive:   cfg.Archive,
		reminders: cfg.Reminders,
		confirm:   cfg.Confirm,
		logger:    utils.GetLogger(),
	}
}

// Request opens a session for the entity in the given mode. The availability
// gate is evaluated against the entity's current status; a rejection is
// synchronous and leaves everything closed. An already-active session is
// force-closed first (single-focus invariant).
func (m *Manager) Request(ctx context.Context, entityID string, mode models.SessionMode) (models.SessionView, error) {
	if !models.ValidSessionMode(mode) {
		return models.SessionView{}, fmt.Errorf("unknown session mode %q", mode)
	}

	m.mu.Lock()

	kind, permitted, status, err := m.gateLocked(entityID, mode)
	if err != nil {
		m.mu.Unlock()
		return models.SessionView{}, err
	}
	if !permitted {
		m.mu.Unlock()
		return models.SessionView{}, &ModeUnavailableError{EntityID: entityID, Mode: mode, Status: status}
	}

	var closedView *models.SessionView
	if m.active != nil {
		v := m.forceCloseLocked(models.OutcomeCancelled)
		closedView = &v
	}

	s := &session{
		id:        uuid.New().String(),
		entityID:  entityID,
		kind:      kind,
		mode:      mode,
		state:     models.SessionRequested,
		startedAt: m.clock.Now(),
	}
	m.active = s
	view := m.viewLocked(s)
	m.mu.Unlock()

	if closedView != nil {
		m.archiveView(ctx, *closedView)
	}
	m.logger.Debug("session requested",
		zap.String("sessionId", view.ID),
		zap.String("entityId", entityID),
		zap.String("mode", string(mode)),
	)
	return view, nil
}

// gateLocked checks the mode against the entity's current status.
func (m *Manager) gateLocked(entityID string, mode models.SessionMode) (models.EntityKind, bool, string, error) {
	if p, ok := m.directory.Provider(entityID); ok {
		return models.KindProvider, modePermitted(PermittedProviderModes(p.Status), mode), string(p.Status), nil
	}
	if inst, ok := m.directory.Institution(entityID); ok {
		status := "inactive"
		if inst.IsActive {
			status = "active"
		}
		return models.KindInstitution, modePermitted(PermittedInstitutionModes(inst.IsActive), mode), status, nil
	}
	return "", false, "", fmt.Errorf("entity %s not found in directory", entityID)
}

// Close cancels the active session.
func (m *Manager) Close(ctx context.Context) (models.SessionView, error) {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return models.SessionView{}, ErrNoActiveSession
	}
	view := m.forceCloseLocked(models.OutcomeCancelled)
	m.mu.Unlock()

	m.archiveView(ctx, view)
	return view, nil
}

// forceCloseLocked cancels every pending timer of the active session, rolls
// back a held in_call status, and detaches the session. Caller holds m.mu.
func (m *Manager) forceCloseLocked(outcome models.SessionOutcome) models.SessionView {
	s := m.active
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = nil
	if s.tick != nil {
		s.tick.Cancel()
		s.tick = nil
	}
	if s.state == models.SessionActive && (s.mode == models.ModeCall || s.mode == models.ModeVideo) {
		s.elapsed = 0
		m.restoreProviderStatus(s)
	}
	s.typing = false
	s.state = models.SessionClosed
	s.outcome = outcome
	view := m.viewLocked(s)
	m.active = nil
	return view
}

func (m *Manager) restoreProviderStatus(s *session) {
	status := s.prevStatus
	if status == "" {
		status = models.ProviderOnline
	}
	if err := m.directory.SetProviderStatus(s.entityID, status); err != nil {
		m.logger.Warn("failed to restore provider status", zap.String("entityId", s.entityID), zap.Error(err))
	}
}

// Snapshot returns the active session view.
func (m *Manager) Snapshot() (models.SessionView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return models.SessionView{}, false
	}
	return m.viewLocked(m.active), true
}

// Subscribe registers an outbound event listener. Listeners are invoked
// outside the manager lock.
func (m *Manager) Subscribe(fn func(models.SessionEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) publish(ev models.SessionEvent) {
	m.mu.Lock()
	subs := make([]func(models.SessionEvent), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (m *Manager) event(typ models.SessionEventType, s *session, data map[string]string) models.SessionEvent {
	return models.SessionEvent{
		Type:      typ,
		SessionID: s.id,
		EntityID:  s.entityID,
		Data:      data,
		At:        m.clock.Now(),
	}
}

func (m *Manager) archiveView(ctx context.Context, view models.SessionView) {
	if m.archive == nil {
		return
	}
	if err := m.archive.Save(ctx, view); err != nil {
		m.logger.Warn("failed to archive session", zap.String("sessionId", view.ID), zap.Error(err))
	}
}

// viewLocked builds a defensive snapshot. Caller holds m.mu.
func (m *Manager) viewLocked(s *session) models.SessionView {
	view := models.SessionView{
		ID:                s.id,
		EntityID:          s.entityID,
		Mode:              s.mode,
		State:             s.state,
		Outcome:           s.outcome,
		CounterpartTyping: s.typing,
		ElapsedSeconds:    s.elapsed,
		Toggles:           s.toggles,
		StartedAt:         s.startedAt,
	}
	if s.mode == models.ModeCall || s.mode == models.ModeVideo {
		view.Elapsed = FormatElapsed(s.elapsed)
	}
	if len(s.messages) > 0 {
		view.Messages = make([]models.ChatMessage, len(s.messages))
		copy(view.Messages, s.messages)
	}
	if s.appointment != nil {
		appt := *s.appointment
		view.Appointment = &appt
	}
	return view
}
