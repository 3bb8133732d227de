package directory

import (
	"math/rand"
	"sync"
	"time"

	"lexmap/models"
	"lexmap/utils"

	"go.uber.org/zap"
)

// maxQualityMutationsPerTick bounds how many providers a single tick touches.
const maxQualityMutationsPerTick = 3

var qualityCycle = []models.ConnectionQuality{
	models.QualityExcellent,
	models.QualityGood,
	models.QualityPoor,
}

// PresenceSimulator periodically mutates connection quality hints to emulate
// a live backend, and refreshes institution activity from working hours. It
// only touches non-authoritative fields; provider status stays owned by
// session transitions.
type PresenceSimulator struct {
	catalog  *Catalog
	clock    utils.Clock
	interval time.Duration
	rng      *rand.Rand
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	pending utils.Task
}

// NewPresenceSimulator builds a stopped simulator. The seed makes mutation
// order reproducible.
func NewPresenceSimulator(catalog *Catalog, clock utils.Clock, interval time.Duration, seed int64) *PresenceSimulator {
	return &PresenceSimulator{
		catalog:  catalog,
		clock:    clock,
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   utils.GetLogger(),
	}
}

// Start schedules the first tick. Calling Start on a running simulator is a
// no-op.
func (s *PresenceSimulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.pending = s.clock.AfterFunc(s.interval, s.tick)
	s.logger.Info("presence simulator started", zap.Duration("interval", s.interval))
}

// Stop cancels the pending tick. After Stop returns no further mutation is
// applied; a tick racing the stop observes running=false and bails out.
func (s *PresenceSimulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	s.logger.Info("presence simulator stopped")
}

func (s *PresenceSimulator) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	targets := s.pickTargets()
	s.mu.Unlock()

	for _, t := range targets {
		if err := s.catalog.SetConnectionQuality(t.id, t.quality); err != nil {
			s.logger.Warn("presence mutation failed", zap.String("id", t.id), zap.Error(err))
		}
	}
	s.catalog.RefreshInstitutionActivity(s.clock.Now())

	s.mu.Lock()
	if s.running {
		s.pending = s.clock.AfterFunc(s.interval, s.tick)
	}
	s.mu.Unlock()
}

type qualityMutation struct {
	id      string
	quality models.ConnectionQuality
}

// pickTargets selects a bounded random subset of providers and the quality
// each should rotate to. Caller holds s.mu for rng access.
func (s *PresenceSimulator) pickTargets() []qualityMutation {
	providers := s.catalog.Providers()
	if len(providers) == 0 {
		return nil
	}
	count := maxQualityMutationsPerTick
	if count > len(providers) {
		count = len(providers)
	}
	perm := s.rng.Perm(len(providers))
	out := make([]qualityMutation, 0, count)
	for _, idx := range perm[:count] {
		p := providers[idx]
		out = append(out, qualityMutation{
			id:      p.ID,
			quality: qualityCycle[s.rng.Intn(len(qualityCycle))],
		})
	}
	return out
}
