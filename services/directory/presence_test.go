package directory

import (
	"sync"
	"testing"
	"time"

	"lexmap/models"
	"lexmap/utils"
)

// fakeClock is a minimal deterministic utils.Clock for driving ticks.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*fakeTask
}

type fakeTask struct {
	clock     *fakeClock
	at        time.Time
	fn        func()
	fired     bool
	cancelled bool
}

func (t *fakeTask) Cancel() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.cancelled = true
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) utils.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTask{clock: c, at: c.now.Add(d), fn: f}
	c.tasks = append(c.tasks, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var next *fakeTask
		for _, t := range c.tasks {
			if t.fired || t.cancelled || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func TestPresenceTickRefreshesInstitutions(t *testing.T) {
	c := NewCatalog(testProviders(), testInstitutions())
	clock := newFakeClock(time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC))
	c.RefreshInstitutionActivity(clock.Now())

	// Flip one manually so the next tick has something to correct.
	c.mu.Lock()
	c.institutions["inst-1"].IsActive = true
	c.mu.Unlock()

	sim := NewPresenceSimulator(c, clock, 15*time.Second, 1)
	sim.Start()
	defer sim.Stop()
	clock.Advance(15 * time.Second)

	inst, _ := c.Institution("inst-1")
	if inst.IsActive {
		t.Fatalf("tick must re-derive activity from working hours")
	}
}

func TestPresenceNeverTouchesStatus(t *testing.T) {
	c := NewCatalog(testProviders(), testInstitutions())
	clock := newFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	before := map[string]models.ProviderStatus{}
	for _, p := range c.Providers() {
		before[p.ID] = p.Status
	}

	sim := NewPresenceSimulator(c, clock, 15*time.Second, 1)
	sim.Start()
	defer sim.Stop()
	clock.Advance(5 * 15 * time.Second)

	for _, p := range c.Providers() {
		if p.Status != before[p.ID] {
			t.Fatalf("%s: status mutated from %s to %s", p.ID, before[p.ID], p.Status)
		}
		switch p.ConnectionQuality {
		case models.QualityExcellent, models.QualityGood, models.QualityPoor, "":
		default:
			t.Fatalf("%s: unknown quality %q", p.ID, p.ConnectionQuality)
		}
	}
}

func TestPresenceStopCancelsPendingTick(t *testing.T) {
	c := NewCatalog(nil, testInstitutions())
	clock := newFakeClock(time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC))

	// Seed a stale activity flag; only a tick would correct it.
	c.mu.Lock()
	c.institutions["inst-1"].IsActive = true
	c.mu.Unlock()

	sim := NewPresenceSimulator(c, clock, 15*time.Second, 1)
	sim.Start()
	sim.Stop()
	clock.Advance(time.Minute)

	inst, _ := c.Institution("inst-1")
	if !inst.IsActive {
		t.Fatalf("no tick may run after Stop")
	}

	// Stop twice is a no-op.
	sim.Stop()
}
