package session

import (
	"context"
	"sync"
	"time"

	"lexmap/models"
	"lexmap/services/directory"
	"lexmap/services/intelligence"
	"lexmap/services/location"
	"lexmap/utils"
)

// fakeClock drives timer callbacks deterministically. Advance fires due
// callbacks in deadline order, including ones scheduled by the callbacks
// themselves when they fall inside the window.
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
		// Callbacks take the manager lock and may schedule again.
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// memArchive records every saved snapshot for assertions.
type memArchive struct {
	mu    sync.Mutex
	views []models.SessionView
}

func (a *memArchive) Save(_ context.Context, view models.SessionView) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.views = append(a.views, view)
	return nil
}

func (a *memArchive) Load(_ context.Context, sessionID string) (*models.SessionView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.views {
		if a.views[i].ID == sessionID {
			v := a.views[i]
			return &v, nil
		}
	}
	return nil, ErrNoActiveSession
}

func (a *memArchive) last() (models.SessionView, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.views) == 0 {
		return models.SessionView{}, false
	}
	return a.views[len(a.views)-1], true
}

// testFixture bundles a manager with its collaborators.
type testFixture struct {
	clock    *fakeClock
	catalog  *directory.Catalog
	location *location.DefaultLocationService
	archive  *memArchive
	manager  *Manager
}

func newTestFixture(confirm Confirmer) *testFixture {
	clock := newFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	catalog := directory.NewCatalog(
		[]models.Provider{
			{ID: "adv-online", Name: "A. Sharma", Status: models.ProviderOnline, Rating: 4.6,
				LocationGeo: models.NewGeoPoint(28.61, 77.21)},
			{ID: "adv-offline", Name: "R. Gupta", Status: models.ProviderOffline, Rating: 4.1,
				LocationGeo: models.NewGeoPoint(28.63, 77.22)},
			{ID: "adv-busy", Name: "S. Verma", Status: models.ProviderInCall, Rating: 4.8,
				LocationGeo: models.NewGeoPoint(28.58, 77.19)},
		},
		[]models.Institution{
			{ID: "inst-open", Name: "District Court", Kind: models.KindCourt, IsActive: true,
				LocationGeo: models.NewGeoPoint(28.62, 77.24)},
			{ID: "inst-closed", Name: "Bar Council", Kind: models.KindBarCouncil, IsActive: false,
				LocationGeo: models.NewGeoPoint(28.60, 77.23)},
		},
	)
	locSvc := &location.DefaultLocationService{
		Store: location.NewMemoryStore(),
		Clock: clock,
	}
	archive := &memArchive{}
	manager := NewManager(Config{
		Clock:     clock,
		Directory: catalog,
		Location:  locSvc,
		Replies:   intelligence.NewFixedPoolReplySource(7),
		Archive:   archive,
		Confirm:   confirm,
		Seed:      7,
	})
	return &testFixture{
		clock:    clock,
		catalog:  catalog,
		location: locSvc,
		archive:  archive,
		manager:  manager,
	}
}
