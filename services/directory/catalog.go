package directory

import (
	"fmt"
	"sync"
	"time"

	directoryRepo "lexmap/database/repository/directory"
	"lexmap/models"
	"lexmap/utils"

	"go.uber.org/zap"
)

// Catalog is the single source of truth for directory entities after load.
// Components address entities by id through the catalog; no direct object
// references are shared across components.
type Catalog struct {
	mu               sync.RWMutex
	providers        map[string]*models.Provider
	institutions     map[string]*models.Institution
	providerOrder    []string
	institutionOrder []string
	degraded         bool

	repo   directoryRepo.DirectoryRepository
	logger *zap.Logger
}

var _ DirectoryService = (*Catalog)(nil)

// NewCatalog builds an id-indexed catalog from preloaded records. Used
// directly in tests and by LoadCatalog.
func NewCatalog(providers []models.Provider, institutions []models.Institution) *Catalog {
	c := &Catalog{
		providers:    make(map[string]*models.Provider, len(providers)),
		institutions: make(map[string]*models.Institution, len(institutions)),
		logger:       utils.GetLogger(),
	}
	for i := range providers {
		p := providers[i]
		if _, dup := c.providers[p.ID]; dup {
			continue
		}
		c.providers[p.ID] = &p
		c.providerOrder = append(c.providerOrder, p.ID)
	}
	for i := range institutions {
		inst := institutions[i]
		if _, dup := c.institutions[inst.ID]; dup {
			continue
		}
		c.institutions[inst.ID] = &inst
		c.institutionOrder = append(c.institutionOrder, inst.ID)
	}
	return c
}

// LoadCatalog reads the directory from the repository. A load failure yields
// a usable empty catalog flagged as degraded; the caller surfaces the warning
// banner, the console keeps running.
func LoadCatalog(repo directoryRepo.DirectoryRepository) *Catalog {
	logger := utils.GetLogger()

	providers, perr := repo.GetProviders()
	institutions, ierr := repo.GetInstitutions()
	if perr != nil || ierr != nil {
		logger.Warn("directory catalog load failed, serving empty fallback",
			zap.NamedError("providers", perr),
			zap.NamedError("institutions", ierr),
		)
		c := NewCatalog(nil, nil)
		c.degraded = true
		c.repo = repo
		return c
	}

	c := NewCatalog(providers, institutions)
	c.repo = repo
	logger.Info("directory catalog loaded",
		zap.Int("providers", len(providers)),
		zap.Int("institutions", len(institutions)),
	)
	return c
}

func (c *Catalog) Providers() []models.Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Provider, 0, len(c.providerOrder))
	for _, id := range c.providerOrder {
		out = append(out, *c.providers[id])
	}
	return out
}

func (c *Catalog) Institutions() []models.Institution {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Institution, 0, len(c.institutionOrder))
	for _, id := range c.institutionOrder {
		out = append(out, *c.institutions[id])
	}
	return out
}

func (c *Catalog) Provider(id string) (models.Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.providers[id]
	if !ok {
		return models.Provider{}, false
	}
	return *p, true
}

func (c *Catalog) Institution(id string) (models.Institution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inst, ok := c.institutions[id]
	if !ok {
		return models.Institution{}, false
	}
	return *inst, true
}

func (c *Catalog) EntityKind(id string) (models.EntityKind, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.providers[id]; ok {
		return models.KindProvider, true
	}
	if _, ok := c.institutions[id]; ok {
		return models.KindInstitution, true
	}
	return "", false
}

// SetProviderStatus mutates the authoritative status field. The change is
// applied in memory first and persisted best-effort; the catalog stays the
// source of truth either way.
func (c *Catalog) SetProviderStatus(id string, status models.ProviderStatus) error {
	if !models.ValidProviderStatus(status) {
		return fmt.Errorf("unknown provider status %q", status)
	}
	c.mu.Lock()
	p, ok := c.providers[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("provider with id %s not found", id)
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	c.mu.Unlock()

	if c.repo != nil {
		if err := c.repo.UpdateProviderStatus(id, status); err != nil {
			c.logger.Warn("failed to persist provider status", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

// SetConnectionQuality mutates the simulated liveness hint.
func (c *Catalog) SetConnectionQuality(id string, quality models.ConnectionQuality) error {
	c.mu.Lock()
	p, ok := c.providers[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("provider with id %s not found", id)
	}
	p.ConnectionQuality = quality
	p.UpdatedAt = time.Now()
	c.mu.Unlock()

	if c.repo != nil {
		if err := c.repo.UpdateConnectionQuality(id, quality); err != nil {
			c.logger.Warn("failed to persist connection quality", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

// RefreshInstitutionActivity recomputes IsActive from working hours and
// returns how many institutions changed.
func (c *Catalog) RefreshInstitutionActivity(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := 0
	for _, id := range c.institutionOrder {
		inst := c.institutions[id]
		active := inst.OpenAt(now)
		if inst.IsActive != active {
			inst.IsActive = active
			changed++
		}
	}
	return changed
}

func (c *Catalog) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}
