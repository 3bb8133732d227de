package directoryRepo

import "lexmap/models"

// DirectoryRepository defines data access for the lawyer/court directory.
// The directory is read-mostly: membership never changes during a process
// lifetime, only status-like fields are written back.
type DirectoryRepository interface {
	// GetProviders retrieves all provider records.
	GetProviders() ([]models.Provider, error)
	// GetInstitutions retrieves all institution records.
	GetInstitutions() ([]models.Institution, error)
	// UpdateProviderStatus persists a provider's availability status.
	UpdateProviderStatus(id string, status models.ProviderStatus) error
	// UpdateConnectionQuality persists a provider's connection quality hint.
	UpdateConnectionQuality(id string, quality models.ConnectionQuality) error
	// SeedIfEmpty inserts fixture records when both collections are empty.
	SeedIfEmpty(providers []models.Provider, institutions []models.Institution) error
}
