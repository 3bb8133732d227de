package directoryRepo

import (
	"encoding/json"
	"fmt"
	"os"

	"lexmap/models"
)

// SeedFile is the fixture format consumed at first boot: a single JSON
// document with provider and institution arrays.
type SeedFile struct {
	Providers    []models.Provider    `json:"providers"`
	Institutions []models.Institution `json:"institutions"`
}

// LoadSeedFile reads and parses a directory fixture from disk.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &seed, nil
}
