package models

import "time"

// ProviderStatus is the authoritative availability state of a provider.
// It changes only through session transitions or explicit directory updates,
// never through the presence simulator.
type ProviderStatus string

const (
	ProviderOnline  ProviderStatus = "online"
	ProviderOffline ProviderStatus = "offline"
	ProviderInCall  ProviderStatus = "in_call"
)

// ValidProviderStatus reports whether s is a known status value.
func ValidProviderStatus(s ProviderStatus) bool {
	switch s {
	case ProviderOnline, ProviderOffline, ProviderInCall:
		return true
	}
	return false
}

// ConnectionQuality is a non-authoritative liveness hint mutated by the
// presence simulator.
type ConnectionQuality string

const (
	QualityExcellent ConnectionQuality = "excellent"
	QualityGood      ConnectionQuality = "good"
	QualityPoor      ConnectionQuality = "poor"
)

// Provider is a lawyer/advocate entity with live status and consultation
// metadata. Directory membership is fixed per load; only the status-like
// fields mutate afterwards.
type Provider struct {
	ID                string            `bson:"id" json:"id"`
	Name              string            `bson:"name" json:"name"`
	Specializations   []string          `bson:"specializations" json:"specializations"`
	LocationGeo       GeoPoint          `bson:"locationGeo" json:"locationGeo"`
	Status            ProviderStatus    `bson:"status" json:"status"`
	ConnectionQuality ConnectionQuality `bson:"connectionQuality" json:"connectionQuality"`
	Rating            float64           `bson:"rating" json:"rating"`
	ConsultationFee   float64           `bson:"consultationFee" json:"consultationFee"`
	ResponseTime      string            `bson:"responseTime" json:"responseTime"`
	Expertise         []string          `bson:"expertise" json:"expertise"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProviderDTO is the public projection of a provider returned by the
// directory and nearby-search endpoints.
type ProviderDTO struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Specializations   []string          `json:"specializations"`
	LocationGeo       GeoPoint          `json:"locationGeo"`
	Status            ProviderStatus    `json:"status"`
	ConnectionQuality ConnectionQuality `json:"connectionQuality"`
	Rating            float64           `json:"rating"`
	ConsultationFee   float64           `json:"consultationFee"`
	ResponseTime      string            `json:"responseTime"`
	Expertise         []string          `json:"expertise,omitempty"`
	Proximity         float64           `json:"proximity,omitempty"` // metres from the search center
	Preferred         bool              `json:"preferred,omitempty"`
}

// DTO converts a provider to its public projection.
func (p Provider) DTO() ProviderDTO {
	return ProviderDTO{
		ID:                p.ID,
		Name:              p.Name,
		Specializations:   p.Specializations,
		LocationGeo:       p.LocationGeo,
		Status:            p.Status,
		ConnectionQuality: p.ConnectionQuality,
		Rating:            p.Rating,
		ConsultationFee:   p.ConsultationFee,
		ResponseTime:      p.ResponseTime,
		Expertise:         p.Expertise,
	}
}
