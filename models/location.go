package models

import "time"

// UserLocation is the one-shot geolocation result for a device. It is only
// ever replaced wholesale, never partially mutated. A denied grant carries
// no coordinates and must never be substituted with a default position.
type UserLocation struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Granted    bool      `json:"granted"`
	ReportedAt time.Time `json:"reportedAt,omitzero"`
}

// GeoPoint converts a granted location to a GeoJSON point.
func (l UserLocation) GeoPoint() GeoPoint {
	return NewGeoPoint(l.Latitude, l.Longitude)
}
