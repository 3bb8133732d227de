package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from a latitude/longitude pair.
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Lat returns the latitude, or 0 when the point is malformed.
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Lng returns the longitude, or 0 when the point is malformed.
func (p GeoPoint) Lng() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Valid reports whether the point carries a usable coordinate pair.
func (p GeoPoint) Valid() bool {
	return len(p.Coordinates) >= 2
}

// EntityKind distinguishes the two directory entity families.
type EntityKind string

const (
	KindProvider    EntityKind = "provider"
	KindInstitution EntityKind = "institution"
	// KindUser marks the synthetic marker for the user's own position.
	KindUser EntityKind = "user"
)

// MapLayer is a toggle-able marker group on the map.
type MapLayer string

const (
	LayerProviders    MapLayer = "providers"
	LayerInstitutions MapLayer = "institutions"
)
