package models

// MarkerDescriptor is the visual recipe for one map marker. Descriptors are
// value types: identical inputs to the marker factory yield identical
// descriptors, which is what makes memoized rendering safe.
type MarkerDescriptor struct {
	Size        float64 `json:"size"`
	StrokeColor string  `json:"strokeColor"`
	Glyph       string  `json:"glyph"`
}

// Marker pairs a directory entity with its position and descriptor for one
// rendered frame.
type Marker struct {
	EntityID   string           `json:"entityId"`
	Kind       EntityKind       `json:"kind"`
	Position   GeoPoint         `json:"position"`
	Descriptor MarkerDescriptor `json:"descriptor"`
}
