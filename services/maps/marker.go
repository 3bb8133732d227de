package maps

import "lexmap/models"

// Marker geometry. Selection scales size by exactly 25% and changes nothing
// else; hover state is deliberately not an input, so markers never jump.
const (
	baseMarkerSize = 32.0
	selectedScale  = 1.25
)

const (
	strokeOnline      = "#22c55e"
	strokeInCall      = "#ef4444"
	strokeOffline     = "#9ca3af"
	strokeInstitution = "#334155"
	strokeUser        = "#2563eb"
)

var institutionGlyphs = map[models.InstitutionKind]string{
	models.KindSupremeCourt: "scales",
	models.KindCourt:        "gavel",
	models.KindBarCouncil:   "shield",
	models.KindLegalAid:     "hands",
}

func markerSize(selected bool) float64 {
	if selected {
		return baseMarkerSize * selectedScale
	}
	return baseMarkerSize
}

// ProviderDescriptor is a pure function of (status, selected): identical
// inputs yield identical descriptors, which makes memoized rendering safe.
func ProviderDescriptor(status models.ProviderStatus, selected bool) models.MarkerDescriptor {
	stroke := strokeOffline
	switch status {
	case models.ProviderOnline:
		stroke = strokeOnline
	case models.ProviderInCall:
		stroke = strokeInCall
	}
	return models.MarkerDescriptor{
		Size:        markerSize(selected),
		StrokeColor: stroke,
		Glyph:       "briefcase",
	}
}

// InstitutionDescriptor is a pure function of (kind, selected). Institutions
// carry a fixed per-kind glyph with no status dependency.
func InstitutionDescriptor(kind models.InstitutionKind, selected bool) models.MarkerDescriptor {
	glyph, ok := institutionGlyphs[kind]
	if !ok {
		glyph = "building"
	}
	return models.MarkerDescriptor{
		Size:        markerSize(selected),
		StrokeColor: strokeInstitution,
		Glyph:       glyph,
	}
}

// UserDescriptor renders the user's own position. It is never selectable.
func UserDescriptor() models.MarkerDescriptor {
	return models.MarkerDescriptor{
		Size:        baseMarkerSize,
		StrokeColor: strokeUser,
		Glyph:       "dot",
	}
}
