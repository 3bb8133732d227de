package models

import "time"

// InstitutionKind classifies a court or legal body.
type InstitutionKind string

const (
	KindSupremeCourt InstitutionKind = "supreme_court"
	KindCourt        InstitutionKind = "court"
	KindBarCouncil   InstitutionKind = "bar_council"
	KindLegalAid     InstitutionKind = "legal_aid"
)

// ValidInstitutionKind reports whether k is a known institution kind.
func ValidInstitutionKind(k InstitutionKind) bool {
	switch k {
	case KindSupremeCourt, KindCourt, KindBarCouncil, KindLegalAid:
		return true
	}
	return false
}

// WorkingHours is a daily open/close window in local "HH:MM" form.
type WorkingHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// Institution is a court/bar-council/legal-aid body. Immutable after load
// except IsActive, which is derived from working hours.
type Institution struct {
	ID           string          `bson:"id" json:"id"`
	Name         string          `bson:"name" json:"name"`
	Kind         InstitutionKind `bson:"kind" json:"kind"`
	LocationGeo  GeoPoint        `bson:"locationGeo" json:"locationGeo"`
	Jurisdiction string          `bson:"jurisdiction" json:"jurisdiction"`
	WorkingHours WorkingHours    `bson:"workingHours" json:"workingHours"`
	IsActive     bool            `bson:"isActive" json:"isActive"`
	Services     []string        `bson:"services" json:"services"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt,omitzero"`
}

// OpenAt reports whether t falls inside the institution's working hours.
// Malformed windows count as closed.
func (i Institution) OpenAt(t time.Time) bool {
	open, err := time.Parse("15:04", i.WorkingHours.Open)
	if err != nil {
		return false
	}
	closeAt, err := time.Parse("15:04", i.WorkingHours.Close)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	openMin := open.Hour()*60 + open.Minute()
	closeMin := closeAt.Hour()*60 + closeAt.Minute()
	return minute >= openMin && minute < closeMin
}
