package maps

import (
	"testing"

	"lexmap/models"
)

func TestProviderDescriptorColors(t *testing.T) {
	cases := []struct {
		status models.ProviderStatus
		want   string
	}{
		{models.ProviderOnline, "#22c55e"},
		{models.ProviderInCall, "#ef4444"},
		{models.ProviderOffline, "#9ca3af"},
		{"mystery", "#9ca3af"},
	}
	for _, tc := range cases {
		d := ProviderDescriptor(tc.status, false)
		if d.StrokeColor != tc.want {
			t.Fatalf("status %s: stroke %s, want %s", tc.status, d.StrokeColor, tc.want)
		}
		if d.Glyph != "briefcase" {
			t.Fatalf("status %s: glyph %s", tc.status, d.Glyph)
		}
	}
}

func TestSelectionScalesSizeOnly(t *testing.T) {
	base := ProviderDescriptor(models.ProviderOnline, false)
	selected := ProviderDescriptor(models.ProviderOnline, true)

	if base.Size != 32 {
		t.Fatalf("base size %f", base.Size)
	}
	if selected.Size != 40 {
		t.Fatalf("selected size must be base*1.25, got %f", selected.Size)
	}
	if selected.StrokeColor != base.StrokeColor || selected.Glyph != base.Glyph {
		t.Fatalf("selection may only change size: %+v vs %+v", base, selected)
	}
}

func TestDescriptorsArePure(t *testing.T) {
	for i := 0; i < 3; i++ {
		a := ProviderDescriptor(models.ProviderInCall, true)
		b := ProviderDescriptor(models.ProviderInCall, true)
		if a != b {
			t.Fatalf("identical inputs must yield identical descriptors: %+v vs %+v", a, b)
		}
		x := InstitutionDescriptor(models.KindCourt, false)
		y := InstitutionDescriptor(models.KindCourt, false)
		if x != y {
			t.Fatalf("identical inputs must yield identical descriptors: %+v vs %+v", x, y)
		}
	}
}

func TestInstitutionGlyphs(t *testing.T) {
	cases := []struct {
		kind models.InstitutionKind
		want string
	}{
		{models.KindSupremeCourt, "scales"},
		{models.KindCourt, "gavel"},
		{models.KindBarCouncil, "shield"},
		{models.KindLegalAid, "hands"},
		{"ministry", "building"},
	}
	for _, tc := range cases {
		d := InstitutionDescriptor(tc.kind, false)
		if d.Glyph != tc.want {
			t.Fatalf("kind %s: glyph %s, want %s", tc.kind, d.Glyph, tc.want)
		}
		if d.StrokeColor != "#334155" {
			t.Fatalf("kind %s: stroke %s", tc.kind, d.StrokeColor)
		}
	}
}

func TestUserDescriptor(t *testing.T) {
	d := UserDescriptor()
	if d.Size != 32 || d.StrokeColor != "#2563eb" || d.Glyph != "dot" {
		t.Fatalf("unexpected user descriptor %+v", d)
	}
}
