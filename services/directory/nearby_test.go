package directory

import (
	"testing"

	"lexmap/models"
)

func TestNearbyProvidersRanking(t *testing.T) {
	center := models.NewGeoPoint(28.60, 77.20)
	c := NewCatalog([]models.Provider{
		{ID: "close-online", Status: models.ProviderOnline, Rating: 5,
			LocationGeo: models.NewGeoPoint(28.60, 77.20)},
		{ID: "close-offline", Status: models.ProviderOffline, Rating: 5,
			LocationGeo: models.NewGeoPoint(28.601, 77.201)},
		{ID: "far-away", Status: models.ProviderOnline, Rating: 5,
			LocationGeo: models.NewGeoPoint(30.00, 77.20)},
	}, nil)

	got := c.NearbyProviders(center, 10)
	if len(got) != 2 {
		t.Fatalf("want 2 results (far provider excluded), got %d", len(got))
	}
	if got[0].ID != "close-online" {
		t.Fatalf("online provider at the center must rank first, got %s", got[0].ID)
	}
	if !got[0].Preferred || got[1].Preferred {
		t.Fatalf("exactly the top result is preferred: %v %v", got[0].Preferred, got[1].Preferred)
	}
	if got[0].Proximity > 1 {
		t.Fatalf("provider at the center should be ~0 metres away, got %f", got[0].Proximity)
	}
	if got[1].Proximity <= got[0].Proximity {
		t.Fatalf("second result must be farther: %f <= %f", got[1].Proximity, got[0].Proximity)
	}
}

func TestNearbyProvidersEdgeCases(t *testing.T) {
	c := NewCatalog(testProviders(), nil)

	if got := c.NearbyProviders(models.GeoPoint{}, 10); len(got) != 0 {
		t.Fatalf("invalid center must yield an empty result, got %d", len(got))
	}

	empty := NewCatalog(nil, nil)
	if got := empty.NearbyProviders(models.NewGeoPoint(28.6, 77.2), 10); len(got) != 0 {
		t.Fatalf("empty catalog must yield an empty result, got %d", len(got))
	}

	// Nobody within range is a valid empty answer, not an error.
	if got := c.NearbyProviders(models.NewGeoPoint(10.0, 10.0), 5); len(got) != 0 {
		t.Fatalf("out-of-range center must yield an empty result, got %d", len(got))
	}
}

func TestHaversine(t *testing.T) {
	// Delhi to Mumbai is roughly 1150 km.
	d := haversine(28.6139, 77.2090, 19.0760, 72.8777)
	if d < 1100 || d > 1200 {
		t.Fatalf("Delhi-Mumbai distance out of range: %f km", d)
	}
	if z := haversine(28.6, 77.2, 28.6, 77.2); z != 0 {
		t.Fatalf("identical points must be 0 km apart, got %f", z)
	}
}
