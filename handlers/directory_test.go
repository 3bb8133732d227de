package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lexmap/models"
	directorySvc "lexmap/services/directory"
	locationSvc "lexmap/services/location"
	"lexmap/services/maps"
	"lexmap/utils"

	"github.com/gin-gonic/gin"
)

func testRouter() (*gin.Engine, *directorySvc.Catalog) {
	gin.SetMode(gin.TestMode)
	catalog := directorySvc.NewCatalog(
		[]models.Provider{
			{ID: "adv-1", Name: "A. Sharma", Status: models.ProviderOnline,
				LocationGeo: models.NewGeoPoint(28.61, 77.21)},
		},
		[]models.Institution{
			{ID: "inst-1", Name: "District Court", Kind: models.KindCourt, IsActive: true,
				LocationGeo: models.NewGeoPoint(28.62, 77.24)},
		},
	)
	locService := &locationSvc.DefaultLocationService{
		Store: locationSvc.NewMemoryStore(),
		Clock: utils.NewRealClock(),
	}
	renderer := maps.NewViewport(catalog)

	r := gin.New()
	r.GET("/api/directory/providers", GetProvidersHandler(catalog))
	r.GET("/api/directory/entities/:id", GetEntityHandler(catalog))
	r.GET("/api/directory/providers/nearby", NearbyProvidersHandler(catalog))
	r.PUT("/api/location/:deviceID", ReportLocationHandler(locService, renderer))
	r.GET("/api/location/:deviceID", ResolveLocationHandler(locService))
	return r, catalog
}

func TestGetProviders(t *testing.T) {
	r, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/directory/providers", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		Providers []models.ProviderDTO `json:"providers"`
		Degraded  bool                 `json:"degraded"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Providers) != 1 || body.Providers[0].ID != "adv-1" {
		t.Fatalf("unexpected providers %+v", body.Providers)
	}
	if body.Degraded {
		t.Fatalf("in-memory catalog must not report degraded")
	}
}

func TestGetEntityNotFound(t *testing.T) {
	r, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/directory/entities/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
}

func TestNearbyRequiresCoordinates(t *testing.T) {
	r, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/directory/providers/nearby", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing coords: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/directory/providers/nearby?lat=28.6&lng=77.2", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid coords: status %d", w.Code)
	}
}

func TestReportAndResolveLocation(t *testing.T) {
	r, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/location/dev-1",
		strings.NewReader(`{"latitude":28.61,"longitude":77.21,"granted":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("report: status %d body %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/location/dev-1", nil)
	r.ServeHTTP(w, req)
	var loc models.UserLocation
	if err := json.Unmarshal(w.Body.Bytes(), &loc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !loc.Granted || loc.Latitude != 28.61 {
		t.Fatalf("unexpected location %+v", loc)
	}

	// Denial wipes the coordinates even if the client keeps sending them.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/location/dev-1",
		strings.NewReader(`{"latitude":28.61,"longitude":77.21,"granted":false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/location/dev-1", nil)
	r.ServeHTTP(w, req)
	json.Unmarshal(w.Body.Bytes(), &loc)
	if loc.Granted || loc.Latitude != 0 {
		t.Fatalf("denial must drop coordinates, got %+v", loc)
	}
}
