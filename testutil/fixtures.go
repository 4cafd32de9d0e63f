package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/entity"
)

// CreateLocation inserts a minimal location.
func CreateLocation(t *testing.T, db *gorm.DB, name string) *entity.Location {
	t.Helper()
	loc := &entity.Location{
		Name:        name,
		Country:     "Cambodia",
		Description: "test location",
		Lat:         13.4125,
		Long:        103.867,
	}
	if err := db.Create(loc).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return loc
}

// CreatePlace inserts a place under loc.
func CreatePlace(t *testing.T, db *gorm.DB, loc *entity.Location, name string) *entity.Place {
	t.Helper()
	p := &entity.Place{
		Name:        name,
		Description: "test place",
		LocationID:  loc.ID,
		Category:    "temple",
		ImageURL:    "https://img.test/sample.jpg",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create place: %v", err)
	}
	return p
}

// CreateTrip inserts a hotel trip under loc.
func CreateTrip(t *testing.T, db *gorm.DB, loc *entity.Location, title string) *entity.Trip {
	t.Helper()
	trip := &entity.Trip{
		Title:       title,
		Description: "test trip",
		LocationID:  loc.ID,
		Type:        "hotel",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Price:       150.0,
	}
	if err := db.Create(trip).Error; err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

// DoJSON performs a JSON request against the engine, optionally with a
// bearer token, and returns the recorder.
func DoJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorder's JSON body into out.
func Decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
