package place_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/testutil"
)

func ratedPlace(t *testing.T, db *gorm.DB, loc *entity.Location, name, category string, rating float64) *entity.Place {
	t.Helper()
	p := testutil.CreatePlace(t, db, loc, name)
	require.NoError(t, db.Model(p).Updates(map[string]any{
		"category":       category,
		"average_rating": rating,
	}).Error)
	return p
}

func TestListPlacesFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	siemReap := testutil.CreateLocation(t, db, "Siem Reap")
	phnomPenh := testutil.CreateLocation(t, db, "Phnom Penh")

	ratedPlace(t, db, siemReap, "Angkor Wat", "temple", 4.8)
	ratedPlace(t, db, siemReap, "Pub Street", "nightlife", 3.9)
	ratedPlace(t, db, phnomPenh, "Royal Palace", "temple", 4.2)

	list := func(path string) []entity.Place {
		w := testutil.DoJSON(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out struct {
			Data []entity.Place `json:"data"`
		}
		testutil.Decode(t, w, &out)
		return out.Data
	}

	assert.Len(t, list("/api/places"), 3)
	assert.Len(t, list(fmt.Sprintf("/api/places?locationId=%d", siemReap.ID)), 2)
	assert.Len(t, list("/api/places?category=temple"), 2)
	assert.Len(t, list("/api/places?minRating=4.0"), 2)
	assert.Len(t, list(fmt.Sprintf("/api/places?locationId=%d&category=temple&minRating=4.5", siemReap.ID)), 1)

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/places?minRating=high", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPlaceWithReviewCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	loc := testutil.CreateLocation(t, db, "Siem Reap")
	place := testutil.CreatePlace(t, db, loc, "Angkor Wat")
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)

	require.NoError(t, db.Create(&entity.Review{UserID: alice.ID, PlaceID: place.ID, Rating: 5, Comment: "wow"}).Error)

	w := testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/api/places/%d", place.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Name        string `json:"name"`
		ReviewCount int    `json:"reviewCount"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
	}
	testutil.Decode(t, w, &out)
	assert.Equal(t, "Angkor Wat", out.Name)
	assert.Equal(t, 1, out.ReviewCount)
	assert.Equal(t, "Siem Reap", out.Location.Name)

	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, r, http.MethodGet, "/api/places/9999", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, r, http.MethodGet, "/api/places/abc", "", nil).Code)
}

func TestRecommendedPlaces(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	loc := testutil.CreateLocation(t, db, "Siem Reap")

	for i := 0; i < 6; i++ {
		ratedPlace(t, db, loc, fmt.Sprintf("Temple %d", i), "temple", 4.0+float64(i)*0.1)
	}
	ratedPlace(t, db, loc, "Mediocre Bar", "nightlife", 2.5)

	w := testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/api/places/recommended?locationId=%d", loc.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out []entity.Place
	testutil.Decode(t, w, &out)
	require.Len(t, out, 5, "capped at five")
	for i := 1; i < len(out); i++ {
		require.NotNil(t, out[i].AverageRating)
		assert.GreaterOrEqual(t, *out[i-1].AverageRating, *out[i].AverageRating, "sorted best first")
	}

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/places/recommended", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePlaceAdminGated(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	loc := testutil.CreateLocation(t, db, "Siem Reap")
	admin := testutil.CreateUser(t, db, "admin@example.com", entity.RoleAdmin)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)

	body := map[string]any{
		"name":        "Bayon",
		"description": "Faces everywhere",
		"locationId":  loc.ID,
		"category":    "temple",
		"imageUrl":    "https://img.test/bayon.jpg",
	}

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/admin/places", testutil.Token(t, alice), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/admin/places", testutil.Token(t, admin), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// image is mandatory
	noImage := map[string]any{
		"name":        "Ta Prohm",
		"description": "Tree roots",
		"locationId":  loc.ID,
		"category":    "temple",
	}
	w = testutil.DoJSON(t, r, http.MethodPost, "/api/admin/places", testutil.Token(t, admin), noImage)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No image provided")

	// dangling location
	body["locationId"] = 9999
	w = testutil.DoJSON(t, r, http.MethodPost, "/api/admin/places", testutil.Token(t, admin), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Location does not exist")
}

func TestUploadPlaceImage(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	loc := testutil.CreateLocation(t, db, "Siem Reap")
	place := testutil.CreatePlace(t, db, loc, "Angkor Wat")
	admin := testutil.CreateUser(t, db, "admin@example.com", entity.RoleAdmin)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "angkor.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/places/%d/upload", place.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testutil.Token(t, admin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got entity.Place
	require.NoError(t, db.First(&got, place.ID).Error)
	assert.Equal(t, "https://img.test/angkor.png", got.ImageURL)
}
