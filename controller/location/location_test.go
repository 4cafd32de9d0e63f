package location_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/testutil"
)

func TestLocationAdminCRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	admin := testutil.CreateUser(t, db, "admin@example.com", entity.RoleAdmin)
	token := testutil.Token(t, admin)

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/admin/locations", token, map[string]any{
		"name":        "Siem Reap",
		"country":     "Cambodia",
		"description": "Gateway to Angkor",
		"lat":         13.4125,
		"long":        103.867,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.Location
	testutil.Decode(t, w, &created)

	w = testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/locations/%d", created.ID), token, map[string]any{
		"name":    "Siem Reap Province",
		"country": "Cambodia",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated entity.Location
	testutil.Decode(t, w, &updated)
	assert.Equal(t, "Siem Reap Province", updated.Name)

	w = testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/locations/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/locations/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLocationWritesRequireAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)

	body := map[string]any{"name": "Kampot", "country": "Cambodia"}

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/admin/locations", testutil.Token(t, alice), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/admin/locations", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetLocationWithChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	loc := testutil.CreateLocation(t, db, "Siem Reap")
	testutil.CreatePlace(t, db, loc, "Angkor Wat")
	testutil.CreateTrip(t, db, loc, "Angkor Getaway")

	w := testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/api/locations/%d", loc.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got entity.Location
	testutil.Decode(t, w, &got)
	assert.Len(t, got.Places, 1)
	assert.Len(t, got.Trips, 1)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/locations", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Data []entity.Location `json:"data"`
	}
	testutil.Decode(t, w, &out)
	assert.Len(t, out.Data, 1)

	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, r, http.MethodGet, "/api/locations/9999", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, r, http.MethodGet, "/api/locations/abc", "", nil).Code)
}
