package review_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/testutil"
)

func seedPlace(t *testing.T, db *gorm.DB) *entity.Place {
	t.Helper()
	loc := testutil.CreateLocation(t, db, "Siem Reap")
	return testutil.CreatePlace(t, db, loc, "Angkor Wat")
}

func averageOf(t *testing.T, db *gorm.DB, placeID uint) *float64 {
	t.Helper()
	var place entity.Place
	require.NoError(t, db.First(&place, placeID).Error)
	return place.AverageRating
}

func postReview(t *testing.T, r *gin.Engine, token string, placeID uint, rating int) entity.Review {
	t.Helper()
	w := testutil.DoJSON(t, r, http.MethodPost, "/api/reviews", token, map[string]any{
		"placeId": placeID,
		"rating":  rating,
		"comment": "nice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var review entity.Review
	testutil.Decode(t, w, &review)
	return review
}

func TestAverageRatingFollowsReviews(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	place := seedPlace(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)
	bob := testutil.CreateUser(t, db, "bob@example.com", entity.RoleUser)
	admin := testutil.CreateUser(t, db, "admin@example.com", entity.RoleAdmin)

	require.Nil(t, averageOf(t, db, place.ID), "no reviews means no average")

	first := postReview(t, r, testutil.Token(t, alice), place.ID, 5)
	avg := averageOf(t, db, place.ID)
	require.NotNil(t, avg)
	assert.InDelta(t, 5.0, *avg, 1e-9)

	postReview(t, r, testutil.Token(t, bob), place.ID, 2)
	avg = averageOf(t, db, place.ID)
	require.NotNil(t, avg)
	assert.InDelta(t, 3.5, *avg, 1e-9)

	// editing a review moves the average
	w := testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reviews/%d", first.ID), testutil.Token(t, alice), map[string]any{
		"rating":  4,
		"comment": "still nice",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	avg = averageOf(t, db, place.ID)
	require.NotNil(t, avg)
	assert.InDelta(t, 3.0, *avg, 1e-9)

	// deleting both returns the place to unrated
	var reviews []entity.Review
	require.NoError(t, db.Where("place_id = ?", place.ID).Find(&reviews).Error)
	for _, rv := range reviews {
		w := testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", rv.ID), testutil.Token(t, admin), nil)
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	assert.Nil(t, averageOf(t, db, place.ID))
}

func TestCreateReviewValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	place := seedPlace(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)
	token := testutil.Token(t, alice)

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/reviews", token, map[string]any{
		"placeId": place.ID,
		"rating":  6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/reviews", token, map[string]any{
		"placeId": 9999,
		"rating":  4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Place does not exist")

	w = testutil.DoJSON(t, r, http.MethodPost, "/api/reviews", "", map[string]any{
		"placeId": place.ID,
		"rating":  4,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	place := seedPlace(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)
	bob := testutil.CreateUser(t, db, "bob@example.com", entity.RoleUser)

	review := postReview(t, r, testutil.Token(t, alice), place.ID, 4)

	w := testutil.DoJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reviews/%d", review.ID), testutil.Token(t, bob), map[string]any{
		"rating": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteReviewAdminGated(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	place := seedPlace(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)

	review := postReview(t, r, testutil.Token(t, alice), place.ID, 4)

	// even the author cannot delete, only admins
	w := testutil.DoJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", review.ID), testutil.Token(t, alice), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListReviewsByPlace(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	place := seedPlace(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)
	token := testutil.Token(t, alice)

	postReview(t, r, token, place.ID, 5)

	w := testutil.DoJSON(t, r, http.MethodGet, fmt.Sprintf("/api/reviews?placeId=%d", place.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out []entity.Review
	testutil.Decode(t, w, &out)
	assert.Len(t, out, 1)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/reviews", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadReviewImages(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter(t, db, nil)
	place := seedPlace(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com", entity.RoleUser)
	token := testutil.Token(t, alice)

	review := postReview(t, r, token, place.ID, 5)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("images", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/reviews/%d/upload", review.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got entity.Review
	require.NoError(t, db.First(&got, review.ID).Error)
	require.Len(t, got.ImageURLs, 1)
	assert.Equal(t, "https://img.test/photo.jpg", got.ImageURLs[0])
}
