package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/middlewares"
	"github.com/gtwndtl/travelbook-backend/services"
)

type ReviewController struct {
	DB    *gorm.DB
	Store services.ImageStore
}

type reviewInput struct {
	PlaceID uint   `json:"placeId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type reviewUpdateInput struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// GetAll lists reviews for one place.
func (rc *ReviewController) GetAll(c *gin.Context) {
	placeID := c.Query("placeId")
	if placeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "placeId is required"})
		return
	}
	id, err := strconv.Atoi(placeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid placeId"})
		return
	}

	var reviews []entity.Review
	if err := rc.DB.Preload("User").Where("place_id = ?", id).Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Create writes a review for the caller and recomputes the place's average
// rating in the same transaction.
func (rc *ReviewController) Create(c *gin.Context) {
	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	var place entity.Place
	if err := rc.DB.First(&place, input.PlaceID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Place does not exist"})
		return
	}

	review := entity.Review{
		UserID:  middlewares.CallerID(c),
		PlaceID: input.PlaceID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return services.RecomputeAverageRating(tx, review.PlaceID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update edits the caller's own review; admins go through Delete instead.
func (rc *ReviewController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var review entity.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.UserID != middlewares.CallerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var input reviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	review.Rating = input.Rating
	review.Comment = input.Comment

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return services.RecomputeAverageRating(tx, review.PlaceID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review and recomputes the place's rating; the average
// goes back to NULL when the last review disappears. Admin-gated at the
// route.
func (rc *ReviewController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var review entity.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return services.RecomputeAverageRating(tx, review.PlaceID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Upload appends images to the caller's own review.
func (rc *ReviewController) Upload(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var review entity.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.UserID != middlewares.CallerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images provided"})
		return
	}

	urls := review.ImageURLs
	for _, file := range form.File["images"] {
		url, err := rc.Store.Save(file)
		if err != nil {
			if err == services.ErrUnsupportedImage {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		urls = append(urls, url)
	}

	if err := rc.DB.Model(&review).Update("image_urls", urls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrls": urls})
}
