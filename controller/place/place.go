package place

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/services"
)

type PlaceController struct {
	DB    *gorm.DB
	Store services.ImageStore
}

type placeInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"required"`
	LocationID  uint   `json:"locationId" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

// GetAll lists places, optionally filtered by locationId, category, and
// minRating. Public.
func (pc *PlaceController) GetAll(c *gin.Context) {
	q := pc.DB.Preload("Location")
	if v := c.Query("locationId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid locationId"})
			return
		}
		q = q.Where("location_id = ?", id)
	}
	if v := c.Query("category"); v != "" {
		q = q.Where("category = ?", v)
	}
	if v := c.Query("minRating"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minRating"})
			return
		}
		q = q.Where("average_rating >= ?", min)
	}

	var places []entity.Place
	if err := q.Find(&places).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get places"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": places})
}

// GetByID returns one place with its reviews. Public.
func (pc *PlaceController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	var place entity.Place
	if err := pc.DB.Preload("Location").Preload("Reviews").Preload("Reviews.User").First(&place, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            place.ID,
		"name":          place.Name,
		"description":   place.Description,
		"category":      place.Category,
		"imageUrl":      place.ImageURL,
		"averageRating": place.AverageRating,
		"location":      place.Location,
		"reviews":       place.Reviews,
		"reviewCount":   len(place.Reviews),
	})
}

// GetRecommended returns the top rated places (>= 4.0) for a location.
// Public.
func (pc *PlaceController) GetRecommended(c *gin.Context) {
	locationID := c.Query("locationId")
	if locationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "locationId is required"})
		return
	}
	id, err := strconv.Atoi(locationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid locationId"})
		return
	}

	var places []entity.Place
	if err := pc.DB.Preload("Location").
		Where("location_id = ? AND average_rating >= ?", id, 4.0).
		Order("average_rating DESC").
		Limit(5).
		Find(&places).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get places"})
		return
	}
	c.JSON(http.StatusOK, places)
}

// Create adds a place. Admin-gated at the route. The image can arrive as a
// body URL now or through Upload later, but one must exist.
func (pc *PlaceController) Create(c *gin.Context) {
	var input placeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}
	if input.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	var location entity.Location
	if err := pc.DB.First(&location, input.LocationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location does not exist"})
		return
	}

	place := entity.Place{
		Name:        input.Name,
		Description: input.Description,
		LocationID:  input.LocationID,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
	}
	if err := pc.DB.Create(&place).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create place"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"place": place})
}

// Update rewrites a place. Admin-gated at the route.
func (pc *PlaceController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	var place entity.Place
	if err := pc.DB.First(&place, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}

	var input placeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	var location entity.Location
	if err := pc.DB.First(&location, input.LocationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location does not exist"})
		return
	}

	place.Name = input.Name
	place.Description = input.Description
	place.LocationID = input.LocationID
	place.Category = input.Category
	if input.ImageURL != "" {
		place.ImageURL = input.ImageURL
	}

	if err := pc.DB.Save(&place).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update place"})
		return
	}
	c.JSON(http.StatusOK, place)
}

// Delete removes a place. Admin-gated at the route.
func (pc *PlaceController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	res := pc.DB.Delete(&entity.Place{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete place"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Upload stores a new image for the place and swaps its URL. Admin-gated at
// the route.
func (pc *PlaceController) Upload(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid place ID format"})
		return
	}

	var place entity.Place
	if err := pc.DB.First(&place, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	url, err := pc.Store.Save(file)
	if err != nil {
		if err == services.ErrUnsupportedImage {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := pc.DB.Model(&place).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update place"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
