package location

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
)

type LocationController struct {
	DB *gorm.DB
}

type locationInput struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Country     string  `json:"country" binding:"required"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
}

// GetAll lists locations with their places and trips. Public.
func (lc *LocationController) GetAll(c *gin.Context) {
	var locations []entity.Location
	if err := lc.DB.Preload("Places").Preload("Trips").Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}

// GetByID returns one location. Public.
func (lc *LocationController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var location entity.Location
	if err := lc.DB.Preload("Places").Preload("Trips").First(&location, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}

// Create adds a location. Admin-gated at the route.
func (lc *LocationController) Create(c *gin.Context) {
	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	location := entity.Location{
		Name:        input.Name,
		Country:     input.Country,
		Description: input.Description,
		Lat:         input.Lat,
		Long:        input.Long,
	}
	if err := lc.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}
	c.JSON(http.StatusCreated, location)
}

// Update rewrites a location's fields. Admin-gated at the route.
func (lc *LocationController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var location entity.Location
	if err := lc.DB.First(&location, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	location.Name = input.Name
	location.Country = input.Country
	location.Description = input.Description
	location.Lat = input.Lat
	location.Long = input.Long

	if err := lc.DB.Save(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}
	c.JSON(http.StatusOK, location)
}

// Delete removes a location. Referencing places and trips are not cascaded
// here; the schema's foreign keys decide.
func (lc *LocationController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	res := lc.DB.Delete(&entity.Location{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
