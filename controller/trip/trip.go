package trip

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
)

type TripController struct {
	DB *gorm.DB
}

type tripInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	LocationID  uint      `json:"locationId" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=bus hotel"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	Price       float64   `json:"price" binding:"gte=0"`
}

// GetAll lists trips with location and bookings. Public.
func (tc *TripController) GetAll(c *gin.Context) {
	var trips []entity.Trip
	if err := tc.DB.Preload("Location").Preload("Bookings").Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trips"})
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GetByID returns one trip. Public.
func (tc *TripController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var trip entity.Trip
	if err := tc.DB.Preload("Location").First(&trip, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// Create adds a trip. Admin-gated at the route; Type is restricted to the
// allow-list by binding.
func (tc *TripController) Create(c *gin.Context) {
	var input tripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	var location entity.Location
	if err := tc.DB.First(&location, input.LocationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location does not exist"})
		return
	}

	trip := entity.Trip{
		Title:       input.Title,
		Description: input.Description,
		LocationID:  input.LocationID,
		Type:        input.Type,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Price:       input.Price,
	}
	if err := tc.DB.Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// Update rewrites a trip. Admin-gated at the route.
func (tc *TripController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var trip entity.Trip
	if err := tc.DB.First(&trip, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	var input tripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	var location entity.Location
	if err := tc.DB.First(&location, input.LocationID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location does not exist"})
		return
	}

	trip.Title = input.Title
	trip.Description = input.Description
	trip.LocationID = input.LocationID
	trip.Type = input.Type
	trip.StartDate = input.StartDate
	trip.EndDate = input.EndDate
	trip.Price = input.Price

	if err := tc.DB.Save(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// Delete removes a trip. Admin-gated at the route.
func (tc *TripController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	res := tc.DB.Delete(&entity.Trip{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
