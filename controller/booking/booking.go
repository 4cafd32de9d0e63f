package booking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/controller"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/middlewares"
)

type BookingController struct {
	DB *gorm.DB
}

type bookingInput struct {
	UserID      *uint      `json:"userId"`
	TripID      uint       `json:"tripId" binding:"required"`
	Guests      int        `json:"guests" binding:"required,gte=1"`
	Total       float64    `json:"total" binding:"gte=0"`
	BookingDate *time.Time `json:"bookingDate"`
}

type bookingUpdateInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// Create books a trip for the caller. Passing someone else's userId is
// forbidden; omitting it defaults to the caller.
func (bc *BookingController) Create(c *gin.Context) {
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	callerID := middlewares.CallerID(c)
	if input.UserID != nil && *input.UserID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot create booking for another user"})
		return
	}

	var trip entity.Trip
	if err := bc.DB.First(&trip, input.TripID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Trip does not exist"})
		return
	}

	bookingDate := time.Now()
	if input.BookingDate != nil {
		bookingDate = *input.BookingDate
	}

	booking := entity.Booking{
		UserID:      callerID,
		TripID:      input.TripID,
		Guests:      input.Guests,
		Total:       input.Total,
		Status:      entity.BookingPending,
		BookingDate: bookingDate,
	}
	if err := bc.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetByID returns one booking to its owner or an admin.
func (bc *BookingController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking entity.Booking
	if err := bc.DB.Preload("User").Preload("Trip").First(&booking, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if !middlewares.OwnerOrRole(c, booking.UserID, entity.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetAll branches on the serving surface: the default surface is the admin
// view over every booking, the v2 surface always scopes to the caller. Both
// behaviors are deliberate.
func (bc *BookingController) GetAll(c *gin.Context) {
	if middlewares.Surface(c) == middlewares.SurfaceV2 {
		var bookings []entity.Booking
		if err := bc.DB.Preload("Trip").Where("user_id = ?", middlewares.CallerID(c)).Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bookings"})
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	if middlewares.CallerRole(c).Rank() < entity.RoleAdmin.Rank() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Insufficient role"})
		return
	}
	var bookings []entity.Booking
	if err := bc.DB.Preload("User").Preload("Trip").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Update transitions a booking's status. Admin-gated at the route.
func (bc *BookingController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var input bookingUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": controller.FieldErrors(err)})
		return
	}

	var booking entity.Booking
	if err := bc.DB.First(&booking, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	booking.Status = input.Status
	if err := bc.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}
