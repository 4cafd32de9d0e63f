package entity

import (
	"time"

	"gorm.io/gorm"
)

// TripTypes is the allow-list for Trip.Type.
var TripTypes = []string{"bus", "hotel"}

type Trip struct {
	gorm.Model

	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	LocationID  uint      `json:"locationId" binding:"required"`
	Type        string    `json:"type" gorm:"size:32" binding:"required,oneof=bus hotel"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	Price       float64   `json:"price" binding:"gte=0"`

	Location *Location `json:"location,omitempty"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:TripID"`
}
