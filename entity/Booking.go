package entity

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. A booking starts pending and only moves via an explicit
// admin update.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	gorm.Model

	UserID      uint      `json:"userId"`
	TripID      uint      `json:"tripId"`
	Guests      int       `json:"guests"`
	Total       float64   `json:"total"`
	Status      string    `json:"status" gorm:"size:32;default:pending"`
	BookingDate time.Time `json:"bookingDate"`

	User *User `json:"user,omitempty"`
	Trip *Trip `json:"trip,omitempty"`
}
