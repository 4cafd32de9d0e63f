package entity

import "gorm.io/gorm"

type Place struct {
	gorm.Model

	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"required"`
	LocationID  uint   `json:"locationId" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"imageUrl"`

	// Derived: arithmetic mean of this place's review ratings, recomputed on
	// every review write. NULL when no reviews remain.
	AverageRating *float64 `json:"averageRating"`

	Location *Location `json:"location,omitempty"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:PlaceID"`
}
