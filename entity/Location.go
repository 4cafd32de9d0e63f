package entity

import "gorm.io/gorm"

type Location struct {
	gorm.Model

	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Country     string  `json:"country" binding:"required"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`

	Places []Place `json:"places,omitempty" gorm:"foreignKey:LocationID"`
	Trips  []Trip  `json:"trips,omitempty" gorm:"foreignKey:LocationID"`
}
