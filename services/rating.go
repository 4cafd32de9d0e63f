package services

import (
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/entity"
)

// RecomputeAverageRating rewrites a place's derived average from its current
// reviews; NULL when none remain. Callers run it inside the same transaction
// as the review write so the aggregate can't drift from the rows it
// summarizes.
func RecomputeAverageRating(tx *gorm.DB, placeID uint) error {
	var ratings []int
	if err := tx.Model(&entity.Review{}).Where("place_id = ?", placeID).Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	if len(ratings) == 0 {
		return tx.Model(&entity.Place{}).Where("id = ?", placeID).Update("average_rating", nil).Error
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return tx.Model(&entity.Place{}).Where("id = ?", placeID).Update("average_rating", avg).Error
}
