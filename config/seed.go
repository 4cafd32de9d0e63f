package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/entity"
)

// SeedDemoData inserts a small demo dataset: one location with a place and a
// trip, plus one account per role. Idempotent via FirstOrCreate.
func SeedDemoData(db *gorm.DB) error {
	location := entity.Location{
		Name:        "Siem Reap",
		Country:     "Cambodia",
		Description: "Home to Angkor Wat",
		Lat:         13.4125,
		Long:        103.867,
	}
	if err := db.FirstOrCreate(&location, entity.Location{Name: "Siem Reap"}).Error; err != nil {
		return err
	}

	place := entity.Place{
		Name:        "Angkor Wat",
		Description: "Iconic temple complex",
		LocationID:  location.ID,
		Category:    "temple",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/sample.jpg",
	}
	if err := db.FirstOrCreate(&place, entity.Place{Name: "Angkor Wat"}).Error; err != nil {
		return err
	}

	trip := entity.Trip{
		Title:       "Siem Reap Hotel Stay",
		Description: "3-night stay in Siem Reap",
		LocationID:  location.ID,
		Type:        "hotel",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Price:       150.0,
	}
	if err := db.FirstOrCreate(&trip, entity.Trip{Title: "Siem Reap Hotel Stay"}).Error; err != nil {
		return err
	}

	accounts := []struct {
		email string
		name  string
		role  entity.Role
	}{
		{"superadmin@example.com", "Super Admin", entity.RoleSuperAdmin},
		{"admin@example.com", "Admin User", entity.RoleAdmin},
		{"user@example.com", "Regular User", entity.RoleUser},
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		u := entity.User{
			Email:    a.email,
			Password: string(hashed),
			Name:     a.name,
			Role:     a.role,
			Provider: entity.ProviderEmail,
		}
		if err := db.FirstOrCreate(&u, entity.User{Email: a.email}).Error; err != nil {
			return err
		}
	}
	return nil
}
