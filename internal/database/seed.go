package database

import (
	"log"
	"os"

	"github.com/qualitrack/qualitrack-api/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates a default admin account if no admin exists in the database
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("Role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@qualitrack.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "AdminPassword123!"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
		DisplayName:  "System Administrator",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: %s", adminEmail)
	return nil
}

// SeedOfficeTypes inserts the baseline office classifications used by the
// compliance views, once.
func SeedOfficeTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.OfficeType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	types := []models.OfficeType{
		{TypeName: "Academic", Description: "Academic departments and colleges"},
		{TypeName: "Administrative", Description: "Administrative and support offices"},
		{TypeName: "Non-Teaching", Description: "Non-teaching service units"},
	}
	if err := db.Create(&types).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d office types", len(types))
	return nil
}
