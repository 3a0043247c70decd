package main

import (
	"log"

	"github.com/qualitrack/qualitrack-api/internal/config"
	"github.com/qualitrack/qualitrack-api/internal/database"
	"github.com/qualitrack/qualitrack-api/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed baseline data
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := database.SeedOfficeTypes(db); err != nil {
		log.Fatalf("Failed to seed office types: %v", err)
	}

	// Setup router and start server
	r := router.Setup(db, cfg)
	log.Printf("Server listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
