package main

import (
	"log"

	"github.com/qualitrack/qualitrack-api/internal/config"
	"github.com/qualitrack/qualitrack-api/internal/database"
	"github.com/qualitrack/qualitrack-api/internal/repository"
	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/joho/godotenv"
)

// Rebuilds the Meilisearch requirements index from the database, with the
// full joined view so criteria/area/event names are searchable.
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

	// Initialize search service
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	store := repository.NewGormStore(db)
	views, err := store.FindRequirementsAll()
	if err != nil {
		log.Fatalf("Failed to fetch requirements: %v", err)
	}
	log.Printf("Requirements in DB: %d", len(views))

	indexed := 0
	for _, view := range views {
		if err := searchService.IndexRequirement(view); err != nil {
			log.Printf("Failed to index requirement %d (%s): %v", view.RequirementID, view.RequirementCode, err)
			continue
		}
		indexed++
	}

	log.Printf("Reindex complete: %d/%d requirements indexed", indexed, len(views))
}
