package router

import (
	"log"

	"github.com/qualitrack/qualitrack-api/internal/config"
	"github.com/qualitrack/qualitrack-api/internal/handlers"
	"github.com/qualitrack/qualitrack-api/internal/middleware"
	"github.com/qualitrack/qualitrack-api/internal/repository"
	"github.com/qualitrack/qualitrack-api/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	store := repository.NewGormStore(db)

	// Initialize services
	eventService := services.NewEventService(store)
	areaService := services.NewAreaService(store)
	criteriaService := services.NewCriteriaService(store)
	requirementService := services.NewRequirementService(store)
	bulkDeleteService := services.NewBulkDeleteService(store)
	wizardService := services.NewWizardService(store)
	searchService := services.NewSearchService(cfg)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage service: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(db))

	// Public auth routes, rate limited when Redis is reachable
	auth := r.Group("/auth")
	if limiter, err := middleware.NewRateLimiter(cfg.RedisURL); err != nil {
		log.Printf("Warning: rate limiting disabled: %v", err)
	} else {
		auth.Use(limiter.RateLimitByIP(20, 300))
	}
	{
		auth.POST("/register", handlers.Register(db, cfg))
		auth.POST("/login", handlers.Login(db, cfg))
	}

	// Everything else requires a valid token; paths are kept exactly as the
	// frontend calls them.
	protected := r.Group("")
	protected.Use(middleware.AuthRequired(cfg))
	{
		protected.GET("/auth/me", handlers.GetCurrentUser(db))

		// Events
		protected.GET("/events", handlers.ListEvents(eventService))
		protected.GET("/events/:id", handlers.GetEvent(eventService))
		protected.POST("/events/add", handlers.AddEvent(eventService))
		protected.PUT("/events/:id", handlers.UpdateEvent(eventService))
		protected.POST("/events/delete", handlers.DeleteEvents(bulkDeleteService, searchService))

		// Areas
		protected.POST("/areas/add", handlers.AddArea(areaService))
		protected.GET("/areas", handlers.ListAreas(areaService))
		protected.GET("/areas/event/:eventId", handlers.ListAreasByEvent(areaService))
		protected.PUT("/areas/:id", handlers.UpdateArea(areaService))
		protected.DELETE("/areas/:id", handlers.DeactivateArea(areaService))

		// Criteria
		protected.POST("/criteria/add", handlers.AddCriteria(criteriaService))
		protected.PUT("/criteria/:id", handlers.UpdateCriteria(criteriaService))
		protected.DELETE("/criteria/delete", handlers.DeleteCriteria(bulkDeleteService, searchService))
		protected.GET("/criteria/area/:areaId", handlers.ListCriteriaByArea(criteriaService))
		protected.GET("/criteria/event/:eventId", handlers.ListCriteriaByEvent(criteriaService))

		// Requirements
		protected.GET("/requirements/all", handlers.ListAllRequirements(requirementService))
		protected.GET("/requirements/event/:eventId", handlers.ListRequirementsByEvent(requirementService))
		protected.GET("/requirements/criteria/:criteriaId", handlers.ListRequirementsByCriteria(requirementService))
		protected.GET("/requirements/search", handlers.SearchRequirements(searchService))
		protected.POST("/requirements/add", handlers.AddRequirement(requirementService, searchService))
		protected.PUT("/requirements/update/:id", handlers.UpdateRequirement(requirementService, searchService))
		protected.POST("/requirements/delete", handlers.DeleteRequirements(bulkDeleteService, searchService))

		// Setup wizard
		protected.POST("/setup/wizard", handlers.RunSetupWizard(wizardService))

		// Evidence
		if storageService != nil {
			protected.POST("/requirements/:id/evidence", handlers.UploadEvidence(store, storageService))
			protected.GET("/requirements/:id/evidence", handlers.ListEvidence(store))
			protected.GET("/evidence/:id/download", handlers.DownloadEvidence(store, storageService))
			protected.DELETE("/evidence/:id", handlers.DeleteEvidence(store, storageService))
		}

		// Offices: reads for everyone, mutations admin-only
		protected.GET("/office-types", handlers.ListOfficeTypes(db))
		protected.GET("/offices", handlers.ListOffices(db))
		protected.GET("/office-heads", handlers.ListHeadsOfOffice(db))

		admin := protected.Group("")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/office-types/add", handlers.AddOfficeType(db))
			admin.POST("/offices/add", handlers.AddOffice(db))
			admin.PUT("/offices/:id", handlers.UpdateOffice(db))
			admin.POST("/office-heads/add", handlers.AddHeadOfOffice(db))
			admin.POST("/office-heads/delete", handlers.DeleteHeadsOfOffice(bulkDeleteService))
		}
	}

	return r
}
