package main

import (
	"log"
	"net/http"

	"pubregistry/config"
	"pubregistry/handlers"
	"pubregistry/middleware"
	"pubregistry/repositories"
	"pubregistry/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Connected to publication database")

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	personRepo := repositories.NewPersonRepository(db)
	publicationRepo := repositories.NewPublicationRepository(db)
	authorshipRepo := repositories.NewAuthorshipRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	venueRepo := repositories.NewVenueRepository(db)
	editLogRepo := repositories.NewEditLogRepository(db)
	historyRepo := repositories.NewStatusHistoryRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, personRepo)
	publicationService := services.NewPublicationService(
		publicationRepo, personRepo, authorshipRepo, categoryRepo, editLogRepo, historyRepo, logging)
	searchService := services.NewSearchService(publicationRepo, authorshipRepo, categoryRepo)
	reportService := services.NewReportService(searchService, publicationRepo, authorshipRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	venueService := services.NewVenueService(venueRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	publicationHandler := handlers.NewPublicationHandler(publicationService, searchService)
	reportHandler := handlers.NewReportHandler(reportService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	venueHandler := handlers.NewVenueHandler(venueService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Publications
			publications := protected.Group("/publications")
			{
				publications.POST("", publicationHandler.Submit)
				publications.GET("", publicationHandler.Search)
				publications.GET("/:id", publicationHandler.Get)
				publications.PUT("/:id", publicationHandler.Update)
				publications.PUT("/:id/status", publicationHandler.UpdateStatus)
				publications.DELETE("/:id", publicationHandler.Delete)
				publications.GET("/:id/history", publicationHandler.EditHistory)
				publications.GET("/:id/status-history", publicationHandler.StatusHistory)
			}

			// Reports
			protected.GET("/reports/publications", reportHandler.Report)

			// Categories
			categories := protected.Group("/categories")
			{
				categories.POST("", categoryHandler.CreateCategory)
				categories.GET("", categoryHandler.GetCategories)
				categories.GET("/:id", categoryHandler.GetCategory)
			}

			// Venues
			venues := protected.Group("/venues")
			{
				venues.POST("", venueHandler.CreateVenue)
				venues.GET("", venueHandler.GetVenues)
				venues.GET("/:id", venueHandler.GetVenue)
			}
		}

		// Public publication routes (published only)
		public := v1.Group("/public")
		{
			public.GET("/publications", publicationHandler.PublicSearch)
			public.GET("/publications/:id", publicationHandler.PublicGet)
		}
	}

	// Start server
	logging.Info("Server starting", zap.String("port", cfg.HTTPPort))
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, router))
}
