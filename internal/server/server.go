// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "motorlot/docs" // swagger docs
	"motorlot/internal/cache"
	"motorlot/internal/config"
	"motorlot/internal/database"
	"motorlot/internal/featureflags"
	"motorlot/internal/middleware"
	"motorlot/internal/models"
	"motorlot/internal/repository"
	"motorlot/internal/service"
	"motorlot/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	catalogRepo repository.CatalogRepository
	listingRepo repository.ListingRepository
	imageRepo   repository.ImageRepository
	inquiryRepo repository.InquiryRepository

	catalogService *service.CatalogService
	listingService *service.ListingService
	inquiryService *service.InquiryService

	featureFlags *featureflags.Manager
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	media, err := storage.NewDiskStore(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("media store init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), media)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, media storage.MediaStore) (*Server, error) {
	catalogRepo := repository.NewCatalogRepository(db)
	listingRepo := repository.NewListingRepository(db)
	imageRepo := repository.NewImageRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	prom := middleware.InitMetrics("motorlot-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		catalogRepo:    catalogRepo,
		listingRepo:    listingRepo,
		imageRepo:      imageRepo,
		inquiryRepo:    inquiryRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	server.catalogService = service.NewCatalogService(catalogRepo, listingRepo)
	server.listingService = service.NewListingService(listingRepo, imageRepo, media)
	server.inquiryService = service.NewInquiryService(inquiryRepo, catalogRepo, listingRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and admin identity
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Motorlot Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded listing images
	app.Static(s.config.MediaURL, s.config.MediaRoot)

	// Public storefront routes
	listings := api.Group("/car-listings")
	listings.Get("/", s.GetListings)
	listings.Get("/:id/other", s.GetSimilarListings)
	listings.Get("/:id/similar", s.GetSimilarListings)
	listings.Get("/:id", s.GetListing)

	api.Get("/makes", s.GetMakesWithListings)
	api.Get("/models/:make_id", s.GetModelsByMake)
	api.Get("/models", s.GetModelsByMake)
	api.Get("/top-makes", s.GetTopMakes)
	api.Get("/conditions", s.GetConditions)
	api.Get("/filters", s.GetFilters)

	api.Post("/inquiry", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "inquiry"), s.CreateInquiry)

	// Admin routes
	admin := api.Group("/admin")
	admin.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "admin_login"), s.AdminLogin)

	protected := admin.Group("", middleware.AuthRequired)
	protected.Get("/feature-flags", s.GetFeatureFlags)

	catalog := protected.Group("/catalog")
	catalog.Get("/", s.ListCatalogLookups)
	catalog.Get("/:lookup", s.ListCatalogRows)
	catalog.Post("/:lookup", s.CreateCatalogRow)
	catalog.Get("/:lookup/:id", s.GetCatalogRow)
	catalog.Put("/:lookup/:id", s.UpdateCatalogRow)
	catalog.Delete("/:lookup/:id", s.DeleteCatalogRow)

	adminListings := protected.Group("/listings")
	adminListings.Post("/", s.AdminCreateListing)
	adminListings.Post("/:id/images", s.AdminUploadImage)
	adminListings.Put("/:id", s.AdminUpdateListing)
	adminListings.Delete("/:id", s.AdminDeleteListing)

	protected.Post("/images", s.AdminUploadUnassignedImage)
	protected.Delete("/images/:id", s.AdminDeleteImage)

	inquiries := protected.Group("/inquiries")
	inquiries.Get("/", s.AdminListInquiries)
	inquiries.Post("/:id/comments", s.AdminAddInquiryComment)
	inquiries.Get("/:id", s.AdminGetInquiry)
	inquiries.Put("/:id", s.AdminUpdateInquiry)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is an optional accelerator; report it but do not fail readiness
	// when it is down.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Motorlot API",
		BodyLimit: 25 * 1024 * 1024, // image uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, e.Code, err)
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
