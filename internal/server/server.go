// Package server contains the HTTP handlers for the guide API.
package server

import (
	"context"
	"strings"
	"time"

	"guidepost/internal/auth"
	"guidepost/internal/cache"
	"guidepost/internal/config"
	"guidepost/internal/database"
	"guidepost/internal/middleware"
	"guidepost/internal/models"
	"guidepost/internal/repository"
	"guidepost/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
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
	characterRepo  repository.CharacterRepository
	guideRepo      repository.GuideRepository
	authenticator  *auth.Authenticator
	tokenIssuer    *auth.TokenIssuer
	uploadService  *service.UploadService
	guideService   *service.GuideService
}

// NewServer creates a new server instance and establishes its own
// database and Redis connections.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	store, err := auth.NewStaticCredentialStore(cfg)
	if err != nil {
		return nil, err
	}

	characterRepo := repository.NewCharacterRepository(db)
	guideRepo := repository.NewGuideRepository(db)
	uploadService := service.NewUploadService(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("guidepost-api"),
		characterRepo:  characterRepo,
		guideRepo:      guideRepo,
		authenticator:  auth.NewAuthenticator(store),
		tokenIssuer: auth.NewTokenIssuer(cfg.JWTSecret,
			time.Duration(cfg.TokenTTLHrs)*time.Hour),
		uploadService: uploadService,
	}
	server.guideService = service.NewGuideService(guideRepo, characterRepo, uploadService)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Span per request; sets the traceID local the context middleware reads
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Stored guide pictures
	app.Static("/static/build_pics", s.config.UploadDir)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", s.Login)

	// Character directory
	characters := api.Group("/characters")
	characters.Get("/", s.GetCharacters)
	characters.Get("/:id", s.GetCharacter)

	// Guide routes. Specific /pending route before generic /:id.
	guides := api.Group("/guides")
	guides.Post("/", s.SubmitGuide)
	guides.Get("/", s.GetGuides)
	guides.Get("/pending", s.AuthRequired(), s.GetPendingGuides)
	guides.Get("/:id", s.GetGuide)

	// Moderation decisions
	guides.Put("/:id/approve", s.AuthRequired(), s.ApproveGuide)
	guides.Delete("/:id", s.AuthRequired(), s.RejectGuide)
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

	// Redis only accelerates the character directory, so an unavailable
	// cache degrades readiness status without failing the probe.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
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

// AuthRequired returns the authentication middleware. It accepts a Bearer
// token issued by Login and stores the verified principal in the request
// context for handlers and logging.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		if parts := strings.Fields(c.Get("Authorization")); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = parts[1]
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		principal, err := s.tokenIssuer.Verify(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		c.Locals("principal", principal)
		ctx := context.WithValue(c.UserContext(), middleware.PrincipalKey, principal.Email)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Guidepost API",
		// Fiber's body limit would answer with its own 413 before the
		// upload service sees the payload; keep it above the app limit
		// so oversize files get the structured error response.
		BodyLimit: int(s.config.MaxUploadSizeBytes) * 2,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	return nil
}
