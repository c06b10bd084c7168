// Package server contains the HTTP handlers for the platform's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"scriptum/internal/cache"
	"scriptum/internal/config"
	"scriptum/internal/database"
	"scriptum/internal/middleware"
	"scriptum/internal/repository"
	"scriptum/internal/service"
	"scriptum/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
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
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo      repository.UserRepository
	bookRepo      repository.BookRepository
	tagRepo       repository.TagRepository
	chapterRepo   repository.ChapterRepository
	characterRepo repository.CharacterRepository
	placeRepo     repository.PlaceRepository
	creatureRepo  repository.CreatureRepository
	reviewRepo    repository.ReviewRepository
	favoriteRepo  repository.FavoriteRepository
	followRepo    repository.FollowRepository

	userService          *service.UserService
	bookService          *service.BookService
	chapterService       *service.ChapterService
	characterService     *service.CharacterService
	worldbuildingService *service.WorldbuildingService
	reviewService        *service.ReviewService
	libraryService       *service.LibraryService
	imageService         *service.ImageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var imageStore storage.ImageStore
	store, err := storage.NewMinioStore(context.Background(),
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		// Image hosting degrades to unavailable rather than blocking startup.
		middleware.Logger.Warn("minio unavailable, image uploads disabled", "error", err)
	} else {
		imageStore = store
	}

	return NewServerWithDeps(cfg, db, redisClient, imageStore), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, imageStore storage.ImageStore) *Server {
	prom := middleware.InitMetrics("scriptum-api")

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       repository.NewUserRepository(db),
		bookRepo:       repository.NewBookRepository(db),
		tagRepo:        repository.NewTagRepository(db),
		chapterRepo:    repository.NewChapterRepository(db),
		characterRepo:  repository.NewCharacterRepository(db),
		placeRepo:      repository.NewPlaceRepository(db),
		creatureRepo:   repository.NewCreatureRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		favoriteRepo:   repository.NewFavoriteRepository(db),
		followRepo:     repository.NewFollowRepository(db),
	}

	s.userService = service.NewUserService(s.userRepo)
	s.bookService = service.NewBookService(s.bookRepo, s.tagRepo)
	s.chapterService = service.NewChapterService(s.chapterRepo, s.bookRepo)
	s.characterService = service.NewCharacterService(s.characterRepo, s.bookRepo)
	s.worldbuildingService = service.NewWorldbuildingService(s.placeRepo, s.creatureRepo, s.bookRepo)
	s.reviewService = service.NewReviewService(s.reviewRepo, s.bookRepo)
	s.libraryService = service.NewLibraryService(s.favoriteRepo, s.followRepo, s.bookRepo, s.userRepo)
	s.imageService = service.NewImageService(imageStore, cfg.ImageMaxUploadSizeMB)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit so browser clients
	// still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
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

// AuthRequired returns the authentication middleware backed by the cached
// token lookup.
func (s *Server) AuthRequired() fiber.Handler {
	return middleware.AuthRequired(s.userService.ResolveToken)
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
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Scriptum Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public browse routes
	books := api.Group("/books")
	books.Get("/", s.GetBooks)
	books.Get("/:slug", s.GetBook)
	books.Get("/:slug/chapters", s.GetChapters)
	books.Get("/:slug/chapters/:chapterSlug/comments", s.GetChapterComments)
	books.Get("/:slug/chapters/:chapterSlug", s.GetChapter)
	books.Get("/:slug/characters", s.GetCharacters)
	books.Get("/:slug/characters/:characterSlug", s.GetCharacter)
	books.Get("/:slug/places", s.GetPlaces)
	books.Get("/:slug/places/:id", s.GetPlace)
	books.Get("/:slug/creatures", s.GetCreatures)
	books.Get("/:slug/creatures/:id", s.GetCreature)
	books.Get("/:slug/reviews", s.GetReviews)

	// The /me routes must register before the public /:pseudo catch-all.
	users := api.Group("/users")
	users.Get("/me/favorites", s.AuthRequired(), s.GetMyFavorites)
	users.Get("/me/following", s.AuthRequired(), s.GetMyFollowing)
	users.Get("/me", s.AuthRequired(), s.GetMyProfile)
	users.Put("/me", s.AuthRequired(), s.UpdateMyProfile)
	users.Delete("/me", s.AuthRequired(), s.DeleteMyAccount)
	users.Get("/:pseudo", s.GetAuthorProfile)

	api.Get("/images/:key", s.GetImage)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	authed := protected.Group("/books")
	authed.Post("/", s.CreateBook)
	authed.Put("/:slug", s.UpdateBook)
	authed.Delete("/:slug", s.DeleteBook)

	authed.Post("/:slug/chapters", s.CreateChapter)
	authed.Put("/:slug/chapters/:chapterSlug", s.UpdateChapter)
	authed.Delete("/:slug/chapters/:chapterSlug", s.DeleteChapter)
	authed.Post("/:slug/chapters/:chapterSlug/comments", middleware.RateLimit(
		s.redis, 15, time.Minute, "chapter_comment"), s.CreateChapterComment)

	authed.Post("/:slug/characters", s.CreateCharacter)
	authed.Put("/:slug/characters/:characterSlug", s.UpdateCharacter)
	authed.Delete("/:slug/characters/:characterSlug", s.DeleteCharacter)

	authed.Post("/:slug/places", s.CreatePlace)
	authed.Put("/:slug/places/:id", s.UpdatePlace)
	authed.Delete("/:slug/places/:id", s.DeletePlace)

	authed.Post("/:slug/creatures", s.CreateCreature)
	authed.Put("/:slug/creatures/:id", s.UpdateCreature)
	authed.Delete("/:slug/creatures/:id", s.DeleteCreature)

	authed.Post("/:slug/reviews", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_review"), s.CreateReview)
	authed.Put("/:slug/reviews/:id", s.UpdateReview)
	authed.Delete("/:slug/reviews/:id", s.DeleteReview)

	authed.Post("/:slug/favorite", s.AddFavorite)
	authed.Delete("/:slug/favorite", s.RemoveFavorite)

	authors := protected.Group("/authors")
	authors.Post("/:pseudo/follow", s.FollowAuthor)
	authors.Delete("/:pseudo/follow", s.UnfollowAuthor)

	protected.Post("/images", s.UploadImage)
	protected.Delete("/images/:key", s.DeleteImage)
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

// Shutdown releases the server's database and cache connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
