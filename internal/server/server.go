package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrybook/backend/config"
	"github.com/pantrybook/backend/internal/api"
	"github.com/pantrybook/backend/internal/database"
	"github.com/pantrybook/backend/internal/middleware"
	"github.com/pantrybook/backend/internal/router"
	"github.com/pantrybook/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	db     *gorm.DB
	engine *gin.Engine
	http   *http.Server
}

// New builds a fully wired server: database, migrations, services,
// handlers and routes. Redis and S3 are optional; when they are not
// configured the server runs without rate limiting and image uploads.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	catalogService := service.NewCatalogService()

	var imageService *service.ImageService
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Printf("S3 unavailable, image uploads disabled: %v", err)
		} else {
			imageService = service.NewImageService(s3Config)
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			limiter = middleware.NewWriteRateLimiter(redisClient)
		}
	}

	engine := router.SetupRouter(db, router.Handlers{
		User:     api.NewUserHandler(authService),
		Auth:     api.NewAuthHandler(authService),
		Recipe:   api.NewRecipeHandler(db, authService, catalogService, imageService, limiter),
		Author:   api.NewAuthorHandler(db, authService, catalogService),
		Cuisine:  api.NewCuisineHandler(db, authService),
		Category: api.NewCategoryHandler(db, authService),
	})

	return &Server{
		cfg:    cfg,
		db:     db,
		engine: engine,
	}, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			return err
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}
