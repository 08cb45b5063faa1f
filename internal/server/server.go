package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/config"
	"github.com/hearthplan/backend/internal/api"
	"github.com/hearthplan/backend/internal/database"
	"github.com/hearthplan/backend/internal/middleware"
	"github.com/hearthplan/backend/internal/service"
)

// Server owns the HTTP listener and its backing connections.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New connects to the database, Redis and S3 and wires the full route
// table. Redis and S3 failures are logged and tolerated; the API runs
// without caching, rate limiting or image uploads.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		return nil, err
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, caching and rate limiting disabled: %v", err)
		redisClient = nil
	}

	var imageService *service.ImageService
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 unavailable, image uploads disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Cfg)
	}

	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, db, redisClient, imageService, cfg.JWTSecret)

	return &Server{
		cfg:    cfg,
		router: router,
		db:     db,
		redis:  redisClient,
	}, nil
}

// DB exposes the server's database handle, used by the sync bridge.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Redis exposes the server's Redis client. May be nil.
func (s *Server) Redis() *redis.Client {
	return s.redis
}

// Start blocks serving HTTP until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	addr := s.cfg.ServerHost + ":" + s.cfg.ServerPort
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	log.Printf("Listening on %s", addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			return err
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}
	return nil
}
