package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/fridge-recipes/backend/config"
	"github.com/pageza/fridge-recipes/backend/internal/database"
	"github.com/pageza/fridge-recipes/backend/internal/middleware"
	"github.com/pageza/fridge-recipes/backend/internal/router"
	"github.com/pageza/fridge-recipes/backend/internal/service"
)

// ShutdownTimeout bounds how long in-flight requests may take after a stop signal
const ShutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	redis  *redis.Client
	log    logrus.FieldLogger
}

// New wires services, the rate limit store and the router
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, provider service.VisionProvider, logger *logrus.Logger) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.WithField("component", "server")

	var (
		store       middleware.RateLimitStore
		redisClient *redis.Client
	)
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, rate limiting falls back to process memory")
		} else {
			redisClient = client
			store = middleware.NewRedisStore(client)
		}
	}
	if store == nil {
		store = middleware.NewMemoryStore()
	}

	engine, err := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		Logger:         logger,
		RecipeService:  service.NewRecipeService(db),
		FridgeService:  service.NewFridgeService(provider),
		RateLimitStore: store,
	})
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		redis: redisClient,
		log:   log,
	}, nil
}

// Handler exposes the routed engine
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	s.log.WithField("addr", s.http.Addr).Info("Server running")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and releases Redis
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Run serves until ctx is cancelled, then shuts down within ShutdownTimeout
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errChan
}
