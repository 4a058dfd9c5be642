package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/internal/config"
	"github.com/ojas8taori/trash-taste-ai/internal/database"
	"github.com/ojas8taori/trash-taste-ai/internal/handlers"
	"github.com/ojas8taori/trash-taste-ai/internal/middleware"
	"github.com/ojas8taori/trash-taste-ai/internal/routes"
	"github.com/ojas8taori/trash-taste-ai/internal/seeds"
	"github.com/ojas8taori/trash-taste-ai/internal/services"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
	"github.com/ojas8taori/trash-taste-ai/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting TrashTaste Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Storage backend is selected once at startup and injected into the
	// handlers; everything downstream is agnostic to the choice.
	var store storage.Store
	switch config.AppConfig.StorageDriver {
	case "memory":
		logger.Info().Msg("Using in-memory storage (state is lost on restart)")
		store = newSeededMemoryStore()
	default:
		database.Connect()

		gormStore := storage.NewGormStore(database.DB)
		logger.Info().Msg("🔄 Running database migrations...")
		if err := gormStore.Migrate(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate database")
		}

		seeds.SeedWasteCategories()
		seeds.SeedChallenges()
		seeds.SeedAchievements()
		if _, err := seeds.GetOrCreateDemoUser(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed demo user")
		}

		store = gormStore
	}

	database.InitRedis()

	if config.AppConfig.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set; every scan will return the fallback analysis")
	}
	analyzer := services.NewGeminiAnalyzer()

	uploader, err := services.NewUploader()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to init image uploader")
	}
	if uploader == nil {
		logger.Info().Msg("R2 not configured; scans will persist without image URLs")
	}

	handler := handlers.New(store, analyzer, uploader)

	r := gin.New()
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	routes.RegisterAPIRoutes(r, handler)

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		if config.AppConfig.StorageDriver == "memory" {
			dbStatus = "memory"
		} else {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				dbStatus = "error"
			}
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus == "error" {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status":  status,
			"message": "TrashTaste Backend is running ♻️",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("🛑 Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("✅ Server exited gracefully")
}

// newSeededMemoryStore builds the ephemeral store with the same taxonomy,
// challenges and achievements the DB seeder installs. The demo user is
// seeded by the store itself.
func newSeededMemoryStore() *storage.MemoryStore {
	ms := storage.NewMemoryStore()
	for _, category := range seeds.DefaultWasteCategories() {
		c := category
		ms.CreateWasteCategory(&c)
	}
	for _, challenge := range seeds.DefaultChallenges() {
		ch := challenge
		ms.CreateChallenge(&ch)
	}
	for _, achievement := range seeds.DefaultAchievements() {
		a := achievement
		ms.CreateAchievement(&a)
	}
	return ms
}
