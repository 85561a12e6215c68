package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/calorie-tracker-api/internal/auth"
	"github.com/yukikurage/calorie-tracker-api/internal/config"
	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/database"
	"github.com/yukikurage/calorie-tracker-api/internal/handlers"
	"github.com/yukikurage/calorie-tracker-api/internal/middleware"
	"github.com/yukikurage/calorie-tracker-api/internal/repository"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	isProduction := cfg.GinMode == "release"
	if err := middleware.InitLogger(cfg.LogLevel, cfg.LogFile, isProduction); err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to create session store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	mealRepo := repository.NewMealRepository(db)

	authService := services.NewAuthService(userRepo)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	handlers.RegisterRoutes(r, handlers.Services{
		Auth:        authService,
		Accounts:    services.NewAccountService(userRepo, profileRepo),
		Meals:       services.NewMealService(mealRepo, profileRepo),
		Reports:     services.NewReportService(mealRepo, profileRepo),
		AI:          aiService,
		Provider:    auth.NewSessionProvider(authService, cfg.SessionSecret),
		FormLimiter: middleware.NewRateLimiter(1, 5),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.ServerAddr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logrus.Info("Server exited")
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "cookie" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,                // Redis pool size
		"tcp",             // network type
		redisAddr,         // Redis address from config
		"",                // username (empty for default user)
		cfg.RedisPassword, // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
}
