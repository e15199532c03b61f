package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/programhub/internal/api/middleware"
	"github.com/linskybing/programhub/internal/api/routes"
	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/internal/config"
	"github.com/linskybing/programhub/internal/config/db"
	"github.com/linskybing/programhub/internal/cron"
	"github.com/linskybing/programhub/internal/repository"
	"github.com/linskybing/programhub/pkg/logger"
	"github.com/linskybing/programhub/pkg/notify"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()
	logger.Init(config.LogLevel, config.LogFormat)

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and migrate the application tables
	db.Init()

	validator := application.NewRequiredFieldsValidator(nil, nil)
	if config.ValidationRulesFile != "" {
		v, err := application.LoadValidationRules(config.ValidationRulesFile)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load validation rules")
		}
		validator = v
	}

	hub := notify.NewHub(func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, prefix := range config.AllowedOrigins {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		}
		return false
	})

	repos := repository.NewRepositories(db.DB)
	services := application.New(repos, validator, hub)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	cron.StartIdleEviction(ctx, "sessions", services.Sessions, config.SessionIdleTimeout, config.SessionSweepPeriod)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RequestTimeout(config.DbTimeout))

	limiter := middleware.NewRateLimiter(config.RateLimitPerSecond, config.RateLimitBurst)
	cron.StartIdleEviction(ctx, "rate_limiter", limiter, config.SessionIdleTimeout, config.SessionSweepPeriod)
	routes.RegisterRoutes(router, services, hub, limiter)

	srv := &http.Server{
		Addr:    ":" + config.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Log.Infof("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("Failed to start")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Log.Info("Shutting down API server")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Server shutdown failed")
	}
}
