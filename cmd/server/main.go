package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/config"
	"github.com/fascinar/eventos-api/internal/database"
	"github.com/fascinar/eventos-api/internal/handler"
	"github.com/fascinar/eventos-api/internal/middleware"
	"github.com/fascinar/eventos-api/internal/queue"
	"github.com/fascinar/eventos-api/internal/repository"
	"github.com/fascinar/eventos-api/internal/router"
	"github.com/fascinar/eventos-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if cfg.Env == "dev" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := database.Migrate("file://migrations", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	// Repositories.
	profiles := repository.NewProfileRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	slots := repository.NewStaffSlotRepo(db)
	availability := repository.NewAvailabilityRepo(db)

	// Services.
	staffingSvc := service.NewStaffing(slots, logger.Named("staffing"))
	availabilitySvc := service.NewAvailability(availability, logger.Named("availability"))
	reconcileSvc := service.NewReconcile(events, slots, availability, logger.Named("reconcile"))
	adminSvc := service.NewAdminAgg(events, availability, slots, logger.Named("admin"))

	// Handlers.
	authH := handler.NewAuthHandler(cfg, profiles, tokens)
	eventH := handler.NewEventHandler(events)
	staffingH := handler.NewStaffingHandler(staffingSvc)
	availabilityH := handler.NewAvailabilityHandler(availabilitySvc, reconcileSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())

	// Redis backs the rate limiter and the catalog cache; both degrade to
	// no-ops when the connection is unavailable.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()
	if rdb != nil && rlCfg.Enabled {
		e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}
	var cacheMW echo.MiddlewareFunc
	if rdb != nil && cacheCfg.Enabled {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e, cacheMW)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStaff(e, availabilityH, cfg.JWTSecret)
	router.RegisterAdmin(e, eventH, staffingH, availabilityH, adminH, cfg.JWTSecret)

	// Background consumer for change notifications; reconnects on its own
	// and never blocks startup.
	go func() {
		if err := queue.StartChangeConsumer(rdb, cacheCfg.Prefix); err != nil {
			logger.Warn("change consumer stopped", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
