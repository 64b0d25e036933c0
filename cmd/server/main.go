// Command server runs the geolocation API: login, bearer-guarded search
// history, and the IP lookup proxy.
//
// @title        Geolocation API
// @version      1.0
// @description  IP geolocation lookups with per-user search history behind JWT login.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geotrace/geolocation-api/internal/api"
	"github.com/geotrace/geolocation-api/internal/core/service"
	"github.com/geotrace/geolocation-api/internal/infrastructure/config"
	mongodb "github.com/geotrace/geolocation-api/internal/infrastructure/db/mongo"
	redisdb "github.com/geotrace/geolocation-api/internal/infrastructure/db/redis"
	"github.com/geotrace/geolocation-api/internal/infrastructure/geoip"
	"github.com/geotrace/geolocation-api/internal/infrastructure/queue"
	"github.com/geotrace/geolocation-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Config before anything else: a missing JWT_SECRET must kill the process
	// here, not surface per-request.
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	historyRepo := mongodb.NewHistoryRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := historyRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure history indexes")
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	historyService := service.NewHistoryService(historyRepo, log)

	geoProvider := geoip.NewClient(cfg.GeoIP.BaseURL, cfg.GeoIP.Token, cfg.GeoIP.Timeout)
	geoCache := redisdb.NewGeoCache(rdb)
	lookupService := service.NewLookupService(geoProvider, geoCache, cfg.GeoIP.CacheTTL, log)

	recorder := queue.NewRecorder(0, historyService, log)
	recorder.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		History:   historyService,
		Lookup:    lookupService,
		Recorder:  recorder,
		JWTSecret: cfg.JWTSecret,
		Mongo:     db,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
