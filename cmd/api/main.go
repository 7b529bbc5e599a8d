package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"point-anchor/config"
	"point-anchor/internal/adapter/chain/cardano"
	httpHandler "point-anchor/internal/adapter/http/handler"
	pgStorage "point-anchor/internal/adapter/storage/postgres"
	redisStorage "point-anchor/internal/adapter/storage/redis"
	"point-anchor/internal/core/ports"
	"point-anchor/internal/scheduler"
	"point-anchor/internal/service"
	"point-anchor/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Point Anchor")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	txRepo := pgStorage.NewTransactionRepo(pool)
	commitRepo := pgStorage.NewCommitRepo(pool)
	intentRepo := pgStorage.NewIntentRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize chain anchor
	anchor := cardano.NewAnchor(cfg.Chain, log)

	// Initialize business services
	commitSvc := service.NewCommitService(
		transactor,
		txRepo,
		commitRepo,
		intentRepo,
		anchor,
		cfg.Commit,
		cfg.Chain,
		log,
	)
	verifySvc := service.NewVerifyService(txRepo, commitRepo, anchor, log)

	// Initialize run lock and scheduler
	runLock := redisStorage.NewRunLock(rdb)
	sched := scheduler.New(commitSvc, runLock, cfg.Commit, log)

	schedCtx, stopSched := context.WithCancel(ctx)
	defer stopSched()
	go sched.Run(schedCtx)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CommitTrigger:  sched,
		VerifySvc:      verifySvc,
		CommitRepo:     commitRepo,
		Anchor:         anchor,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		APIKey:         cfg.API.Key,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopSched()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
