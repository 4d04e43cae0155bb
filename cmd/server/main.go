// Package main initializes and starts the leaderboard server, setting up
// configuration, logging, database connections, repositories, services and
// handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/atelier-filial/filial/internal/config"
	"github.com/atelier-filial/filial/internal/db"
	"github.com/atelier-filial/filial/internal/logger"
	"github.com/atelier-filial/filial/internal/repository"
	"github.com/atelier-filial/filial/internal/server/handler/http"
	"github.com/atelier-filial/filial/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.TokenSecret == "" {
		zapLogger.Fatal("token signing secret is required (-s or TOKEN_SECRET)")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Prune leaderboard entries from past seasons.
	db.StartStaleScoreCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		90*24*time.Hour, // retention: one season
		zapLogger,
	)

	// Initialize repositories for players and scores.
	playerRepo := repository.NewPostgresPlayerRepository(postgresDB)
	scoreRepo := repository.NewPostgresLeaderboardRepository(postgresDB)

	// Initialize business-logic services.
	playerService := service.NewPlayerService(playerRepo)
	leaderboardService := service.NewLeaderboardService(scoreRepo)

	// Create HTTP handlers for auth and score endpoints.
	authHandler := &http.AuthHandler{
		PlayerService: playerService,
		TokenSecret:   options.TokenSecret,
	}
	scoresHandler := &http.ScoresHandler{LeaderboardService: leaderboardService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, scoresHandler, options.TokenSecret, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
