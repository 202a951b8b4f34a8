// main.go
package main

import (
	"context"
	"log"

	"catalog-web/cmd"
	"catalog-web/internal/data/repository"
	"catalog-web/internal/wire"
	"catalog-web/pkg/backend"
	"catalog-web/pkg/middleware"
	"catalog-web/pkg/utils"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Backend client
	baseURL, err := backend.ParseBaseURL(config.API.BaseURL)
	if err != nil {
		logger.Fatal("Invalid API base URL", zap.Error(err))
	}
	client, err := backend.InitClient(config.API)
	if err != nil {
		logger.Fatal("Failed to init backend client", zap.Error(err))
	}

	// The backend may come up after us; pages report failures on their own.
	if err := backend.Ping(context.Background(), client, baseURL); err != nil {
		logger.Warn("Backend not reachable yet", zap.String("base_url", baseURL), zap.Error(err))
	} else {
		logger.Info("Backend reachable", zap.String("base_url", baseURL))
	}

	// Session cookies
	secret := []byte(config.Session.Secret)
	if len(secret) == 0 {
		logger.Warn("SESSION_SECRET not set; sessions will not survive a restart")
		secret = securecookie.GenerateRandomKey(32)
	}
	store := middleware.NewSessionStore(config.Session, secret)

	// Initialize remote resource clients
	repos := repository.NewRepository(client, baseURL, logger)

	// Wire all dependencies
	app, err := wire.Wiring(repos, store, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
