package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/config"
	"github.com/milassets/backend/database"
	"github.com/milassets/backend/handlers"
	"github.com/milassets/backend/natsserver"
	"github.com/milassets/backend/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var logger *zap.Logger
	if cfg.Production() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("database connected")

	// Embedded NATS server backs the asset activity stream
	bus, err := natsserver.New(natsserver.Config{Port: cfg.NATSPort})
	if err != nil {
		logger.Fatal("failed to start NATS server", zap.Error(err))
	}
	defer bus.Shutdown()
	logger.Info("embedded NATS server started", zap.String("address", bus.Address()))

	hub, err := services.NewActivityHub(bus, logger)
	if err != nil {
		logger.Fatal("failed to start activity hub", zap.Error(err))
	}
	go hub.Run()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		DB:     db,
		Tokens: auth.NewTokenService(cfg.JWTSecret),
		Hub:    hub,
		Bus:    bus,
		Log:    logger,
	})

	logger.Info("server running", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
