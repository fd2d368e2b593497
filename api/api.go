package main

import (
	"context"
	"highscores/api/modules"
	"highscores/api/routes"
	"highscores/pkg/config"
	"highscores/pkg/database"
	"highscores/pkg/logger"
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

// Local HTTP server for the leaderboard, backed by the same handler as the lambda.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't load the configuration: %v", err)
	}

	ctx := context.Background()

	// Apply the schema before serving.
	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Couldn't connect to the database: %v", err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get the sql connection: %v", err)
	}

	if err := database.RunMigrations(cfg.Database, sqlDb); err != nil {
		log.Fatalf("Couldn't run the migrations: %v", err)
	}
	sqlDb.Close()

	logger, err := logger.CreateLogger(os.Stdout, config.BucketConfiguration{})
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer logger.Close()

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Couldn't create the module: %v", err)
	}
	defer module.Close()

	// Create a new router with the routes setup.
	router := routes.NewRouter(gin.Default())
	router.SetupRoutes(
		module.LeaderboardHandler,
		module.Deps.Metrics.Handler(),
	)

	// Start the server.
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
