package main

import (
	"context"
	"log"
	"time"

	"github.com/adnan-k/sociograph/backend/internal/engine"
	"github.com/adnan-k/sociograph/backend/internal/router"
	"github.com/adnan-k/sociograph/backend/pkg/config"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Mutation engine shared by handlers and the reaper
	eng := engine.New(db)

	// Background reaper for expired soft-deleted content
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reaper := engine.NewReaper(db,
		time.Duration(cfg.RetentionDays)*24*time.Hour,
		time.Duration(cfg.ReapIntervalHours)*time.Hour,
	)
	reaper.Start(ctx)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, eng, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
