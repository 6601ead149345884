package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/worldforge/mapgen/internal/api"
	"github.com/worldforge/mapgen/internal/config"
	"github.com/worldforge/mapgen/internal/db"
	"github.com/worldforge/mapgen/internal/runs"
	"github.com/worldforge/mapgen/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	devMode := flag.Bool("dev", false, "enable development mode")
	noDB := flag.Bool("no-db", false, "run without database (in-memory only)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s, using defaults: %v", *configPath, err)
		cfg = config.Default()
	}

	if *devMode {
		cfg.Dev.Enabled = true
		log.Println("Development mode enabled")
	}

	// Initialize database connections
	var postgres *db.Postgres
	var redis *db.Redis

	if *noDB || cfg.Dev.NoDB {
		log.Println("Running without database (in-memory mode)")
	} else {
		var err error
		postgres, err = db.NewPostgres(cfg.Database.PostgresURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to PostgreSQL: %v", err)
		}
		if postgres != nil && postgres.IsConnected() {
			if err := postgres.EnsureSchema(context.Background()); err != nil {
				log.Printf("Warning: Failed to ensure schema: %v", err)
			}
		}

		redis, err = db.NewRedis(cfg.Database.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
		}
	}
	defer postgres.Close()
	defer redis.Close()

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize run manager
	runManager := runs.NewManager(cfg.Worldgen, hub, postgres)

	// Set up HTTP routes
	router := api.NewRouter(runManager, hub, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
