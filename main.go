package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/complianceguard/server/api"
	"github.com/complianceguard/server/config"
	"github.com/complianceguard/server/orchestrate"
	"github.com/complianceguard/server/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting ComplianceGuard server...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Orchestrate instance: %s", cfg.InstanceID)
	log.Printf("Agent: %s", cfg.AgentID)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Load demo staff roster
	if err := store.Seed(context.Background(), db); err != nil {
		log.Fatalf("Failed to seed employees: %v", err)
	}

	// Initialize orchestrate client
	client := orchestrate.NewClient(orchestrate.ClientConfig{
		TokenURL:       cfg.TokenURL,
		BaseURL:        cfg.OrchestrateBaseURL(),
		APIKey:         cfg.APIKey,
		AgentID:        cfg.AgentID,
		PollInterval:   cfg.PollInterval,
		PollTimeout:    cfg.PollTimeout,
		RequestTimeout: cfg.RequestTimeout,
	})

	// Initialize handler
	h := api.NewHandler(db, client, cfg)

	// Create Echo server
	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(server)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: server shutdown: %v", err)
	}
}
