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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tripwise/tripwise/amadeus"
	"github.com/tripwise/tripwise/api"
	"github.com/tripwise/tripwise/chatbot"
	"github.com/tripwise/tripwise/config"
	"github.com/tripwise/tripwise/llm"
	"github.com/tripwise/tripwise/locator"
	"github.com/tripwise/tripwise/policy"
	"github.com/tripwise/tripwise/session"
	"github.com/tripwise/tripwise/store"
	"github.com/tripwise/tripwise/tools"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.Load()

	log.Printf("Starting tripwise backend...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Chat model: %s", cfg.ChatModel)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize clients
	llmClient := llm.NewClient(cfg.OpenRouterURL, cfg.OpenRouterAPIKey, cfg.LLMTimeout)
	amadeusClient := amadeus.NewClient(cfg.AmadeusURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusTimeout)

	// Initialize tool registry
	registry, err := tools.NewRegistry(amadeusClient)
	if err != nil {
		log.Fatalf("Failed to initialize tool registry: %v", err)
	}

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize services
	sessions := session.NewManager(db, cfg.SessionTTL)
	chat := chatbot.New(llmClient, registry, sessions, policyEngine, cfg.ChatModel, cfg.MaxToolRounds)
	cityLocator := locator.New(llmClient, cfg.VisionModel)

	// Initialize handler
	h := api.NewHandler(chat, cityLocator)

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

	log.Println("Shutting down...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Stopped")
}
