package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wolfarena/internal/api"
	"wolfarena/internal/arena"
	"wolfarena/internal/config"
	"wolfarena/internal/sink"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system variables")
	}

	// Load server configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal("Invalid server configuration: ", err)
	}
	log.Printf("Loaded configuration: %d players, oracle provider %s", len(cfg.Game.Players), cfg.Oracle.Provider)

	// The daemon is pointless without a store to read results from.
	if cfg.Logs.SQLitePath == "" {
		cfg.Logs.SQLitePath = "arena.db"
	}
	db, err := sink.NewDB(cfg.Logs.SQLitePath, nil)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	generator, err := arena.NewOracle(context.Background(), cfg.Oracle)
	if err != nil {
		log.Fatal("Failed to initialize oracle: ", err)
	}

	runner := arena.NewRunner(cfg, generator, db, log.Default())
	apiServer := api.NewServer(cfg, runner, db)

	// Start server with production configuration
	addr := cfg.Server.Host + ":" + cfg.Server.Port

	server := &http.Server{
		Addr:         addr,
		Handler:      apiServer.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Abort any games still running in the background
	apiServer.Close()

	log.Println("Server gracefully stopped")
}
