package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/glasspane/shellhost/internal/infrastructure/config"
	"github.com/glasspane/shellhost/internal/server"
)

func main() {
	// Parse flags
	shellPath := flag.String("shell", "", "Path to the shell definition file (YAML or TOML)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	shell, err := config.LoadShell(*shellPath)
	if err != nil {
		log.Fatalf("Failed to load shell definition: %v", err)
	}

	// Create server
	srv, err := server.NewServer(cfg, shell)
	if err != nil {
		log.Fatalf("Failed to start shell host: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
