// ABOUTME: Serve command starts the HTTP pipeline server
// ABOUTME: Wires config, model client, prompts, metrics, and graceful shutdown
package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vidprep/vidprep/internal/config"
	"github.com/vidprep/vidprep/internal/llm"
	"github.com/vidprep/vidprep/internal/logger"
	"github.com/vidprep/vidprep/internal/metrics"
	"github.com/vidprep/vidprep/internal/pipeline"
	"github.com/vidprep/vidprep/internal/prompts"
	"github.com/vidprep/vidprep/internal/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP pipeline server",
		Long: `Start the HTTP pipeline server

Serves POST /run for pipeline execution, GET /result for the latest
result, plus /health, /config, and /metrics.`,
		RunE: runServe,
		Example: `  # Start the server on the default port (5050)
  vidprep serve

  # Custom port
  PORT=8080 vidprep serve`,
	}

	return cmd
}

// runServe starts the HTTP server
func runServe(cmd *cobra.Command, args []string) error {
	log := logger.New()

	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Debug("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.APIKey == "" {
		log.Warn("XAI_API_KEY not set - pipeline runs will fail at the first model call")
	}

	client := llm.NewGrokClient(cfg.BaseURL, cfg.APIKey)
	provider := prompts.NewFileProvider(cfg.PromptDir)
	m := metrics.New()
	pipe := pipeline.New(cfg, client, provider, m, log)
	srv := server.New(cfg, pipe, log)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("vidprep server listening")
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Info("shutdown signal received, draining connections")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}

	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
