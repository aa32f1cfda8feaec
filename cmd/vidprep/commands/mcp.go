// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to run the preprocessing pipeline via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mark3labs/mcp-go/server"
	"github.com/vidprep/vidprep/internal/config"
	"github.com/vidprep/vidprep/internal/llm"
	"github.com/vidprep/vidprep/internal/logger"
	"github.com/vidprep/vidprep/internal/mcptools"
	"github.com/vidprep/vidprep/internal/pipeline"
	"github.com/vidprep/vidprep/internal/prompts"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs vidprep as an MCP (Model Context Protocol) server, exposing the
preprocessing pipeline as tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  vidprep mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "vidprep": {
  #       "command": "vidprep",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server on stdio
func runMCP(cmd *cobra.Command, args []string) error {
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
	pipe := pipeline.New(cfg, client, provider, nil, log)

	mcpServer := server.NewMCPServer(
		"vidprep",
		versionInfo.Version,
	)

	mcptools.RegisterTools(mcpServer, cfg, pipe, log)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Info("vidprep MCP server starting on stdio")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ServeStdio(mcpServer)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Info("shutdown signal received")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
