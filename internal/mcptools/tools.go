// ABOUTME: MCP tool definitions and registration for the vidprep server
// ABOUTME: Exposes the pipeline as run_pipeline and latest_result tools
package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/vidprep/vidprep/internal/config"
	"github.com/vidprep/vidprep/internal/logger"
	"github.com/vidprep/vidprep/internal/pipeline"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, cfg *config.Config, pipe *pipeline.Pipeline, log *logger.Logger) *Handlers {
	handlers := &Handlers{
		cfg:  cfg,
		pipe: pipe,
		log:  log,
	}

	// 1. run_pipeline - Run the full preprocessing pipeline on an image file
	server.AddTool(mcp.Tool{
		Name:        "run_pipeline",
		Description: "Analyze an image, route it through content policy, and generate a sequence of enhanced video fragment prompts. Returns the full pipeline result including routing decision, fragments, and cost breakdown.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"image_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the source image file (jpeg, png, or webp)",
				},
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "User's description of the desired video",
				},
				"duration": map[string]interface{}{
					"type":        "number",
					"description": "Requested video duration in seconds (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"image_path", "prompt"},
		},
	}, handlers.RunPipeline)

	// 2. latest_result - Fetch the most recent pipeline result
	server.AddTool(mcp.Tool{
		Name:        "latest_result",
		Description: "Get the most recently completed pipeline result, including fragments and cost accounting.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.LatestResult)

	// 3. show_config - Inspect the non-secret pipeline configuration
	server.AddTool(mcp.Tool{
		Name:        "show_config",
		Description: "Show the active pipeline configuration: models, routing policy, durations, and pricing. Credentials are never included.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ShowConfig)

	return handlers
}
