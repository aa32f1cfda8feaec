// ABOUTME: MCP tool handler implementations for the vidprep server
// ABOUTME: Reads image files from disk, sniffs MIME types, and invokes the pipeline
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vidprep/vidprep/internal/config"
	"github.com/vidprep/vidprep/internal/logger"
	"github.com/vidprep/vidprep/internal/pipeline"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	cfg  *config.Config
	pipe *pipeline.Pipeline
	log  *logger.Logger
}

// RunPipeline handles the run_pipeline tool
func (h *Handlers) RunPipeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imagePath, err := request.RequireString("image_path")
	if err != nil {
		return mcp.NewToolResultError("image_path argument is required and must be a string"), nil
	}

	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("prompt argument is required and must be a string"), nil
	}

	duration := request.GetInt("duration", 0)

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read image file: %v", err)), nil
	}

	result, err := h.pipe.Run(ctx, pipeline.Request{
		Image:     image,
		ImageMIME: sniffImageMIME(imagePath, image),
		Prompt:    prompt,
		Duration:  duration,
	})
	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(verr.Reason), nil
		}
		h.log.WithField("error", err.Error()).Error("pipeline failed")
		return mcp.NewToolResultError(fmt.Sprintf("pipeline failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// LatestResult handles the latest_result tool
func (h *Handlers) LatestResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, ok := h.pipe.Latest()
	if !ok {
		return mcp.NewToolResultError("no results available, run the pipeline first"), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ShowConfig handles the show_config tool
func (h *Handlers) ShowConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(h.cfg.Public())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// sniffImageMIME determines the image content type, preferring the file
// extension and falling back to content sniffing.
func sniffImageMIME(path string, data []byte) string {
	switch {
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	}
	return http.DetectContentType(data)
}
