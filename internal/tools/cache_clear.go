package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/overtimepog/traycer-internship/internal/cache"
)

// CacheClearTool handles the traycer_cache_clear MCP tool.
type CacheClearTool struct {
	store *cache.Store
}

// NewCacheClearTool creates a CacheClearTool with the given store.
func NewCacheClearTool(store *cache.Store) *CacheClearTool {
	return &CacheClearTool{store: store}
}

// Definition returns the MCP tool definition for traycer_cache_clear.
func (t *CacheClearTool) Definition() mcp.Tool {
	return mcp.NewTool("traycer_cache_clear",
		mcp.WithDescription(
			"Empty the exploration cache. The next exploration scans every file fresh.",
		),
	)
}

// Handle processes the traycer_cache_clear tool call.
func (t *CacheClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultText("Caching is disabled — nothing to clear."), nil
	}

	entries, _, err := t.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read cache: %v", err)), nil
	}
	if err := t.store.Clear(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear cache: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Cleared %d cache entries.", entries)), nil
}
