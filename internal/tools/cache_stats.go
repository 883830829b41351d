package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/overtimepog/traycer-internship/internal/cache"
)

// CacheStatsTool handles the traycer_cache_stats MCP tool.
type CacheStatsTool struct {
	store *cache.Store
}

// NewCacheStatsTool creates a CacheStatsTool with the given store.
// A nil store is allowed — the tool then reports that caching is disabled.
func NewCacheStatsTool(store *cache.Store) *CacheStatsTool {
	return &CacheStatsTool{store: store}
}

// Definition returns the MCP tool definition for traycer_cache_stats.
func (t *CacheStatsTool) Definition() mcp.Tool {
	return mcp.NewTool("traycer_cache_stats",
		mcp.WithDescription(
			"Show exploration cache statistics — resident entries, total size, and the configured ceiling.",
		),
	)
}

// Handle processes the traycer_cache_stats tool call.
func (t *CacheStatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultText("Caching is disabled — every exploration scans fresh."), nil
	}

	entries, totalBytes, err := t.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get cache stats: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Cache Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Entries**: %d\n", entries))
	sb.WriteString(fmt.Sprintf("- **Total size**: %s\n", humanize.Bytes(uint64(totalBytes))))
	sb.WriteString(fmt.Sprintf("- **Ceiling**: %s\n", humanize.Bytes(uint64(t.store.MaxBytes()))))
	sb.WriteString(fmt.Sprintf("- **Store**: %s\n", t.store.Path()))

	return mcp.NewToolResultText(sb.String()), nil
}
