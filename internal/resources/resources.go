// Package resources implements MCP resource handlers for the exploration
// engine.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (traycer://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/overtimepog/traycer-internship/internal/cache"
	"github.com/overtimepog/traycer-internship/internal/config"
)

// Handler manages traycer resource endpoints.
type Handler struct {
	cfg   config.Config
	store *cache.Store
}

// NewHandler creates a resource Handler. The store may be nil when
// caching is disabled.
func NewHandler(cfg config.Config, store *cache.Store) *Handler {
	return &Handler{cfg: cfg, store: store}
}

// ConfigResource returns the MCP resource definition for the effective
// engine configuration.
func (h *Handler) ConfigResource() mcp.Resource {
	return mcp.NewResource(
		"traycer://config",
		"Traycer Configuration",
		mcp.WithResourceDescription("Effective exploration and cache settings after overrides"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleConfig returns the effective configuration as JSON.
func (h *Handler) HandleConfig(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// CacheResource returns the MCP resource definition for cache statistics.
func (h *Handler) CacheResource() mcp.Resource {
	return mcp.NewResource(
		"traycer://cache/stats",
		"Exploration Cache Statistics",
		mcp.WithResourceDescription("Resident entry count, total payload size, and the configured ceiling"),
		mcp.WithMIMEType("application/json"),
	)
}

// cacheStats is the JSON shape of the cache resource.
type cacheStats struct {
	Enabled    bool   `json:"enabled"`
	Entries    int    `json:"entries,omitempty"`
	TotalBytes int64  `json:"total_bytes,omitempty"`
	MaxBytes   int64  `json:"max_bytes,omitempty"`
	Path       string `json:"path,omitempty"`
}

// HandleCache returns the current cache statistics as JSON.
func (h *Handler) HandleCache(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats := cacheStats{Enabled: h.store != nil}
	if h.store != nil {
		entries, totalBytes, err := h.store.Stats()
		if err != nil {
			return errorResource(req.Params.URI, err.Error()), nil
		}
		stats.Entries = entries
		stats.TotalBytes = totalBytes
		stats.MaxBytes = h.store.MaxBytes()
		stats.Path = h.store.Path()
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling cache stats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
