package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// CacheStatusPrompt handles the traycer-cache-status MCP prompt.
// It instructs the AI to read and present the exploration cache state.
type CacheStatusPrompt struct{}

// NewCacheStatusPrompt creates a CacheStatusPrompt.
func NewCacheStatusPrompt() *CacheStatusPrompt {
	return &CacheStatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *CacheStatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("traycer-cache-status",
		mcp.WithPromptDescription(
			"Check the exploration cache. Shows how many per-file results are "+
				"stored, how much space they use, and whether a cleanup is due.",
		),
	)
}

// Handle processes the traycer-cache-status prompt request.
func (p *CacheStatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Exploration Cache Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `traycer_cache_stats` to check the exploration cache.\n\n" +
						"Then:\n" +
						"1. Show me the entry count and total size against the ceiling\n" +
						"2. Tell me whether the cache is close to its limit\n" +
						"3. If most of my recent work was in a different project, suggest " +
						"`traycer_cache_clear` and explain what it would cost",
				),
			},
		},
	}, nil
}
