package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/overtimepog/traycer-internship/internal/scanner"
)

// defaultSnippetRadius is the context window used when the caller does
// not pass one. Matches the exploration engine's default.
const defaultSnippetRadius = 2

// ReadSnippetTool handles the traycer_read_snippet MCP tool.
// It returns the lines around a location reported by traycer_explore
// without loading the whole file.
type ReadSnippetTool struct{}

// NewReadSnippetTool creates a ReadSnippetTool.
func NewReadSnippetTool() *ReadSnippetTool {
	return &ReadSnippetTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadSnippetTool) Definition() mcp.Tool {
	return mcp.NewTool("traycer_read_snippet",
		mcp.WithDescription(
			"Read the lines surrounding a specific line of a file. "+
				"Use it to expand a match reported by traycer_explore without "+
				"reading the whole file.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File to read"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-indexed line number at the center of the window"),
		),
		mcp.WithNumber("context_radius",
			mcp.Description("Lines of context on each side (default: 2)"),
		),
	)
}

// Handle processes the traycer_read_snippet tool call.
func (t *ReadSnippetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := strings.TrimSpace(req.GetString("path", ""))
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	line := intArg(req, "line", 0)
	if line < 1 {
		return mcp.NewToolResultError("'line' must be a positive line number"), nil
	}

	radius := intArg(req, "context_radius", defaultSnippetRadius)
	if radius < 0 {
		radius = defaultSnippetRadius
	}

	block, err := scanner.ReadSnippet(path, line, radius)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read snippet: %v", err)), nil
	}
	if block == "" {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no line %d.", path, line)), nil
	}

	start := line - radius
	if start < 1 {
		start = 1
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s, lines %d-%d:\n\n```\n%s\n```\n",
		path, start, start+strings.Count(block, "\n"), block)), nil
}
