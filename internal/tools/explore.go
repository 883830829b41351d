package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/overtimepog/traycer-internship/internal/explorer"
)

// ExploreTool handles the traycer_explore MCP tool.
// It runs the exploration engine over a directory tree and returns the
// aggregated summary of task-relevant files as markdown.
type ExploreTool struct {
	engine *explorer.Explorer
}

// NewExploreTool creates an ExploreTool with the given exploration engine.
func NewExploreTool(engine *explorer.Explorer) *ExploreTool {
	return &ExploreTool{engine: engine}
}

// Definition returns the MCP tool definition for registration.
func (t *ExploreTool) Definition() mcp.Tool {
	return mcp.NewTool("traycer_explore",
		mcp.WithDescription(
			"Explore a codebase for files relevant to a task. "+
				"Derives keywords from the task description, scans file contents "+
				"with line-accurate context snippets, and serves unchanged files "+
				"from a persistent cache. Returns relevant files ranked by importance "+
				"and match count — use the result to decide which files to read in full.",
		),
		mcp.WithString("task_description",
			mcp.Required(),
			mcp.Description("The task to find relevant files for, e.g. 'fix the login timeout handling'"),
		),
		mcp.WithString("root_dir",
			mcp.Description("Directory to explore (default: current directory)"),
		),
		mcp.WithNumber("concurrency",
			mcp.Description("Max files processed at once (default: engine setting)"),
		),
	)
}

// Handle processes the traycer_explore tool call.
func (t *ExploreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task := strings.TrimSpace(req.GetString("task_description", ""))
	if task == "" {
		return mcp.NewToolResultError("'task_description' is required"), nil
	}

	rootDir := strings.TrimSpace(req.GetString("root_dir", ""))
	if rootDir == "" {
		rootDir = "."
	}

	engine := t.engine
	if limit := intArg(req, "concurrency", 0); limit > 0 {
		engine = engine.WithConcurrency(limit)
	}

	summary, err := engine.Explore(ctx, rootDir, task)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("exploration failed: %v", err)), nil
	}

	return mcp.NewToolResultText(RenderSummary(summary, maxRenderedFiles)), nil
}
