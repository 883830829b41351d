// Package prompts implements MCP prompt handlers for the exploration
// workflow.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ExplorePrompt handles the traycer-explore MCP prompt.
// It guides the AI through an explore-then-read workflow for a task.
type ExplorePrompt struct{}

// NewExplorePrompt creates an ExplorePrompt.
func NewExplorePrompt() *ExplorePrompt {
	return &ExplorePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ExplorePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("traycer-explore",
		mcp.WithPromptDescription(
			"Explore the codebase for a task before touching any code. "+
				"Runs a keyword scan over the project, then walks you through "+
				"reading the most relevant files in order.",
		),
		mcp.WithArgument("task",
			mcp.ArgumentDescription("What you are trying to do, e.g. 'fix the login timeout handling'"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("root_dir",
			mcp.ArgumentDescription("Directory to explore (default: current directory)"),
		),
	)
}

// Handle processes the traycer-explore prompt request.
func (p *ExplorePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	task := ""
	rootDir := "."
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["task"]; ok && v != "" {
			task = v
		}
		if v, ok := args["root_dir"]; ok && v != "" {
			rootDir = v
		}
	}
	if task == "" {
		return nil, fmt.Errorf("prompts: 'task' argument is required")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Explore codebase for: %s", task),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I'm working on this task: %s\n\n"+
						"Please run `traycer_explore` with task_description %q and root_dir %q.\n\n"+
						"Then:\n"+
						"1. List the relevant files it found, in the order reported\n"+
						"2. Read the high-importance ones in full before any medium-importance file\n"+
						"3. Use the snippet line ranges to jump straight to the matching sections\n"+
						"4. Summarize how the pieces fit together before proposing changes",
					task, task, rootDir,
				)),
			},
		},
	}, nil
}
