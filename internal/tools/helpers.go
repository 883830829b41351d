// Package tools implements MCP tool handlers for the exploration engine.
//
// Each tool follows the same pattern: a struct with its dependencies
// injected via constructor, Definition() returning the mcp.Tool schema,
// and Handle() processing the request. One file per tool.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/overtimepog/traycer-internship/internal/explorer"
)

// maxRenderedFiles caps how many relevant files a tool response lists.
// The summary counts always cover the full run.
const maxRenderedFiles = 20

// maxRenderedSnippets caps snippet blocks rendered per file.
const maxRenderedSnippets = 5

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// RenderSummary formats an exploration summary as markdown: counts first,
// then the relevant files with their snippet line ranges and content.
// At most maxFiles files are rendered; a footer reports when results were
// capped. Shared by the MCP tools and the one-shot CLI mode.
func RenderSummary(s *explorer.Summary, maxFiles int) string {
	var sb strings.Builder
	sb.WriteString("## Exploration Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Files scanned**: %d\n", s.FilesScanned))
	sb.WriteString(fmt.Sprintf("- **Cache hits**: %d\n", s.CacheHits))
	sb.WriteString(fmt.Sprintf("- **Files skipped**: %d%s\n", s.FilesSkipped, skipBreakdown(s.SkipReasons)))
	sb.WriteString(fmt.Sprintf("- **Relevant files**: %d\n", len(s.Relevant)))

	if len(s.Relevant) == 0 {
		sb.WriteString("\nNo files matched the task keywords.\n")
		return sb.String()
	}

	shown := s.Relevant
	if maxFiles > 0 && len(shown) > maxFiles {
		shown = shown[:maxFiles]
	}

	for _, res := range shown {
		sb.WriteString(fmt.Sprintf("\n### %s\n\n", res.Path))
		sb.WriteString(fmt.Sprintf("Importance: %s · %d match(es)", res.Importance, len(res.Snippets)))
		if res.Truncated {
			sb.WriteString(" · scanned truncated prefix")
		}
		sb.WriteString("\n")

		snippets := res.Snippets
		if len(snippets) > maxRenderedSnippets {
			snippets = snippets[:maxRenderedSnippets]
		}
		for _, sn := range snippets {
			sb.WriteString(fmt.Sprintf("\nLines %d-%d:\n\n```\n%s\n```\n", sn.StartLine, sn.EndLine, sn.Text))
		}
		if len(res.Snippets) > maxRenderedSnippets {
			sb.WriteString(fmt.Sprintf("\n…and %d more match(es) in this file.\n", len(res.Snippets)-maxRenderedSnippets))
		}
	}

	if len(s.Relevant) > len(shown) {
		sb.WriteString(fmt.Sprintf("\n📊 Showing %d of %d relevant files.\n", len(shown), len(s.Relevant)))
	}
	return sb.String()
}

func skipBreakdown(reasons map[string]int) string {
	if len(reasons) == 0 {
		return ""
	}
	parts := make([]string, 0, len(reasons))
	for _, reason := range []string{explorer.SkipTooLarge, explorer.SkipBinary, explorer.SkipError} {
		if n := reasons[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", reason, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
