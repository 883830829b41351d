// Package server wires the exploration engine and creates the MCP server
// instance. This is the composition root: it builds the cache store and
// explorer and injects them into the tools. No engine logic lives here.
package server

import (
	"errors"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/overtimepog/traycer-internship/internal/cache"
	"github.com/overtimepog/traycer-internship/internal/config"
	"github.com/overtimepog/traycer-internship/internal/explorer"
	"github.com/overtimepog/traycer-internship/internal/prompts"
	"github.com/overtimepog/traycer-internship/internal/resources"
	"github.com/overtimepog/traycer-internship/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with the exploration tools
// registered.
//
// The returned cleanup function closes the cache store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if cache init failed.
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load(config.FileName)
	if err != nil {
		return nil, noop, fmt.Errorf("loading config: %w", err)
	}

	// The cache is a performance optimization, never a correctness
	// dependency: if the store cannot be initialized, exploration runs
	// uncached. Invalid settings are the exception — those fail fast.
	cleanup := noop
	store, storeErr := cache.New(cfg.Cache)
	if storeErr != nil {
		if errors.Is(storeErr, cache.ErrInvalidConfig) {
			return nil, noop, fmt.Errorf("creating cache store: %w", storeErr)
		}
		log.Printf("WARNING: cache disabled: %v", storeErr)
		store = nil
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("WARNING: cache store close: %v", err)
			}
		}
	}

	engine, err := explorer.New(store, cfg.Explorer)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("creating explorer: %w", err)
	}

	s := server.NewMCPServer(
		"traycer",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	exploreTool := tools.NewExploreTool(engine)
	s.AddTool(exploreTool.Definition(), exploreTool.Handle)

	statsTool := tools.NewCacheStatsTool(store)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	clearTool := tools.NewCacheClearTool(store)
	s.AddTool(clearTool.Definition(), clearTool.Handle)

	snippetTool := tools.NewReadSnippetTool()
	s.AddTool(snippetTool.Definition(), snippetTool.Handle)

	explorePrompt := prompts.NewExplorePrompt()
	s.AddPrompt(explorePrompt.Definition(), explorePrompt.Handle)

	cachePrompt := prompts.NewCacheStatusPrompt()
	s.AddPrompt(cachePrompt.Definition(), cachePrompt.Handle)

	resourceHandler := resources.NewHandler(cfg, store)
	s.AddResource(resourceHandler.ConfigResource(), resourceHandler.HandleConfig)
	s.AddResource(resourceHandler.CacheResource(), resourceHandler.HandleCache)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the cache
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI how
// to use the exploration tools effectively.
func serverInstructions() string {
	return `You have access to Traycer, a codebase exploration MCP server.

## WHEN TO USE traycer_explore

Call traycer_explore BEFORE planning or implementing a change in an
unfamiliar codebase:
- The user describes a task and you need to find the files it touches
- You need keyword-matched snippets with exact line numbers for context
- You want to avoid reading whole directories file by file

Pass the user's task description verbatim — the tool derives search
keywords from it. Mentioning a filename in the description (e.g.
"update config.yaml") flags that file as a target and always includes it.

## HOW TO READ THE RESULT

- Relevant files are ranked: high-importance code files first, then by
  number of keyword matches
- Each match comes with a line range and surrounding context — use the
  line numbers to jump straight to the right place
- "Cache hits" means those files were unchanged since a previous
  exploration and were served from the persistent cache at no I/O cost

## CACHE MAINTENANCE

- traycer_cache_stats shows resident entries and total size
- traycer_cache_clear empties the cache; use it if results look stale
  despite file changes (the cache keys on modification time, so this
  should be rare)

Exploration is read-only and safe to repeat as the task evolves.`
}
