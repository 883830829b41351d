// Traycer: codebase exploration MCP server.
//
// Traycer walks a directory tree, scans file contents for task-derived
// keywords, and caches per-file results in SQLite so repeated explorations
// of an unchanged codebase cost only stat calls.
//
// Usage:
//
//	traycer serve                    # Start MCP server (stdio transport)
//	traycer explore <dir> <task...>  # Run one exploration and print the summary
//	traycer update                   # Update to the latest version
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/overtimepog/traycer-internship/internal/cache"
	"github.com/overtimepog/traycer-internship/internal/config"
	"github.com/overtimepog/traycer-internship/internal/explorer"
	trayserver "github.com/overtimepog/traycer-internship/internal/server"
	"github.com/overtimepog/traycer-internship/internal/tools"
	"github.com/overtimepog/traycer-internship/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "explore":
		if err := runExplore(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("traycer v%s\n", trayserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	s, cleanup, err := trayserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

// runExplore performs a single exploration without the MCP layer and
// prints the rendered summary to stdout. Cache hits are reported to
// stderr as they happen.
func runExplore(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: traycer explore <dir> <task description...>")
	}
	rootDir := args[0]
	task := strings.Join(args[1:], " ")

	cfg, err := config.Load(config.FileName)
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.Cache)
	if err != nil {
		log.Printf("WARNING: cache disabled: %v", err)
		store = nil
	} else {
		defer func() { _ = store.Close() }()
	}

	engine, err := explorer.New(store, cfg.Explorer)
	if err != nil {
		return err
	}
	engine.OnEvent = func(ev explorer.Event) {
		if ev.Type == explorer.EventCacheHit {
			fmt.Fprintf(os.Stderr, "[cache] %s (no content read)\n", ev.Path)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := engine.Explore(ctx, rootDir, task)
	if err != nil {
		return err
	}

	fmt.Println(tools.RenderSummary(summary, 0))
	return nil
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. This runs in a goroutine during
// "serve" and is best-effort — network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(trayserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: traycer update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(trayserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(trayserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart traycer to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Traycer v%s — codebase exploration MCP server

Usage:
  traycer serve                    Start the MCP server (stdio transport)
  traycer explore <dir> <task...>  Explore a directory for task-relevant files
  traycer update                   Update to the latest version

Configuration:
  Optional overrides are read from traycer.json in the working directory.

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "traycer": {
        "command": "traycer",
        "args": ["serve"]
      }
    }
  }
`, trayserver.Version)
}
