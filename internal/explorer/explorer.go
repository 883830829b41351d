// Package explorer implements the exploration engine: it walks a directory
// tree, scans file contents for task-derived keywords with bounded
// concurrency, and serves unchanged files from the persistent cache so
// repeated explorations avoid redundant I/O.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/overtimepog/traycer-internship/internal/cache"
	"github.com/overtimepog/traycer-internship/internal/scanner"
)

// ErrInvalidConfig reports a configuration the explorer refuses to start
// with. Like cache.ErrInvalidConfig, it is surfaced at construction and
// never during a run.
var ErrInvalidConfig = errors.New("explorer: invalid config")

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds exploration settings.
type Config struct {
	// IgnoreDirs are directory names skipped entirely during traversal.
	IgnoreDirs []string `json:"ignore_dirs"`
	// CodeExtensions mark high-importance files; TextExtensions mark
	// medium-importance ones. Everything else is low importance and gets
	// metadata only, no content scan.
	CodeExtensions []string `json:"code_extensions"`
	TextExtensions []string `json:"text_extensions"`
	// MaxFileSize is the absolute ceiling above which a file is skipped
	// without being read.
	MaxFileSize int64 `json:"max_file_size"`
	// MaxReadBytes bounds how much of a file is read for scanning; larger
	// files are scanned on the truncated prefix.
	MaxReadBytes int64 `json:"max_read_bytes"`
	// ContextRadius is the number of context lines on each side of a
	// keyword match.
	ContextRadius int `json:"context_radius"`
	// Concurrency bounds simultaneous file-processing tasks.
	Concurrency int `json:"concurrency"`
}

// DefaultConfig returns the default exploration settings.
func DefaultConfig() Config {
	return Config{
		IgnoreDirs:     []string{".git", "node_modules", "__pycache__", "venv", ".pytest_cache", "vendor"},
		CodeExtensions: []string{".go", ".py", ".js", ".ts", ".jsx", ".tsx"},
		TextExtensions: []string{
			".go", ".py", ".js", ".ts", ".jsx", ".tsx",
			".json", ".txt", ".md", ".html", ".css", ".xml", ".csv", ".yaml", ".yml",
		},
		MaxFileSize:   10 * 1024 * 1024,
		MaxReadBytes:  100 * 1024,
		ContextRadius: 2,
		Concurrency:   100,
	}
}

func (c Config) validate() error {
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.ContextRadius < 0 {
		return fmt.Errorf("%w: context radius must not be negative, got %d", ErrInvalidConfig, c.ContextRadius)
	}
	if c.MaxReadBytes <= 0 {
		return fmt.Errorf("%w: max read bytes must be positive, got %d", ErrInvalidConfig, c.MaxReadBytes)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max file size must be positive, got %d", ErrInvalidConfig, c.MaxFileSize)
	}
	return nil
}

// ─── Explorer ────────────────────────────────────────────────────────────────

// Explorer runs explorations against a directory tree. It is safe for
// concurrent use. The cache store may be nil, in which case every file is
// scanned fresh — the engine degrades, it never depends on the cache.
type Explorer struct {
	cache *cache.Store
	cfg   Config

	ignore   map[string]struct{}
	codeExts map[string]struct{}
	textExts map[string]struct{}

	// OnEvent, when non-nil, receives informational events (cache hits,
	// skips). It may be called from multiple goroutines at once.
	OnEvent func(Event)

	// Injection points for tests that count or fail content reads.
	readContent func(path string, maxBytes int64) (string, bool, error)
	sniffBinary func(path string) (bool, error)
}

// New creates an Explorer with the given cache store (nil disables
// caching) and configuration.
func New(store *cache.Store, cfg Config) (*Explorer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Explorer{
		cache:       store,
		cfg:         cfg,
		ignore:      toSet(cfg.IgnoreDirs),
		codeExts:    toSet(cfg.CodeExtensions),
		textExts:    toSet(cfg.TextExtensions),
		readContent: scanner.ReadContent,
		sniffBinary: scanner.SniffBinary,
	}, nil
}

// WithConcurrency returns a copy of the explorer with a different
// concurrency limit. Non-positive limits keep the current one.
func (e *Explorer) WithConcurrency(limit int) *Explorer {
	if limit <= 0 {
		return e
	}
	clone := *e
	clone.cfg.Concurrency = limit
	return &clone
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func (e *Explorer) emit(ev Event) {
	if e.OnEvent != nil {
		e.OnEvent(ev)
	}
}

// ─── Exploration ─────────────────────────────────────────────────────────────

// Explore derives keywords and target-file patterns from the task
// description and runs ExploreKeywords over rootDir.
func (e *Explorer) Explore(ctx context.Context, rootDir, taskDescription string) (*Summary, error) {
	return e.ExploreKeywords(ctx, rootDir, DeriveKeywords(taskDescription), DeriveFilePatterns(taskDescription))
}

// ExploreKeywords walks rootDir, dispatches per-file processing with
// bounded concurrency, and aggregates the results. A single file's failure
// is recorded as skipped and never aborts the run; only an unreadable root
// or context cancellation returns an error.
func (e *Explorer) ExploreKeywords(ctx context.Context, rootDir string, keywords, filePatterns []string) (*Summary, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)

	type outcome struct {
		res       ScanResult
		fromCache bool
	}
	results := make(chan outcome)

	// Single-writer aggregation: workers hand results to one collector so
	// the summary is never mutated concurrently.
	summary := &Summary{SkipReasons: make(map[string]int)}
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for out := range results {
			if out.res.SkipReason != "" {
				summary.FilesSkipped++
				summary.SkipReasons[out.res.SkipReason]++
				continue
			}
			summary.FilesScanned++
			if out.fromCache {
				summary.CacheHits++
			}
			if out.res.Relevant {
				summary.Relevant = append(summary.Relevant, out.res)
			}
		}
	}()

	walkErr := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootDir {
				return err
			}
			e.emit(Event{Type: EventSkip, Path: path, Detail: err.Error()})
			results <- outcome{res: ScanResult{Path: path, SkipReason: SkipError}}
			return nil
		}
		if d.IsDir() {
			if path != rootDir {
				if _, ignored := e.ignore[d.Name()]; ignored {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if gctx.Err() != nil {
			return gctx.Err()
		}

		p := path
		target := matchesTarget(d.Name(), filePatterns)
		g.Go(func() error {
			res, fromCache := e.processFile(p, target, keywords)
			select {
			case results <- outcome{res: res, fromCache: fromCache}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
		return nil
	})

	gErr := g.Wait()
	close(results)
	<-collectorDone

	if walkErr != nil {
		return nil, fmt.Errorf("explorer: walk %s: %w", rootDir, walkErr)
	}
	if gErr != nil {
		return nil, gErr
	}

	sortRelevant(summary.Relevant)
	return summary, nil
}

// sortRelevant orders results high-importance first, then by descending
// snippet count, then by path so unchanged trees always produce the same
// summary order.
func sortRelevant(results []ScanResult) {
	sort.SliceStable(results, func(i, j int) bool {
		hi := results[i].Importance == ImportanceHigh
		hj := results[j].Importance == ImportanceHigh
		if hi != hj {
			return hi
		}
		if len(results[i].Snippets) != len(results[j].Snippets) {
			return len(results[i].Snippets) > len(results[j].Snippets)
		}
		return results[i].Path < results[j].Path
	})
}

// ─── File processing ─────────────────────────────────────────────────────────

// processFile runs the cache check / filter / scan pipeline for one file.
// It performs exactly one stat, at most one cache read and one cache
// write, and reads content only on a cache miss. The bool result reports
// whether the result came from the cache.
func (e *Explorer) processFile(path string, target bool, keywords []string) (ScanResult, bool) {
	info, err := os.Stat(path)
	if err != nil {
		e.emit(Event{Type: EventSkip, Path: path, Detail: err.Error()})
		return ScanResult{Path: path, SkipReason: SkipError}, false
	}

	res := ScanResult{
		Path:      path,
		Size:      info.Size(),
		Extension: strings.ToLower(filepath.Ext(path)),
		ModTime:   info.ModTime().UnixNano(),
	}

	var key string
	if e.cache != nil {
		abs, absErr := filepath.Abs(path)
		if absErr == nil {
			key = cache.Key(abs, info.ModTime())
			if payload, ok := e.cache.Get(key); ok {
				var cached ScanResult
				if err := json.Unmarshal(payload, &cached); err == nil {
					if target {
						cached.Importance = ImportanceHigh
						cached.Relevant = true
					}
					e.emit(Event{Type: EventCacheHit, Path: path, Detail: "served from cache"})
					return cached, true
				}
			}
		}
	}

	if info.Size() > e.cfg.MaxFileSize {
		e.emit(Event{Type: EventSkip, Path: path, Detail: SkipTooLarge})
		res.SkipReason = SkipTooLarge
		return res, false
	}

	binary, err := e.sniffBinary(path)
	if err != nil {
		e.emit(Event{Type: EventSkip, Path: path, Detail: err.Error()})
		res.SkipReason = SkipError
		return res, false
	}
	if binary {
		e.emit(Event{Type: EventSkip, Path: path, Detail: SkipBinary})
		res.SkipReason = SkipBinary
		return res, false
	}

	res.Importance = e.importance(res.Extension, target)
	if res.Importance != ImportanceLow {
		content, truncated, err := e.readContent(path, e.cfg.MaxReadBytes)
		if err != nil {
			e.emit(Event{Type: EventSkip, Path: path, Detail: err.Error()})
			res.SkipReason = SkipError
			return res, false
		}
		res.Truncated = truncated
		res.Snippets = scanner.Scan(content, keywords, e.cfg.ContextRadius)
	}
	res.Relevant = len(res.Snippets) > 0 || target

	if e.cache != nil && key != "" {
		if payload, err := json.Marshal(res); err == nil {
			if err := e.cache.Set(key, payload); err != nil {
				e.emit(Event{Type: EventCacheWriteFailed, Path: path, Detail: err.Error()})
			}
		}
	}
	return res, false
}

// importance classifies a file by extension class. Target files are always
// high; code extensions are high, other text extensions medium, and
// everything else low (metadata only, no scan).
func (e *Explorer) importance(ext string, target bool) string {
	switch {
	case target:
		return ImportanceHigh
	case contains(e.codeExts, ext):
		return ImportanceHigh
	case contains(e.textExts, ext):
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
