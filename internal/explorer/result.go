package explorer

import (
	"github.com/overtimepog/traycer-internship/internal/scanner"
)

// Importance levels assigned to files by extension class.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Skip reasons recorded in ScanResult.SkipReason. Filtered files are never
// cached, so a later relaxation of the filters still produces a real result.
const (
	SkipTooLarge = "too large"
	SkipBinary   = "binary"
	SkipError    = "error"
)

// ScanResult is the per-file analysis output. It is produced fresh by a
// scan or reconstructed from a cache entry; the two forms round-trip
// through JSON without loss.
type ScanResult struct {
	Path       string            `json:"path"`
	Size       int64             `json:"size"`
	Extension  string            `json:"extension"`
	ModTime    int64             `json:"mod_time"` // unix nanoseconds
	Importance string            `json:"importance"`
	Relevant   bool              `json:"relevant"`
	Snippets   []scanner.Snippet `json:"snippets,omitempty"`
	Truncated  bool              `json:"truncated,omitempty"`
	SkipReason string            `json:"skip_reason,omitempty"`
}

// Summary aggregates one exploration run. Relevant holds only files with a
// keyword match or a target-pattern match, sorted high-importance first
// and then by descending snippet count.
type Summary struct {
	Relevant     []ScanResult   `json:"relevant"`
	FilesScanned int            `json:"files_scanned"` // fresh scans + cache hits
	CacheHits    int            `json:"cache_hits"`
	FilesSkipped int            `json:"files_skipped"`
	SkipReasons  map[string]int `json:"skip_reasons,omitempty"`
}

// EventType identifies an observability event emitted during exploration.
type EventType string

const (
	// EventCacheHit fires when a file's result is served from the
	// persistent cache instead of a content read.
	EventCacheHit EventType = "cache_hit"
	// EventSkip fires when a file is excluded from scanning.
	EventSkip EventType = "skip"
	// EventCacheWriteFailed fires when caching a fresh result failed.
	// The result is still returned — the cache is an optimization.
	EventCacheWriteFailed EventType = "cache_write_failed"
)

// Event is an informational notification surfaced to external observers
// (e.g. a user-facing layer reporting "served from cache"). Events carry
// no control dependency: exploration behaves identically with no listener.
type Event struct {
	Type   EventType
	Path   string
	Detail string
}
