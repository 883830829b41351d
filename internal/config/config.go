// Package config holds the engine-level configuration: cache settings and
// exploration settings, with defaults and optional JSON-file overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/overtimepog/traycer-internship/internal/cache"
	"github.com/overtimepog/traycer-internship/internal/explorer"
)

// FileName is the conventional override file looked up in the working
// directory.
const FileName = "traycer.json"

// Config combines the settings of every engine subsystem.
type Config struct {
	Cache    cache.Config    `json:"cache"`
	Explorer explorer.Config `json:"explorer"`
}

// Default returns the engine defaults: a cache.db beside the working
// directory with a 100MB ceiling, and the standard exploration filters.
func Default() Config {
	return Config{
		Cache:    cache.DefaultConfig(),
		Explorer: explorer.DefaultConfig(),
	}
}

// Load reads overrides from the JSON file at path, applied on top of the
// defaults. A missing file is not an error — the defaults are returned.
// A malformed file is an error: silently ignoring a typo'd config is worse
// than failing.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
