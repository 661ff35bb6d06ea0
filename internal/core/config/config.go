// Package config handles configuration loading and validation for scramble.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Confirmation modes for rename execution.
const (
	ConfirmNone  = "none"
	ConfirmBatch = "batch"
	ConfirmEach  = "each"
	ConfirmTUI   = "tui"
)

// Error handling modes for path resolution and rename failures.
const (
	ErrorsIgnore = "ignore"
	ErrorsWarn   = "warn"
	ErrorsHalt   = "halt"
)

// Config holds the application configuration.
type Config struct {
	Rename  RenameConfig  `yaml:"rename"`
	Engine  EngineConfig  `yaml:"engine"`
	History HistoryConfig `yaml:"history"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// RenameConfig holds the default rename options. Every field can be
// overridden by a command line flag.
type RenameConfig struct {
	CharSet     string `yaml:"char_set"`
	CustomChars string `yaml:"custom_chars"`
	Case        string `yaml:"case"`
	Length      int    `yaml:"length"`
	Prefix      string `yaml:"prefix"`
	Suffix      string `yaml:"suffix"`
	ExtMode     string `yaml:"ext_mode"`
	StaticExt   string `yaml:"static_ext"`
	Confirm     string `yaml:"confirm"`
	BatchSize   *int   `yaml:"batch_size"` // 0 means unlimited; nil means unset
	Errors      string `yaml:"errors"`
}

// BatchLimit returns the confirmation batch size, 0 meaning unlimited.
func (rc RenameConfig) BatchLimit() int {
	if rc.BatchSize == nil {
		return 0
	}
	return *rc.BatchSize
}

// EngineConfig tunes the name generation engine.
type EngineConfig struct {
	// StrategyThreshold is the files-to-space ratio at which generation
	// switches from on-demand sampling to enumerate-then-match.
	StrategyThreshold float64 `yaml:"strategy_threshold"`
}

// HistoryConfig controls batch history recording.
type HistoryConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	enabled := true
	batchSize := 10
	return Config{
		Rename: RenameConfig{
			CharSet:   "base16",
			Length:    8,
			ExtMode:   "keep_last",
			Confirm:   ConfirmBatch,
			BatchSize: &batchSize,
			Errors:    ErrorsWarn,
		},
		Engine: EngineConfig{
			StrategyThreshold: 0.1,
		},
		History: HistoryConfig{
			Enabled: &enabled,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Rename.CharSet == "" {
		c.Rename.CharSet = defaults.Rename.CharSet
	}
	if c.Rename.Length == 0 {
		c.Rename.Length = defaults.Rename.Length
	}
	if c.Rename.ExtMode == "" {
		c.Rename.ExtMode = defaults.Rename.ExtMode
	}
	if c.Rename.Confirm == "" {
		c.Rename.Confirm = defaults.Rename.Confirm
	}
	// nil means the key was absent; an explicit 0 means unlimited and
	// must survive as-is
	if c.Rename.BatchSize == nil {
		c.Rename.BatchSize = defaults.Rename.BatchSize
	}
	if c.Rename.Errors == "" {
		c.Rename.Errors = defaults.Rename.Errors
	}
	if c.Engine.StrategyThreshold == 0 {
		c.Engine.StrategyThreshold = defaults.Engine.StrategyThreshold
	}
	if c.History.Enabled == nil {
		c.History.Enabled = defaults.History.Enabled
	}
}

// HistoryEnabled reports whether executed batches are recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// HistoryFile returns the path to the batch history JSON file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "history.json")
}
