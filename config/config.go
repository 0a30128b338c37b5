package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/vfstree/internal/util"
	"gopkg.in/yaml.v3"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl    = util.InfoLevel
	DefaultRootName  = "/"
	DefaultRootID    = 1
	DefaultStrictIDs = false
	DefaultQuiet     = false
)

// Config contains runtime configuration values for a tree.
type Config struct {
	RootOptions
	LogLvl    util.LogLevel // Internal log level (Default info)
	StrictIDs bool          // Reject attaching a node whose id is already registered (Default false)
	Quiet     bool          // Suppress human-readable deletion notices (Default false)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	RootName  *string `yaml:"root_name,omitempty" json:"root_name,omitempty"`
	RootID    *uint64 `yaml:"root_id,omitempty" json:"root_id,omitempty"`
	LogLvl    *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"` // CLI verbosity 1 (error) to 5 (trace)
	StrictIDs *bool   `yaml:"strict_ids,omitempty" json:"strict_ids,omitempty"`
	Quiet     *bool   `yaml:"quiet,omitempty" json:"quiet,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		RootOptions: RootOptions{
			RootName: DefaultRootName,
			RootID:   DefaultRootID,
		},
		LogLvl:    DefaultLogLvl,
		StrictIDs: DefaultStrictIDs,
		Quiet:     DefaultQuiet,
	}
}

// NewConfig creates a Config from defaults with override applied; override may be nil
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.RootName != nil {
		c.RootName = *override.RootName
	}
	if override.RootID != nil {
		c.RootID = *override.RootID
	}
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.StrictIDs != nil {
		c.StrictIDs = *override.StrictIDs
	}
	if override.Quiet != nil {
		c.Quiet = *override.Quiet
	}
}

// VerboseToLogLevel converts CLI verbosity (clamped to 1..5) to a log level
func VerboseToLogLevel(verbose int) util.LogLevel {
	verbose = min(max(verbose, ErrorVerbose), TraceVerbose)
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
