package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"relision/internal/logging"
)

// FileName is the configuration file kept in the config directory.
const FileName = "config.yaml"

// Config holds all relision configuration.
type Config struct {
	// REPL settings
	REPL REPLConfig `yaml:"repl"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// REPLConfig configures the interactive session.
type REPLConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"` // relative paths resolve against the config dir
	MaxHistory  int    `yaml:"max_history"`
	Color       bool   `yaml:"color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:      "e> ",
			HistoryFile: "repl.history",
			MaxHistory:  1000,
			Color:       true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	logging.ConfigInfo("loaded config from %s", path)

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if prompt := os.Getenv("RELISION_PROMPT"); prompt != "" {
		c.REPL.Prompt = prompt
	}
	if path := os.Getenv("RELISION_HISTORY_FILE"); path != "" {
		c.REPL.HistoryFile = path
	}
	if v := os.Getenv("RELISION_DEBUG"); v != "" {
		on, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			logging.ConfigWarn("ignoring RELISION_DEBUG=%q: %v", v, err)
			return
		}
		c.Logging.DebugMode = on
		if on {
			c.Logging.Level = "debug"
		}
	}
}

// HistoryPath resolves the history file against dir. An empty history
// file disables persistence and yields "".
func (c *Config) HistoryPath(dir string) string {
	p := c.REPL.HistoryFile
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.REPL.MaxHistory < 0 {
		return fmt.Errorf("invalid max_history: %d (must be >= 0)", c.REPL.MaxHistory)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s (valid: json, text)", c.Logging.Format)
	}
	return nil
}
