// Package logging provides config-driven categorized file logging for relision.
// Logs are written to <config dir>/logs/ with one file per category.
// Logging is controlled by debug_mode in config.yaml - when false, every
// category logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, platform and config resolution
	CategoryConfig Category = "config" // Config load/save
	CategoryREPL   Category = "repl"   // Interactive session, commands, history
	CategoryTerms  Category = "terms"  // Term factory and writer
	CategoryFacts  Category = "facts"  // Datalog export and analysis of term graphs
)

// Config mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Config struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

var (
	loggers   = make(map[Category]*zap.SugaredLogger)
	files     = make(map[Category]*os.File)
	loggersMu sync.RWMutex

	logsDir  string
	config   Config
	level    = zapcore.InfoLevel
	configMu sync.RWMutex

	nop = zap.NewNop().Sugar()
)

// Initialize sets up the logging directory under dir and applies cfg.
// Should be called once at startup, after the config directory is known.
func Initialize(dir string, cfg Config) error {
	if dir == "" {
		return fmt.Errorf("config directory required")
	}

	CloseAll()

	configMu.Lock()
	config = cfg
	level = parseLevel(cfg.Level)
	logsDir = filepath.Join(dir, "logs")
	configMu.Unlock()

	// Only create logs directory if debug mode is enabled
	if !cfg.DebugMode {
		return nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== relision logging initialized ===")
	boot.Infof("Logs directory: %s", logsDir)
	boot.Infof("Log level: %s", level)
	if len(cfg.Categories) == 0 {
		boot.Info("All categories enabled (no category filter)")
	}
	return nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "warning":
		return zapcore.WarnLevel
	case "":
		return zapcore.InfoLevel
	}
	l, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return config.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !config.DebugMode {
		return false
	}
	if config.Categories == nil {
		return true // All enabled by default in debug mode
	}
	enabled, exists := config.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for the given category.
// Returns a no-op logger if debug mode or the category is disabled.
func Get(category Category) *zap.SugaredLogger {
	if !IsCategoryEnabled(category) {
		return nop
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	configMu.RLock()
	dir, lvl, asJSON := logsDir, level, config.JSONFormat
	configMu.RUnlock()

	// Date prefix for easy rotation
	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(dir, fmt.Sprintf("%s_%s.log", date, category))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return nop
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if asJSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(file), lvl)
	l := zap.New(core).Named(string(category)).Sugar()
	loggers[category] = l
	files[category] = file
	return l
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for cat, l := range loggers {
		_ = l.Sync()
		if f := files[cat]; f != nil {
			f.Close()
		}
	}
	loggers = make(map[Category]*zap.SugaredLogger)
	files = make(map[Category]*os.File)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debugf(format, args...)
}

// BootError logs an error to the boot category
func BootError(format string, args ...interface{}) {
	Get(CategoryBoot).Errorf(format, args...)
}

// ConfigInfo logs to the config category
func ConfigInfo(format string, args ...interface{}) {
	Get(CategoryConfig).Infof(format, args...)
}

// ConfigWarn logs a warning to the config category
func ConfigWarn(format string, args ...interface{}) {
	Get(CategoryConfig).Warnf(format, args...)
}

// REPL logs to the repl category
func REPL(format string, args ...interface{}) {
	Get(CategoryREPL).Infof(format, args...)
}

// REPLDebug logs debug to the repl category
func REPLDebug(format string, args ...interface{}) {
	Get(CategoryREPL).Debugf(format, args...)
}

// REPLWarn logs a warning to the repl category
func REPLWarn(format string, args ...interface{}) {
	Get(CategoryREPL).Warnf(format, args...)
}

// TermsDebug logs debug to the terms category
func TermsDebug(format string, args ...interface{}) {
	Get(CategoryTerms).Debugf(format, args...)
}

// Facts logs to the facts category
func Facts(format string, args ...interface{}) {
	Get(CategoryFacts).Infof(format, args...)
}

// FactsDebug logs debug to the facts category
func FactsDebug(format string, args ...interface{}) {
	Get(CategoryFacts).Debugf(format, args...)
}
