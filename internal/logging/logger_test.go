package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestAllCategoriesLog tests that all categories create log files when debug mode is on
func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	cfg := Config{DebugMode: true, Level: "debug"}
	if err := Initialize(tempDir, cfg); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if !IsDebugMode() {
		t.Error("Expected debug mode to be enabled")
	}

	categories := []Category{CategoryBoot, CategoryConfig, CategoryREPL, CategoryTerms, CategoryFacts}
	for _, cat := range categories {
		if !IsCategoryEnabled(cat) {
			t.Errorf("Category %s should be enabled", cat)
		}
		logger := Get(cat)
		logger.Infof("Test info message for %s", cat)
		logger.Debugf("Test debug message for %s", cat)
		logger.Warnf("Test warn message for %s", cat)
	}
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(tempDir, "logs"))
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}
	found := make(map[string]bool)
	for _, e := range entries {
		for _, cat := range categories {
			if strings.HasSuffix(e.Name(), "_"+string(cat)+".log") {
				found[string(cat)] = true
			}
		}
	}
	for _, cat := range categories {
		if !found[string(cat)] {
			t.Errorf("No log file created for category %s", cat)
		}
	}
}

func TestLogContent(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	if err := Initialize(tempDir, Config{DebugMode: true, Level: "info", JSONFormat: true}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	REPL("session %s started", "abc")
	REPLDebug("this is below the level")
	CloseAll()

	matches, _ := filepath.Glob(filepath.Join(tempDir, "logs", "*_repl.log"))
	if len(matches) != 1 {
		t.Fatalf("expected one repl log file, got %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"msg":"session abc started"`) {
		t.Errorf("expected JSON message in log, got: %s", content)
	}
	if strings.Contains(content, "below the level") {
		t.Errorf("debug message should have been filtered: %s", content)
	}
}

func TestProductionModeIsSilent(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	if err := Initialize(tempDir, Config{DebugMode: false}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if IsCategoryEnabled(CategoryBoot) {
		t.Error("categories must be disabled outside debug mode")
	}
	Boot("nothing should be written")

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Errorf("logs directory should not exist in production mode, stat err=%v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	tempDir := t.TempDir()
	defer CloseAll()

	cfg := Config{DebugMode: true, Categories: map[string]bool{"repl": false, "terms": true}}
	if err := Initialize(tempDir, cfg); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if IsCategoryEnabled(CategoryREPL) {
		t.Error("repl should be disabled")
	}
	if !IsCategoryEnabled(CategoryTerms) {
		t.Error("terms should be enabled")
	}
	if !IsCategoryEnabled(CategoryFacts) {
		t.Error("unlisted categories default to enabled")
	}
}

func TestInitializeRequiresDir(t *testing.T) {
	if err := Initialize("", Config{}); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"info":    "info",
		"warn":    "warn",
		"warning": "warn",
		"error":   "error",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
