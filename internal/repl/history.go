package repl

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"relision/internal/logging"
)

// History is the bounded list of entered lines, oldest first.
type History struct {
	max   int
	lines []string
}

// NewHistory returns an empty history keeping at most max lines. A max of
// zero or less keeps everything.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add appends line. Empty lines and a repeat of the last line are dropped.
func (h *History) Add(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return false
	}
	h.lines = append(h.lines, line)
	if h.max > 0 && len(h.lines) > h.max {
		h.lines = append(h.lines[:0], h.lines[len(h.lines)-h.max:]...)
	}
	return true
}

// Lines returns a copy of the stored lines.
func (h *History) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Len is the number of stored lines.
func (h *History) Len() int { return len(h.lines) }

// Load appends the lines of the file at path. A missing file is not an
// error.
func (h *History) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		h.Add(strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	logging.REPLDebug("loaded %d history lines from %s", len(h.lines), path)
	return nil
}

// Save writes the history to path, one line per entry.
func (h *History) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	var sb strings.Builder
	for _, line := range h.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	logging.REPLDebug("saved %d history lines to %s", len(h.lines), path)
	return nil
}
