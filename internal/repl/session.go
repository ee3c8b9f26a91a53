// Package repl implements the interactive read-eval-print loop: line
// input, colon commands resolved by unique prefix, and persistent history.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"relision/internal/logging"
	"relision/internal/terms"
)

// DefaultPrompt is shown before each line.
const DefaultPrompt = "e> "

// Options configure a Session. Zero values select defaults.
type Options struct {
	Factory     *terms.Factory
	Registry    *Registry
	History     *History
	Reader      InputReader
	Out         io.Writer
	Prompt      string
	HistoryPath string // empty disables persistence
	Color       bool
}

// Session is one run of the REPL.
type Session struct {
	id          string
	factory     *terms.Factory
	registry    *Registry
	history     *History
	reader      InputReader
	out         io.Writer
	prompt      string
	historyPath string
	styles      Styles
}

// NewSession builds a session from opts.
func NewSession(opts Options) *Session {
	s := &Session{
		id:          uuid.NewString(),
		factory:     opts.Factory,
		registry:    opts.Registry,
		history:     opts.History,
		reader:      opts.Reader,
		out:         opts.Out,
		prompt:      opts.Prompt,
		historyPath: opts.HistoryPath,
		styles:      NewStyles(opts.Color),
	}
	if s.factory == nil {
		s.factory = terms.NewFactory()
	}
	if s.registry == nil {
		s.registry = NewRegistry(DefaultCommands()...)
	}
	if s.history == nil {
		s.history = NewHistory(1000)
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.reader == nil {
		s.reader = NewInputReader(os.Stdin, s.out, s.history)
	}
	if s.prompt == "" {
		s.prompt = DefaultPrompt
	}
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Factory is the term factory shared by commands.
func (s *Session) Factory() *terms.Factory { return s.factory }

// History is the session's line history.
func (s *Session) History() *History { return s.history }

// Out is where command output goes.
func (s *Session) Out() io.Writer { return s.out }

// Confirm asks a yes/no question. Only an answer starting with y or Y is
// a yes.
func (s *Session) Confirm(question string) (bool, error) {
	answer, err := s.reader.ReadLine(question)
	if err != nil {
		return false, err
	}
	answer = strings.TrimSpace(answer)
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y"), nil
}

// Run reads and handles lines until end of input, a confirmed quit, or
// ctx is done. History is loaded first and saved on the way out.
func (s *Session) Run(ctx context.Context) error {
	logging.REPL("session %s started", s.id)
	if s.historyPath != "" {
		if err := s.history.Load(s.historyPath); err != nil {
			logging.REPLWarn("history not loaded: %v", err)
		}
	}

	runErr := s.loop(ctx)

	fmt.Fprintln(s.out, "Terminating REPL.")
	if s.historyPath != "" {
		if err := s.history.Save(s.historyPath); err != nil {
			logging.REPLWarn("history not saved: %v", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	logging.REPL("session %s ended", s.id)
	return runErr
}

func (s *Session) loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			logging.REPLDebug("session %s cancelled: %v", s.id, ctx.Err())
			return nil
		}

		line, err := s.reader.ReadLine(s.prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.history.Add(line)

		if !strings.HasPrefix(line, ":") {
			fmt.Fprintln(s.out, s.styles.Echo.Render("  -> "+line))
			continue
		}
		if s.dispatch(line) {
			return nil
		}
	}
}

// dispatch runs a colon command line and reports whether to stop.
func (s *Session) dispatch(line string) bool {
	fields := strings.Fields(line)
	name := strings.TrimPrefix(fields[0], ":")

	cmd, err := s.registry.Resolve(name)
	if err != nil {
		logging.REPLDebug("resolve %q: %v", name, err)
		s.printError(err)
		return false
	}

	logging.REPLDebug("running :%s with %d args", cmd.Name, len(fields)-1)
	if err := cmd.Action(s, fields[1:]); err != nil {
		if errors.Is(err, ErrQuit) {
			return true
		}
		s.printError(err)
	}
	return false
}

func (s *Session) printError(err error) {
	fmt.Fprintln(s.out, s.styles.Error.Render("ERROR: "+err.Error()))
}
