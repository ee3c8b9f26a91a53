package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"relision/internal/termfacts"
	"relision/internal/terms"
)

// Sentinel errors for command resolution. The concrete error types match
// them with errors.Is.
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrAmbiguousCommand = errors.New("ambiguous command")
	// ErrQuit is returned by an action to end the session.
	ErrQuit = errors.New("quit")
)

// Action runs a colon command. args are the words after the command name.
type Action func(s *Session, args []string) error

// Command is a colon command, invoked as :name or any unique prefix of it.
type Command struct {
	Name   string
	Help   string
	Action Action
}

// UnknownCommandError reports input that matches no command.
type UnknownCommandError struct {
	Input string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("the command :%s was not recognized", e.Input)
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

// AmbiguousCommandError reports input that is a prefix of several commands.
type AmbiguousCommandError struct {
	Input      string
	Candidates []string
}

func (e *AmbiguousCommandError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = ":" + c
	}
	alts := names[0]
	if len(names) > 1 {
		alts = strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
	return fmt.Sprintf("the command :%s is ambiguous; it might be %s", e.Input, alts)
}

func (e *AmbiguousCommandError) Is(target error) bool { return target == ErrAmbiguousCommand }

// Registry holds commands in registration order.
type Registry struct {
	commands []Command
}

// NewRegistry returns a registry holding cmds. It panics on an invalid or
// duplicate command, which is a programming error.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{}
	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a command.
func (r *Registry) Register(c Command) error {
	if c.Name == "" || strings.ContainsAny(c.Name, " \t") {
		return fmt.Errorf("invalid command name %q", c.Name)
	}
	if c.Action == nil {
		return fmt.Errorf("command %q has no action", c.Name)
	}
	for _, have := range r.commands {
		if have.Name == c.Name {
			return fmt.Errorf("command %q already registered", c.Name)
		}
	}
	r.commands = append(r.commands, c)
	return nil
}

// Commands returns the registered commands in order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Resolve finds the command named by prefix. An exact name always wins;
// otherwise exactly one command may start with prefix.
func (r *Registry) Resolve(prefix string) (Command, error) {
	var matches []Command
	for _, c := range r.commands {
		if c.Name == prefix {
			return c, nil
		}
		if strings.HasPrefix(c.Name, prefix) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return Command{}, &UnknownCommandError{Input: prefix}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.Name
		}
		return Command{}, &AmbiguousCommandError{Input: prefix, Candidates: names}
	}
}

// DefaultCommands returns the built-in commands.
func DefaultCommands() []Command {
	return []Command{
		{Name: "clear", Help: "Clear the screen.", Action: clearScreen},
		{Name: "history", Help: "List the line history.", Action: listHistory},
		{Name: "quit", Help: "Leave the REPL after confirmation.", Action: quit},
		{Name: "terms", Help: "Show well-known terms in ELI notation.", Action: showTerms},
		{Name: "facts", Help: "Show the derived type chain of each well-known term.", Action: showFacts},
	}
}

// clearSequence homes the cursor and erases the screen.
const clearSequence = "\x1b[H\x1b[2J"

func clearScreen(s *Session, _ []string) error {
	_, err := fmt.Fprint(s.out, clearSequence)
	return err
}

func listHistory(s *Session, _ []string) error {
	for i, line := range s.history.Lines() {
		if _, err := fmt.Fprintf(s.out, "%d: %s\n", i, line); err != nil {
			return err
		}
	}
	return nil
}

func quit(s *Session, _ []string) error {
	ok, err := s.Confirm("Really quit? (y/n) ")
	if err != nil || ok {
		return ErrQuit
	}
	return nil
}

// selectNamed resolves args to well-known terms, or all of them when args
// is empty.
func selectNamed(f *terms.Factory, args []string) ([]string, error) {
	if len(args) == 0 {
		return f.NamedRootTermNames(), nil
	}
	for _, name := range args {
		if !f.IsNamedRootTerm(name) {
			return nil, fmt.Errorf("no well-known term named %s", name)
		}
	}
	return args, nil
}

func showTerms(s *Session, args []string) error {
	return WriteTerms(s.out, s.factory, args)
}

func showFacts(s *Session, args []string) error {
	return WriteFacts(s.out, s.factory, args)
}

// WriteTerms prints "NAME = <ELI text>" for each named well-known term, or
// for all of them when names is empty.
func WriteTerms(w io.Writer, f *terms.Factory, names []string) error {
	names, err := selectNamed(f, names)
	if err != nil {
		return err
	}
	writer := terms.NewEliWriter(f)
	for _, name := range names {
		t, _ := f.NamedRootTerm(name)
		if _, err := fmt.Fprintf(w, "%s = ", name); err != nil {
			return err
		}
		if err := writer.Write(w, t); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteFacts exports the named well-known terms (all when names is empty),
// evaluates the fact program and prints each term's type chain.
func WriteFacts(w io.Writer, f *terms.Factory, names []string) error {
	names, err := selectNamed(f, names)
	if err != nil {
		return err
	}
	roots := make([]terms.Term, len(names))
	for i, name := range names {
		roots[i], _ = f.NamedRootTerm(name)
	}

	g := termfacts.Export(f, roots...)
	res, err := termfacts.Analyze(g)
	if err != nil {
		return fmt.Errorf("fact analysis failed: %w", err)
	}
	for i, name := range names {
		id, _ := g.ID(roots[i])
		chain := res.TypeChain(id)
		labels := make([]string, len(chain))
		for j, c := range chain {
			labels[j] = res.Label(c)
		}
		line := fmt.Sprintf("%s %s: %s", id, name, strings.Join(labels, " -> "))
		if !res.Anchored(id) {
			line += " (unanchored)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
