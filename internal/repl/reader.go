package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// InputReader supplies one line at a time. io.EOF ends the session.
type InputReader interface {
	ReadLine(prompt string) (string, error)
}

// NewInputReader picks an interactive line editor when in is a terminal
// and a plain buffered reader otherwise.
func NewInputReader(in *os.File, out io.Writer, history *History) InputReader {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return NewInteractiveReader(in, out, history)
	}
	return NewStdinReader(in, out)
}

// StdinReader reads newline-terminated lines from a stream.
type StdinReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdinReader reads from in and writes prompts to out.
func NewStdinReader(in io.Reader, out io.Writer) *StdinReader {
	return &StdinReader{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next line without its terminator.
// A final line without a newline is returned before io.EOF.
func (r *StdinReader) ReadLine(prompt string) (string, error) {
	if prompt != "" && r.out != nil {
		if _, err := io.WriteString(r.out, prompt); err != nil {
			return "", err
		}
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// InteractiveReader edits each line with a bubbletea text input. Up and
// down walk the shared history.
type InteractiveReader struct {
	in      io.Reader
	out     io.Writer
	history *History
}

// NewInteractiveReader returns a reader bound to a terminal.
func NewInteractiveReader(in io.Reader, out io.Writer, history *History) *InteractiveReader {
	return &InteractiveReader{in: in, out: out, history: history}
}

// ReadLine runs a one-line editor. Ctrl+C and Ctrl+D on an empty line
// report io.EOF.
func (r *InteractiveReader) ReadLine(prompt string) (string, error) {
	var past []string
	if r.history != nil {
		past = r.history.Lines()
	}
	p := tea.NewProgram(newLineModel(prompt, past), tea.WithInput(r.in), tea.WithOutput(r.out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("line editor failed: %w", err)
	}
	m, ok := final.(lineModel)
	if !ok || m.eof {
		return "", io.EOF
	}
	// The renderer clears the editing line on exit; leave the entered text behind.
	fmt.Fprintf(r.out, "%s%s\n", prompt, m.value)
	return m.value, nil
}

// lineModel is the bubbletea model behind InteractiveReader.
type lineModel struct {
	input   textinput.Model
	history []string
	index   int    // position in history; len(history) is the draft line
	draft   string // text typed before walking the history
	value   string
	done    bool
	eof     bool
}

func newLineModel(prompt string, history []string) lineModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()
	return lineModel{input: ti, history: history, index: len(history)}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlC:
			m.eof = true
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.eof = true
				m.done = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.index > 0 {
				if m.index == len(m.history) {
					m.draft = m.input.Value()
				}
				m.index--
				m.input.SetValue(m.history[m.index])
				m.input.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			if m.index < len(m.history) {
				m.index++
				if m.index == len(m.history) {
					m.input.SetValue(m.draft)
				} else {
					m.input.SetValue(m.history[m.index])
				}
				m.input.CursorEnd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done {
		return ""
	}
	return m.input.View()
}
