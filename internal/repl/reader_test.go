package repl

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdinReader(t *testing.T) {
	var out bytes.Buffer
	r := NewStdinReader(strings.NewReader("first\r\nsecond\nlast"), &out)

	line, err := r.ReadLine("e> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = r.ReadLine("e> ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	line, err = r.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = r.ReadLine("e> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "e> e> e> ", out.String())
}

func TestNewInputReader_PipeIsPlain(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	r := NewInputReader(pr, io.Discard, NewHistory(0))
	_, ok := r.(*StdinReader)
	assert.True(t, ok)
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m lineModel, s string) lineModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(lineModel)
}

func press(m lineModel, k tea.KeyType) (lineModel, tea.Cmd) {
	next, cmd := m.Update(key(k))
	return next.(lineModel), cmd
}

func TestLineModel_EnterSubmits(t *testing.T) {
	m := newLineModel("e> ", nil)
	m = typeText(m, "abc")

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.False(t, m.eof)
	assert.Equal(t, "abc", m.value)
	assert.Equal(t, "", m.View())
}

func TestLineModel_HistoryNavigation(t *testing.T) {
	m := newLineModel("e> ", []string{"one", "two"})
	m = typeText(m, "dra")

	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "two", m.input.Value())
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "one", m.input.Value())
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, "one", m.input.Value())

	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, "two", m.input.Value())
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, "dra", m.input.Value())
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, "dra", m.input.Value())
}

func TestLineModel_EndOfInput(t *testing.T) {
	m := newLineModel("e> ", nil)
	m, cmd := press(m, tea.KeyCtrlD)
	require.NotNil(t, cmd)
	assert.True(t, m.eof)

	m = newLineModel("e> ", nil)
	m, _ = press(m, tea.KeyCtrlC)
	assert.True(t, m.eof)

	m = newLineModel("e> ", nil)
	m = typeText(m, "x")
	m, _ = press(m, tea.KeyCtrlD)
	assert.False(t, m.eof)
}

func TestLineModel_ViewShowsPrompt(t *testing.T) {
	m := newLineModel("e> ", nil)
	assert.Contains(t, m.View(), "e> ")
}
