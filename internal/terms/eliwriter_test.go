package terms

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEliWriter_Render(t *testing.T) {
	f := NewFactory()
	in := Internal()
	a := f.NewSymbol(in, "A")
	b := f.NewSymbol(in, "B")
	x := f.NewVariable(in, f.Any(), "x", f.True())

	tests := []struct {
		name string
		term Term
		want string
	}{
		{"root", f.Root(), "^ROOT"},
		{"well-known symbol", f.Symbol(), "SYMBOL"},
		{"well-known boolean type", f.Boolean(), "BOOLEAN"},
		{"plain symbol", a, "A"},
		{"typed symbol", f.NewTypedSymbol(in, "A", f.Integer()), "A: INTEGER"},
		{"well-known name with other type", f.NewTypedSymbol(in, "BOOLEAN", f.Symbol()), "BOOLEAN: SYMBOL"},
		{"well-known name as default symbol", f.NewSymbol(in, "ANY"), "ANY: SYMBOL"},
		{"symbol with space", f.NewSymbol(in, "hello world"), "hello world"},
		{"symbol with backtick", f.NewSymbol(in, "a`b"), "`a\\`b`"},
		{"symbol with newline", f.NewSymbol(in, "a\nb"), "`a\\nb`"},
		{"symbol with unicode", f.NewSymbol(in, "λ"), "`\\u{3BB}`"},
		{"symbol typed by map", f.NewTypedSymbol(in, "f", f.NewStaticMap(in, a, b)), "f: A => B"},
		{"string", f.NewString(in, "hi"), `"hi"`},
		{"empty string", f.NewString(in, ""), `""`},
		{"string escaped", f.NewString(in, "a\"b\\c"), `"a\"b\\c"`},
		{"string latin1", f.NewString(in, "é"), `"\xE9"`},
		{"string backtick untouched", f.NewString(in, "a`b"), "\"a`b\""},
		{"typed string", f.NewTypedString(in, "hi", f.Symbol()), `"hi": SYMBOL`},
		{"true", f.NewBoolean(true), "true"},
		{"false", f.NewBoolean(false), "false"},
		{"typed boolean with default type", f.NewTypedBoolean(in, true, f.Boolean()), "true"},
		{"typed boolean", f.NewTypedBoolean(in, false, f.Integer()), "false: INTEGER"},
		{"variable", x, "$x"},
		{"variable with guard", f.NewVariable(in, f.Any(), "x", f.False()), "$x{false}"},
		{"variable with type", f.NewVariable(in, f.Integer(), "x", f.True()), "$x: INTEGER"},
		{"variable with guard and type", f.NewVariable(in, f.Integer(), "x", a), "$x{A}: INTEGER"},
		{"variable guarded by non-canonical true", f.NewVariable(in, f.Any(), "x", f.NewTypedBoolean(in, true, f.Integer())), "$x{true: INTEGER}"},
		{"variable escaped name", f.NewVariable(in, f.Any(), "my\tvar", f.True()), "$`my\\tvar`"},
		{"map", f.NewStaticMap(in, a, b), "A => B"},
		{"product", f.NewStaticProduct(in, a, b), "A * B"},
		{"nested", f.NewStaticMap(in, f.NewStaticProduct(in, a, b), f.NewString(in, "s")), `A * B => "s"`},
		{"lambda", f.NewLambda(in, x, a, f.True()), "$x -> A"},
		{"lambda with guard", f.NewLambda(in, x, a, f.False()), "$x ->{false} A"},
		{"lambda guard renders deeply", f.NewLambda(in, x, a, f.NewVariable(in, f.Boolean(), "g", f.True())), "$x ->{$g: BOOLEAN} A"},
		{"map of roots", f.NewStaticMap(in, f.Root(), f.Root()), "^ROOT => ^ROOT"},
	}

	w := NewEliWriter(f)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, w.Render(tt.term)); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEliWriter_Write(t *testing.T) {
	f := NewFactory()
	w := NewEliWriter(f)
	term := f.NewStaticMap(Internal(), f.NewSymbol(Internal(), "A"), f.NewSymbol(Internal(), "B"))

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, term))
	assert.Equal(t, "A => B", buf.String())
}

func TestEliWriter_WriteTypeOfLambda(t *testing.T) {
	f := NewFactory()
	w := NewEliWriter(f)
	x := f.NewVariable(Internal(), f.Integer(), "x", f.True())
	lambda := f.NewLambda(Internal(), x, f.NewString(Internal(), "s"), f.True())

	assert.Equal(t, "$x: INTEGER -> \"s\"", w.Render(lambda))
	assert.Equal(t, "INTEGER * STRING", w.Render(f.TypeOf(lambda)))
}

type failingWriter struct{ err error }

func (fw failingWriter) Write([]byte) (int, error) { return 0, fw.err }

func TestEliWriter_SinkFailure(t *testing.T) {
	f := NewFactory()
	w := NewEliWriter(f)
	sinkErr := errors.New("disk full")

	err := w.Write(failingWriter{err: sinkErr}, f.NewString(Internal(), "payload"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, sinkErr)
}

func TestEliWriter_DoesNotMutate(t *testing.T) {
	f := NewFactory()
	w := NewEliWriter(f)
	term := f.NewVariable(Console(3, 4), f.Integer(), "x", f.False())
	before := term.String()

	_ = w.Render(term)
	_ = w.Write(failingWriter{err: errors.New("boom")}, term)

	assert.Equal(t, before, term.String())
	assert.Equal(t, Console(3, 4), term.Locus())
}
