package terms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"relision/internal/util"
)

// ErrWrite is returned (wrapped around the sink's error) when the output
// rejects a write.
var ErrWrite = errors.New("eli: write failed")

// EliWriter renders terms in the ELI notation. Type suffixes and guards that
// a reader can infer from the factory's defaults are left out.
type EliWriter struct {
	fact *Factory
}

// NewEliWriter returns a writer that resolves default types against f.
func NewEliWriter(f *Factory) *EliWriter {
	return &EliWriter{fact: f}
}

// Write renders t to w. The only possible error is a failure of w.
func (ew *EliWriter) Write(w io.Writer, t Term) error {
	bw := bufio.NewWriter(w)
	ew.emit(bw, t)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Render returns the ELI text of t.
func (ew *EliWriter) Render(t Term) string {
	var sb strings.Builder
	ew.emit(&sb, t)
	return sb.String()
}

// stringWriter is satisfied by bufio.Writer and strings.Builder. Errors on
// a bufio.Writer are sticky and surface at Flush.
type stringWriter interface {
	WriteString(s string) (int, error)
}

// emit walks t with an explicit stack. Each stack item is literal text or a
// term still to be rendered.
func (ew *EliWriter) emit(out stringWriter, t Term) {
	stack := []any{t}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := item.(type) {
		case string:
			_, _ = out.WriteString(v)
		case Term:
			pieces := ew.pieces(v)
			for i := len(pieces) - 1; i >= 0; i-- {
				stack = append(stack, pieces[i])
			}
		}
	}
}

// pieces expands one term into text and sub-terms, in output order.
func (ew *EliWriter) pieces(t Term) []any {
	f := ew.fact
	switch v := t.(type) {
	case *Root:
		return []any{RootName}

	case *SymbolLiteral:
		// A well-known name is assumed to denote the root term of that name;
		// any other symbol is assumed to be a SYMBOL.
		var showType bool
		if f.IsNamedRootTerm(v.value) {
			showType = v.typ.Kind() != KindRoot
		} else {
			showType = !ew.is(v.typ, f.symbol)
		}
		out := []any{bare(v.value)}
		if showType {
			out = append(out, ": ", v.typ)
		}
		return out

	case *StringLiteral:
		escaped, _ := util.Escape(v.value, '"')
		out := []any{`"` + escaped + `"`}
		if !ew.is(v.typ, f.str) {
			out = append(out, ": ", v.typ)
		}
		return out

	case *BooleanLiteral:
		out := []any{strconv.FormatBool(v.value)}
		if !ew.is(v.typ, f.boolean) {
			out = append(out, ": ", v.typ)
		}
		return out

	case *Variable:
		out := []any{"$" + bare(v.name)}
		out = append(out, ew.guardBlock(v.guard)...)
		if !ew.is(v.typ, f.any) {
			out = append(out, ": ", v.typ)
		}
		return out

	case *StaticMap:
		return []any{v.domain, " => ", v.codomain}

	case *StaticProduct:
		return []any{v.lhs, " * ", v.rhs}

	case *Lambda:
		out := []any{v.param, " ->"}
		out = append(out, ew.guardBlock(v.guard)...)
		return append(out, " ", v.body)

	default:
		panic(fmt.Sprintf("terms: EliWriter: unexpected term %T", t))
	}
}

// guardBlock is empty for the trivial guard (canonical true of type
// BOOLEAN) and "{guard}" otherwise.
func (ew *EliWriter) guardBlock(guard Term) []any {
	if ew.is(guard, ew.fact.isTrue) {
		return nil
	}
	return []any{"{", guard, "}"}
}

// is compares against a canonical instance, by identity first.
func (ew *EliWriter) is(t, canonical Term) bool {
	return t == canonical || Equal(t, canonical)
}

// bare escapes a name with the backtick border and quotes it only if
// escaping changed it.
func bare(name string) string {
	escaped, changed := util.Escape(name, '`')
	if changed {
		return "`" + escaped + "`"
	}
	return escaped
}
