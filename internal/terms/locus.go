package terms

import (
	"cmp"
	"fmt"
)

// LocusKind tells where a term was declared.
type LocusKind uint8

const (
	// LocusInternal marks terms created by the system itself, such as the
	// well-known root terms.
	LocusInternal LocusKind = iota
	// LocusConsole marks terms entered in an interactive session.
	LocusConsole
	// LocusFile marks terms read from a named source.
	LocusFile
)

func (k LocusKind) String() string {
	switch k {
	case LocusInternal:
		return "internal"
	case LocusConsole:
		return "console"
	case LocusFile:
		return "file"
	default:
		return fmt.Sprintf("LocusKind(%d)", uint8(k))
	}
}

// Locus is the source position attached to a term. It is a plain value and
// is comparable with ==; Root always has the internal locus.
type Locus struct {
	kind   LocusKind
	name   string
	line   uint32
	column uint32
}

// Internal returns the locus for terms with no source position.
func Internal() Locus {
	return Locus{}
}

// Console returns a locus for a position in an interactive session.
func Console(line, column uint32) Locus {
	return Locus{kind: LocusConsole, line: line, column: column}
}

// File returns a locus for a position in a named source.
func File(name string, line, column uint32) Locus {
	return Locus{kind: LocusFile, name: name, line: line, column: column}
}

func (l Locus) Kind() LocusKind { return l.kind }
func (l Locus) Name() string    { return l.name }
func (l Locus) Line() uint32    { return l.line }
func (l Locus) Column() uint32  { return l.column }

// IsInternal reports whether l carries no source position.
func (l Locus) IsInternal() bool { return l.kind == LocusInternal }

// Equal reports whether two loci are the same position.
func (l Locus) Equal(other Locus) bool { return l == other }

// String renders internal as "", console as "line:column" and file as
// "name:line:column".
func (l Locus) String() string {
	switch l.kind {
	case LocusConsole:
		return fmt.Sprintf("%d:%d", l.line, l.column)
	case LocusFile:
		return fmt.Sprintf("%s:%d:%d", l.name, l.line, l.column)
	default:
		return ""
	}
}

// CompareLoci orders loci by kind, then name, line and column.
func CompareLoci(a, b Locus) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.name, b.name); c != 0 {
		return c
	}
	if c := cmp.Compare(a.line, b.line); c != 0 {
		return c
	}
	return cmp.Compare(a.column, b.column)
}
