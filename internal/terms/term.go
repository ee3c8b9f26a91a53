// Package terms defines the relision term algebra: the closed set of term
// variants, the factory that canonicalizes the well-known terms, and the
// writer for the ELI notation.
//
// Terms are immutable once built and are shared by pointer, so a term graph
// can be read from any number of goroutines without locking. Every term
// except Root is typed by another term; Root is its own type.
package terms

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a term variant.
type Kind uint8

const (
	KindRoot Kind = iota
	KindSymbol
	KindString
	KindBoolean
	KindVariable
	KindStaticMap
	KindStaticProduct
	KindLambda
)

var kindNames = [...]string{
	KindRoot:          "root",
	KindSymbol:        "symbol",
	KindString:        "string",
	KindBoolean:       "boolean",
	KindVariable:      "variable",
	KindStaticMap:     "static_map",
	KindStaticProduct: "static_product",
	KindLambda:        "lambda",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Term is a node of the term algebra. The set of implementations is closed;
// use a type switch over the eight variant types to inspect a term.
type Term interface {
	Kind() Kind
	// Locus is where the term was declared. Root is always internal.
	Locus() Locus
	// String is a debugging form. Use EliWriter for the canonical notation.
	String() string

	isTerm()
}

// Root is the unique term that is its own type.
type Root struct{}

// SymbolLiteral is a bare-name literal.
type SymbolLiteral struct {
	locus Locus
	typ   Term
	value string
}

// StringLiteral is a quoted literal.
type StringLiteral struct {
	locus Locus
	typ   Term
	value string
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	locus Locus
	typ   Term
	value bool
}

// Variable is a named, typed, guarded placeholder.
type Variable struct {
	locus Locus
	typ   Term
	name  string
	guard Term
}

// StaticMap is a map from a domain to a codomain.
type StaticMap struct {
	locus    Locus
	domain   Term
	codomain Term
}

// StaticProduct pairs two terms.
type StaticProduct struct {
	locus Locus
	lhs   Term
	rhs   Term
}

// Lambda is an abstraction. Its type is computed by the factory, not stored.
type Lambda struct {
	locus Locus
	param Term
	body  Term
	guard Term
}

func (*Root) isTerm()           {}
func (*SymbolLiteral) isTerm()  {}
func (*StringLiteral) isTerm()  {}
func (*BooleanLiteral) isTerm() {}
func (*Variable) isTerm()       {}
func (*StaticMap) isTerm()      {}
func (*StaticProduct) isTerm()  {}
func (*Lambda) isTerm()         {}

func (*Root) Kind() Kind           { return KindRoot }
func (*SymbolLiteral) Kind() Kind  { return KindSymbol }
func (*StringLiteral) Kind() Kind  { return KindString }
func (*BooleanLiteral) Kind() Kind { return KindBoolean }
func (*Variable) Kind() Kind       { return KindVariable }
func (*StaticMap) Kind() Kind      { return KindStaticMap }
func (*StaticProduct) Kind() Kind  { return KindStaticProduct }
func (*Lambda) Kind() Kind         { return KindLambda }

func (*Root) Locus() Locus             { return Internal() }
func (t *SymbolLiteral) Locus() Locus  { return t.locus }
func (t *StringLiteral) Locus() Locus  { return t.locus }
func (t *BooleanLiteral) Locus() Locus { return t.locus }
func (t *Variable) Locus() Locus       { return t.locus }
func (t *StaticMap) Locus() Locus      { return t.locus }
func (t *StaticProduct) Locus() Locus  { return t.locus }
func (t *Lambda) Locus() Locus         { return t.locus }

func (t *SymbolLiteral) Type() Term  { return t.typ }
func (t *SymbolLiteral) Value() string { return t.value }

func (t *StringLiteral) Type() Term  { return t.typ }
func (t *StringLiteral) Value() string { return t.value }

func (t *BooleanLiteral) Type() Term  { return t.typ }
func (t *BooleanLiteral) Value() bool { return t.value }

func (t *Variable) Type() Term   { return t.typ }
func (t *Variable) Name() string { return t.name }
func (t *Variable) Guard() Term  { return t.guard }

func (t *StaticMap) Domain() Term   { return t.domain }
func (t *StaticMap) Codomain() Term { return t.codomain }

func (t *StaticProduct) LHS() Term { return t.lhs }
func (t *StaticProduct) RHS() Term { return t.rhs }

func (t *Lambda) Param() Term { return t.param }
func (t *Lambda) Body() Term  { return t.body }
func (t *Lambda) Guard() Term { return t.guard }

// Role names the position of a sub-term within its parent.
type Role string

const (
	RoleType     Role = "type"
	RoleGuard    Role = "guard"
	RoleDomain   Role = "domain"
	RoleCodomain Role = "codomain"
	RoleLHS      Role = "lhs"
	RoleRHS      Role = "rhs"
	RoleParam    Role = "param"
	RoleBody     Role = "body"
)

// Subterm is an edge of the term graph.
type Subterm struct {
	Role Role
	Term Term
}

// Subterms returns the direct sub-terms of t in field order. Root and
// nothing else has none.
func Subterms(t Term) []Subterm {
	switch v := t.(type) {
	case *SymbolLiteral:
		return []Subterm{{RoleType, v.typ}}
	case *StringLiteral:
		return []Subterm{{RoleType, v.typ}}
	case *BooleanLiteral:
		return []Subterm{{RoleType, v.typ}}
	case *Variable:
		return []Subterm{{RoleType, v.typ}, {RoleGuard, v.guard}}
	case *StaticMap:
		return []Subterm{{RoleDomain, v.domain}, {RoleCodomain, v.codomain}}
	case *StaticProduct:
		return []Subterm{{RoleLHS, v.lhs}, {RoleRHS, v.rhs}}
	case *Lambda:
		return []Subterm{{RoleParam, v.param}, {RoleBody, v.body}, {RoleGuard, v.guard}}
	default:
		return nil
	}
}

// compareLocal orders two terms of the same kind by their own fields,
// ignoring sub-terms.
func compareLocal(a, b Term) int {
	if c := CompareLoci(a.Locus(), b.Locus()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case *SymbolLiteral:
		return cmp.Compare(x.value, b.(*SymbolLiteral).value)
	case *StringLiteral:
		return cmp.Compare(x.value, b.(*StringLiteral).value)
	case *BooleanLiteral:
		y := b.(*BooleanLiteral)
		switch {
		case x.value == y.value:
			return 0
		case !x.value:
			return -1
		default:
			return 1
		}
	case *Variable:
		return cmp.Compare(x.name, b.(*Variable).name)
	default:
		return 0
	}
}

// Compare orders terms structurally: by kind, then locus, then the
// variant's own payload, then sub-terms in field order. The walk uses an
// explicit stack so deep terms do not exhaust the goroutine stack.
func Compare(a, b Term) int {
	type pair struct{ a, b Term }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == p.b {
			continue
		}
		if c := cmp.Compare(p.a.Kind(), p.b.Kind()); c != 0 {
			return c
		}
		if c := compareLocal(p.a, p.b); c != 0 {
			return c
		}
		as, bs := Subterms(p.a), Subterms(p.b)
		for i := len(as) - 1; i >= 0; i-- {
			stack = append(stack, pair{as[i].Term, bs[i].Term})
		}
	}
	return 0
}

// Equal reports whether a and b are structurally identical, including loci
// and types.
func Equal(a, b Term) bool {
	return Compare(a, b) == 0
}

// debugString renders t in the debugging notation. Pieces are pushed in
// reverse so the stack pops them left to right.
func debugString(t Term) string {
	var sb strings.Builder
	stack := []any{t}
	push := func(items ...any) {
		for i := len(items) - 1; i >= 0; i-- {
			stack = append(stack, items[i])
		}
	}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := item.(type) {
		case string:
			sb.WriteString(v)
		case *Root:
			sb.WriteString("^ROOT")
		case *SymbolLiteral:
			push(v.value+": ", v.typ)
		case *StringLiteral:
			push(strconv.Quote(v.value)+": ", v.typ)
		case *BooleanLiteral:
			push(strconv.FormatBool(v.value)+": ", v.typ)
		case *Variable:
			push("$"+v.name+"{", v.guard, "}: ", v.typ)
		case *StaticMap:
			push(v.domain, " => ", v.codomain)
		case *StaticProduct:
			push(v.lhs, " * ", v.rhs)
		case *Lambda:
			push(v.param, " ->{", v.guard, "} ", v.body)
		}
	}
	return sb.String()
}

func (t *Root) String() string           { return debugString(t) }
func (t *SymbolLiteral) String() string  { return debugString(t) }
func (t *StringLiteral) String() string  { return debugString(t) }
func (t *BooleanLiteral) String() string { return debugString(t) }
func (t *Variable) String() string       { return debugString(t) }
func (t *StaticMap) String() string      { return debugString(t) }
func (t *StaticProduct) String() string  { return debugString(t) }
func (t *Lambda) String() string         { return debugString(t) }
