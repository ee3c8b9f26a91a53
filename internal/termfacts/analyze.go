package termfacts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin" // Register builtins
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"relision/internal/logging"
)

// Program declares the exported predicates and the derived views.
const Program = `
# Extensional facts produced by Export.
Decl term(Id, Kind).
Decl has_type(Id, TypeId).
Decl child(Parent, Child, Role).
Decl label(Id, Text).
Decl named(Id, Name).

# Every type reachable by following has_type.
Decl type_chain(Id, TypeId).
type_chain(Id, T) :- has_type(Id, T).
type_chain(Id, T) :- has_type(Id, U), type_chain(U, T).

Decl well_known(Id).
well_known(Id) :- named(Id, _).

# Terms whose type chain ends at the root.
Decl anchored(Id).
anchored(Id) :- term(Id, /root).
anchored(Id) :- type_chain(Id, R), term(R, /root).
`

// Result holds the evaluated fact store.
type Result struct {
	store factstore.FactStore
	decls map[string]ast.PredicateSym
	order map[string]int
}

// Analyze loads g into an in-memory store and evaluates Program to a fixed
// point.
func Analyze(g *Graph) (*Result, error) {
	unit, err := parse.Unit(strings.NewReader(Program))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analysis error: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	for _, atom := range g.facts {
		store.Add(atom)
	}

	stats, err := engine.EvalProgramWithStats(programInfo, store)
	if err != nil {
		return nil, fmt.Errorf("evaluation error: %w", err)
	}
	logging.FactsDebug("evaluation complete, %d facts in store. Stats: %+v", store.EstimateFactCount(), stats)

	r := &Result{
		store: store,
		decls: make(map[string]ast.PredicateSym, len(programInfo.Decls)),
		order: make(map[string]int, len(g.nodes)),
	}
	for sym := range programInfo.Decls {
		r.decls[sym.Symbol] = sym
	}
	for i, t := range g.nodes {
		r.order[g.ids[t]] = i
	}
	logging.Facts("analyzed %d terms", len(g.nodes))
	return r, nil
}

// Query returns the rows of a declared predicate, each argument converted
// to its string form: names keep their leading slash, strings are bare.
func (r *Result) Query(predicate string) ([][]string, error) {
	sym, ok := r.decls[predicate]
	if !ok {
		return nil, fmt.Errorf("predicate %s is not declared", predicate)
	}

	var rows [][]string
	err := r.store.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
		row := make([]string, len(atom.Args))
		for i, arg := range atom.Args {
			row[i] = constantString(arg)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return r.less(rows[i], rows[j])
	})
	return rows, nil
}

// TypeChain returns every type reachable from id, ordered by export id.
func (r *Result) TypeChain(id string) []string {
	rows, err := r.Query("type_chain")
	if err != nil {
		return nil
	}
	var out []string
	for _, row := range rows {
		if row[0] == id {
			out = append(out, row[1])
		}
	}
	return out
}

// Anchored reports whether the type chain of id reaches the root.
func (r *Result) Anchored(id string) bool {
	return r.has("anchored", id)
}

// WellKnown reports whether id is one of the factory's named terms.
func (r *Result) WellKnown(id string) bool {
	return r.has("well_known", id)
}

// Label returns the ELI text recorded for id.
func (r *Result) Label(id string) string {
	rows, err := r.Query("label")
	if err != nil {
		return ""
	}
	for _, row := range rows {
		if row[0] == id {
			return row[1]
		}
	}
	return ""
}

func (r *Result) has(predicate, id string) bool {
	rows, err := r.Query(predicate)
	if err != nil {
		return false
	}
	for _, row := range rows {
		if row[0] == id {
			return true
		}
	}
	return false
}

// less orders rows by export order of their ids, then lexically.
func (r *Result) less(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		ia, oka := r.order[a[i]]
		ib, okb := r.order[b[i]]
		if oka && okb {
			return ia < ib
		}
		return a[i] < b[i]
	}
	return len(a) < len(b)
}

func constantString(term ast.BaseTerm) string {
	c, ok := term.(ast.Constant)
	if !ok {
		return fmt.Sprintf("%v", term)
	}
	switch c.Type {
	case ast.NameType, ast.StringType:
		return c.Symbol
	default:
		return c.String()
	}
}
