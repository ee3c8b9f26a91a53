// Package termfacts exports a term graph as Datalog facts and evaluates a
// small Mangle program over them.
//
// Every reachable term gets an id of the form /tN, assigned in discovery
// order. Identity is pointer identity, so a shared sub-term appears once.
// The extensional predicates are:
//
//	term(Id, Kind)            Kind is /root, /symbol, /lambda, ...
//	has_type(Id, TypeId)
//	child(Parent, Child, Role) Role is /type, /guard, /lhs, ...
//	label(Id, Text)           ELI rendering of the term
//	named(Id, Name)           well-known terms of the factory
package termfacts

import (
	"fmt"
	"strings"

	"github.com/google/mangle/ast"

	"relision/internal/logging"
	"relision/internal/terms"
)

// Predicate names of the exported facts.
const (
	PredTerm    = "term"
	PredHasType = "has_type"
	PredChild   = "child"
	PredLabel   = "label"
	PredNamed   = "named"
)

// Graph is the fact form of a set of terms.
type Graph struct {
	ids   map[terms.Term]string
	nodes []terms.Term
	facts []ast.Atom
}

// Export walks roots and everything reachable from them, including the
// types of each node. With no roots the factory's well-known terms are
// exported.
func Export(f *terms.Factory, roots ...terms.Term) *Graph {
	if len(roots) == 0 {
		for _, name := range f.NamedRootTermNames() {
			t, _ := f.NamedRootTerm(name)
			roots = append(roots, t)
		}
	}

	g := &Graph{ids: make(map[terms.Term]string)}
	writer := terms.NewEliWriter(f)

	stack := make([]terms.Term, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	type edge struct {
		parent, child terms.Term
		role          string
	}
	var edges []edge
	types := make(map[terms.Term]terms.Term)

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := g.ids[t]; seen {
			continue
		}
		g.ids[t] = fmt.Sprintf("/t%d", len(g.nodes))
		g.nodes = append(g.nodes, t)

		typ := f.TypeOf(t)
		types[t] = typ

		subs := terms.Subterms(t)
		for _, s := range subs {
			edges = append(edges, edge{t, s.Term, string(s.Role)})
		}
		for i := len(subs) - 1; i >= 0; i-- {
			stack = append(stack, subs[i].Term)
		}
		stack = append(stack, typ)
	}

	for _, t := range g.nodes {
		id := g.id(t)
		g.add(PredTerm, id, name(t.Kind().String()))
		g.add(PredHasType, id, g.id(types[t]))
		g.add(PredLabel, id, ast.String(writer.Render(t)))
	}
	for _, e := range edges {
		g.add(PredChild, g.id(e.parent), g.id(e.child), name(e.role))
	}
	for _, n := range f.NamedRootTermNames() {
		t, _ := f.NamedRootTerm(n)
		if _, ok := g.ids[t]; ok {
			g.add(PredNamed, g.id(t), ast.String(n))
		}
	}

	logging.FactsDebug("exported %d terms as %d facts", len(g.nodes), len(g.facts))
	return g
}

func (g *Graph) add(pred string, args ...ast.BaseTerm) {
	g.facts = append(g.facts, ast.NewAtom(pred, args...))
}

func (g *Graph) id(t terms.Term) ast.Constant {
	return name(g.ids[t])
}

// name builds a Mangle name constant. Ids, kinds and roles are generated
// here and always well formed.
func name(s string) ast.Constant {
	c, err := ast.Name("/" + strings.TrimPrefix(s, "/"))
	if err != nil {
		panic(fmt.Sprintf("termfacts: bad name %q: %v", s, err))
	}
	return c
}

// ID returns the id assigned to t.
func (g *Graph) ID(t terms.Term) (string, bool) {
	id, ok := g.ids[t]
	return id, ok
}

// Len is the number of exported terms.
func (g *Graph) Len() int { return len(g.nodes) }

// Facts returns the exported atoms in emission order.
func (g *Graph) Facts() []ast.Atom {
	out := make([]ast.Atom, len(g.facts))
	copy(out, g.facts)
	return out
}

// String renders the facts in Datalog source syntax, one per line.
func (g *Graph) String() string {
	var sb strings.Builder
	for _, a := range g.facts {
		sb.WriteString(a.String())
		sb.WriteString(".\n")
	}
	return sb.String()
}
