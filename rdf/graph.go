package rdf

import "sort"

// Graph is a mutable set of statements with namespace bindings.
//
// Duplicate statements collapse. Iteration via Statements and ForSubject is
// in insertion order, so two graphs built by the same sequence of Add calls
// behave identically. A Graph is not safe for concurrent mutation; the
// pipeline gives each run its own graphs.
type Graph struct {
	stmts     []Statement
	index     map[string]struct{}
	bySubject map[IRI][]int
	prefixes  map[string]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index:     make(map[string]struct{}),
		bySubject: make(map[IRI][]int),
		prefixes:  make(map[string]string),
	}
}

// Add inserts a statement, reporting whether it was new.
func (g *Graph) Add(st Statement) bool {
	k := st.key()
	if _, ok := g.index[k]; ok {
		return false
	}
	g.index[k] = struct{}{}
	g.bySubject[st.Subject] = append(g.bySubject[st.Subject], len(g.stmts))
	g.stmts = append(g.stmts, st)
	return true
}

// AddAll inserts every statement of other, preserving other's order.
func (g *Graph) AddAll(other *Graph) {
	for _, st := range other.stmts {
		g.Add(st)
	}
}

// Has reports whether the statement is present.
func (g *Graph) Has(st Statement) bool {
	_, ok := g.index[st.key()]
	return ok
}

// Len returns the number of statements.
func (g *Graph) Len() int { return len(g.stmts) }

// Statements returns all statements in insertion order. The returned slice
// must not be mutated.
func (g *Graph) Statements() []Statement { return g.stmts }

// ForSubject returns the statements with the given subject, in insertion
// order.
func (g *Graph) ForSubject(subject IRI) []Statement {
	positions := g.bySubject[subject]
	if len(positions) == 0 {
		return nil
	}
	out := make([]Statement, 0, len(positions))
	for _, p := range positions {
		out = append(out, g.stmts[p])
	}
	return out
}

// Subjects returns the distinct subjects in first-seen order.
func (g *Graph) Subjects() []IRI {
	seen := make(map[IRI]struct{}, len(g.bySubject))
	var out []IRI
	for _, st := range g.stmts {
		if _, ok := seen[st.Subject]; !ok {
			seen[st.Subject] = struct{}{}
			out = append(out, st.Subject)
		}
	}
	return out
}

// Select returns statements matching the pattern. Nil pattern parts act as
// wildcards. The subject index is used when the subject is fixed; other
// patterns scan.
func (g *Graph) Select(subject, predicate *IRI, object Term) []Statement {
	var candidates []Statement
	if subject != nil {
		candidates = g.ForSubject(*subject)
	} else {
		candidates = g.stmts
	}
	var out []Statement
	for _, st := range candidates {
		if predicate != nil && st.Predicate != *predicate {
			continue
		}
		if object != nil && !termEqual(st.Object, object) {
			continue
		}
		out = append(out, st)
	}
	return out
}

// FirstLiteral returns the first literal object for (subject, predicate).
func (g *Graph) FirstLiteral(subject, predicate IRI) (Literal, bool) {
	for _, st := range g.ForSubject(subject) {
		if st.Predicate != predicate {
			continue
		}
		if lit, ok := st.Object.(Literal); ok {
			return lit, true
		}
	}
	return Literal{}, false
}

// FirstIRI returns the first IRI object for (subject, predicate).
func (g *Graph) FirstIRI(subject, predicate IRI) (IRI, bool) {
	for _, st := range g.ForSubject(subject) {
		if st.Predicate != predicate {
			continue
		}
		if iri, ok := st.Object.(IRI); ok {
			return iri, true
		}
	}
	return "", false
}

// Bind registers a namespace prefix used by the Turtle encoder. Rebinding a
// prefix replaces the previous namespace.
func (g *Graph) Bind(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Namespaces returns a copy of the prefix bindings.
func (g *Graph) Namespaces() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for p, ns := range g.prefixes {
		out[p] = ns
	}
	return out
}

// PrefixFor returns the prefix bound to the given namespace, if any. When
// several prefixes share the namespace the lexically smallest wins, so the
// answer does not depend on map order.
func (g *Graph) PrefixFor(namespace string) (string, bool) {
	var matches []string
	for p, ns := range g.prefixes {
		if ns == namespace {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

// Clone returns a deep copy of the graph, bindings included.
func (g *Graph) Clone() *Graph {
	out := NewGraph()
	out.AddAll(g)
	for p, ns := range g.prefixes {
		out.Bind(p, ns)
	}
	return out
}

// Partition splits the graph by a namespace prefix. The first result holds
// every statement where the subject, the predicate, or an IRI object starts
// with the prefix; the second holds the rest. The two parts are complements:
// their union is the receiver and their intersection is empty. Bindings are
// copied to both parts.
func (g *Graph) Partition(prefix string) (inside, outside *Graph) {
	inside, outside = NewGraph(), NewGraph()
	for _, st := range g.stmts {
		in := st.Subject.HasPrefix(prefix) || st.Predicate.HasPrefix(prefix)
		if !in {
			if obj, ok := st.Object.(IRI); ok && obj.HasPrefix(prefix) {
				in = true
			}
		}
		if in {
			inside.Add(st)
		} else {
			outside.Add(st)
		}
	}
	for p, ns := range g.prefixes {
		inside.Bind(p, ns)
		outside.Bind(p, ns)
	}
	return inside, outside
}

func termEqual(a, b Term) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case IRI:
		return at == b.(IRI)
	case Literal:
		bt := b.(Literal)
		return at.Value == bt.Value && at.Datatype == bt.Datatype && at.Lang == bt.Lang
	}
	return false
}
