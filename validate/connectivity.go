// Package validate checks whether the entities of a chunk graph form a
// single connected structure and, when they do not, synthesizes bridging
// relationships through a chunk hub entity.
package validate

import (
	"strings"

	"github.com/smallnest/ontograph/log"
	"github.com/smallnest/ontograph/rdf"
)

// Report summarizes the connectivity of one graph.
type Report struct {
	// IsConnected is true iff the number of components is at most one.
	// The empty graph is connected by convention.
	IsConnected bool

	// Components lists the disjoint identifier sets, in first-seen order.
	Components [][]rdf.IRI

	// TotalEntities counts distinct identifiers appearing as subject or
	// IRI object.
	TotalEntities int

	// LargestComponentSize is the size of the biggest component, zero for
	// the empty graph.
	LargestComponentSize int

	// IsolatedEntities lists the members of singleton components.
	IsolatedEntities []rdf.IRI

	// PredicateStats carries reduced predicate usage counts for telemetry.
	PredicateStats PredicateStats
}

// PredicateStats counts predicate metadata coverage in a graph.
type PredicateStats struct {
	Total       int
	WithLabels  int
	WithDomains int
	WithRanges  int
}

// Validator computes connectivity over one graph. The domain string types
// synthetic bridge entities created by Repair.
type Validator struct {
	graph  *rdf.Graph
	domain string
}

// New creates a validator for a graph.
func New(graph *rdf.Graph, domain string) *Validator {
	return &Validator{graph: graph, domain: domain}
}

// entities returns the distinct identifiers of the graph in first-seen
// order. Predicates are not entities.
func (v *Validator) entities() []rdf.IRI {
	seen := make(map[rdf.IRI]struct{})
	var out []rdf.IRI
	add := func(iri rdf.IRI) {
		if _, ok := seen[iri]; !ok {
			seen[iri] = struct{}{}
			out = append(out, iri)
		}
	}
	for _, st := range v.graph.Statements() {
		add(st.Subject)
		if obj, ok := st.Object.(rdf.IRI); ok {
			add(obj)
		}
	}
	return out
}

// adjacency builds an undirected identifier graph: every statement whose
// subject and object are both identifiers adds an edge between them.
func (v *Validator) adjacency() map[rdf.IRI][]rdf.IRI {
	adj := make(map[rdf.IRI][]rdf.IRI)
	for _, st := range v.graph.Statements() {
		obj, ok := st.Object.(rdf.IRI)
		if !ok {
			continue
		}
		adj[st.Subject] = append(adj[st.Subject], obj)
		adj[obj] = append(adj[obj], st.Subject)
	}
	return adj
}

// FindComponents enumerates connected components via breadth-first search.
func (v *Validator) FindComponents() [][]rdf.IRI {
	entities := v.entities()
	adj := v.adjacency()
	visited := make(map[rdf.IRI]struct{}, len(entities))

	var components [][]rdf.IRI
	for _, start := range entities {
		if _, ok := visited[start]; ok {
			continue
		}
		var component []rdf.IRI
		queue := []rdf.IRI{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)
			for _, neighbor := range adj[current] {
				if _, ok := visited[neighbor]; !ok {
					visited[neighbor] = struct{}{}
					queue = append(queue, neighbor)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// IsConnected reports whether the graph has at most one component.
func (v *Validator) IsConnected() bool {
	return len(v.FindComponents()) <= 1
}

// Validate computes the full connectivity report.
func (v *Validator) Validate() Report {
	components := v.FindComponents()
	report := Report{
		IsConnected:   len(components) <= 1,
		Components:    components,
		TotalEntities: len(v.entities()),
	}
	for _, c := range components {
		if len(c) > report.LargestComponentSize {
			report.LargestComponentSize = len(c)
		}
		if len(c) == 1 {
			report.IsolatedEntities = append(report.IsolatedEntities, c[0])
		}
	}
	report.PredicateStats = v.predicateStats()
	return report
}

func (v *Validator) predicateStats() PredicateStats {
	var stats PredicateStats
	seen := make(map[rdf.IRI]struct{})
	for _, st := range v.graph.Statements() {
		if _, ok := seen[st.Predicate]; ok {
			continue
		}
		seen[st.Predicate] = struct{}{}
		stats.Total++
		if _, ok := v.graph.FirstLiteral(st.Predicate, rdf.RDFSLabel); ok {
			stats.WithLabels++
		}
		if _, ok := v.graph.FirstIRI(st.Predicate, rdf.RDFSDomain); ok {
			stats.WithDomains++
		}
		if _, ok := v.graph.FirstIRI(st.Predicate, rdf.RDFSRange); ok {
			stats.WithRanges++
		}
	}
	return stats
}

// Repair returns a new graph containing every original statement plus the
// bridging statements that join all components through a hub entity
// identified by chunkIRI. The original graph is left untouched. When the
// graph is already connected the original graph is returned as-is.
//
// The hub receives a type and a label; each component contributes one
// representative connected bidirectionally to the hub.
func (v *Validator) Repair(chunkIRI string) *rdf.Graph {
	components := v.FindComponents()
	if len(components) <= 1 {
		log.Debug("graph already connected, nothing to repair")
		return v.graph
	}

	connected := v.graph.Clone()
	hub := rdf.IRI(chunkIRI)

	connected.Add(rdf.Statement{Subject: hub, Predicate: rdf.RDFType, Object: v.hubType()})
	connected.Add(rdf.Statement{Subject: hub, Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Document chunk")})

	for _, component := range components {
		representative := v.chooseRepresentative(component)
		connected.Add(rdf.Statement{Subject: hub, Predicate: rdf.SchemaHasPart, Object: representative})
		connected.Add(rdf.Statement{Subject: representative, Predicate: rdf.PROVWasQuotedFrom, Object: hub})
	}

	log.Info("connected %d components via chunk hub %s", len(components), chunkIRI)
	return connected
}

func (v *Validator) hubType() rdf.IRI {
	domain := v.domain
	if domain != "" && !strings.HasSuffix(domain, "/") && !strings.HasSuffix(domain, "#") {
		domain += "/"
	}
	return rdf.IRI(domain + "TextChunk")
}

// chooseRepresentative picks the entity that anchors a component to the hub:
// a labeled entity with the highest degree, falling back to the highest
// degree overall. Ties resolve to the earliest entity in component order so
// repair is deterministic.
func (v *Validator) chooseRepresentative(component []rdf.IRI) rdf.IRI {
	degree := make(map[rdf.IRI]int, len(component))
	labeled := make(map[rdf.IRI]bool, len(component))
	inComponent := make(map[rdf.IRI]struct{}, len(component))
	for _, e := range component {
		inComponent[e] = struct{}{}
	}

	for _, st := range v.graph.Statements() {
		if _, ok := inComponent[st.Subject]; ok {
			degree[st.Subject]++
			if st.Predicate == rdf.RDFSLabel || st.Predicate == rdf.RDFSComment {
				if _, isLit := st.Object.(rdf.Literal); isLit {
					labeled[st.Subject] = true
				}
			}
		}
		if obj, ok := st.Object.(rdf.IRI); ok && obj != st.Subject {
			if _, in := inComponent[obj]; in {
				degree[obj]++
			}
		}
	}

	best := component[0]
	bestLabeled := labeled[best]
	for _, e := range component[1:] {
		switch {
		case labeled[e] && !bestLabeled:
			best, bestLabeled = e, true
		case labeled[e] == bestLabeled && degree[e] > degree[best]:
			best = e
		}
	}
	return best
}
