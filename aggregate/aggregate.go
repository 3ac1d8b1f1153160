package aggregate

import (
	"fmt"

	"github.com/smallnest/ontograph/log"
	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
)

// Aggregator merges the fact graphs of processed chunks into one
// document-level graph: near-duplicate identifiers collapse to canonical
// ones and every statement gains chunk provenance.
type Aggregator struct {
	disambiguator *Disambiguator
}

// NewAggregator creates an aggregator with the given similarity threshold.
// A zero or negative threshold selects the default.
func NewAggregator(threshold float64) *Aggregator {
	return &Aggregator{disambiguator: NewDisambiguator(threshold)}
}

// Aggregate merges the chunk graphs into a single graph under docIRI. Every
// input chunk contributes; the inputs are not modified. Chunks are consumed
// in the order given, which fixes the output for a fixed input.
func (a *Aggregator) Aggregate(chunks []*onto.Chunk, docIRI string) *rdf.Graph {
	out := rdf.NewGraph()
	out.Bind("prov", rdf.PROVNS)
	out.Bind("cd", onto.ResourceNamespace(docIRI))

	entityMapping, predicateMapping := a.buildMappings(chunks, docIRI)
	log.Debug("aggregate: %d chunks, %d entity merges, %d predicate merges",
		len(chunks), len(entityMapping), len(predicateMapping))

	for _, chunk := range chunks {
		if chunk.Graph == nil {
			continue
		}
		for prefix, ns := range chunk.Graph.Namespaces() {
			out.Bind(prefix, ns)
		}

		chunkIRI := rdf.IRI(chunk.IRI())
		out.Add(rdf.Statement{Subject: chunkIRI, Predicate: rdf.RDFType, Object: rdf.PROVEntity})
		out.Add(rdf.Statement{Subject: chunkIRI, Predicate: rdf.PROVWasPartOf, Object: rdf.IRI(docIRI)})

		subjects := make(map[rdf.IRI]struct{})
		for _, st := range chunk.Graph.Statements() {
			rewritten := a.rewrite(st, entityMapping, predicateMapping)
			out.Add(rewritten)
			subjects[rewritten.Subject] = struct{}{}
		}
		for _, subj := range subjectsInOrder(chunk.Graph, entityMapping) {
			if _, ok := subjects[subj]; !ok {
				continue
			}
			out.Add(rdf.Statement{Subject: subj, Predicate: rdf.PROVWasGeneratedBy, Object: chunkIRI})
		}
	}
	return out
}

// buildMappings computes the canonical identifier for every merged entity
// and predicate across all chunk graphs.
func (a *Aggregator) buildMappings(chunks []*onto.Chunk, docIRI string) (map[rdf.IRI]rdf.IRI, map[rdf.IRI]rdf.IRI) {
	var entities []Entity
	seenEntity := make(map[rdf.IRI]struct{})
	predicates := make(map[rdf.IRI]*PredicateInfo)
	var predicateOrder []rdf.IRI

	for _, chunk := range chunks {
		if chunk.Graph == nil {
			continue
		}
		a.disambiguator.RegisterPrefixes(chunk.Graph.Namespaces())
		for _, e := range a.disambiguator.ExtractEntityLabels(chunk.Graph) {
			if _, ok := seenEntity[e.ID]; ok {
				continue
			}
			seenEntity[e.ID] = struct{}{}
			entities = append(entities, e)
		}
		for _, pi := range a.disambiguator.ExtractPredicateInfo(chunk.Graph) {
			existing, ok := predicates[pi.ID]
			if !ok {
				predicates[pi.ID] = pi
				predicateOrder = append(predicateOrder, pi.ID)
				continue
			}
			mergePredicateInfo(existing, pi)
		}
	}

	entityMapping := make(map[rdf.IRI]rdf.IRI)
	usedEntity := make(map[rdf.IRI]int)
	for _, group := range a.disambiguator.FindSimilarEntities(entities) {
		canonical := uniqueCanonical(usedEntity, CanonicalEntityIRI(group, docIRI))
		for _, id := range group {
			entityMapping[id] = canonical
		}
	}

	ordered := make([]*PredicateInfo, 0, len(predicateOrder))
	for _, id := range predicateOrder {
		ordered = append(ordered, predicates[id])
	}
	predicateMapping := make(map[rdf.IRI]rdf.IRI)
	usedPredicate := make(map[rdf.IRI]int)
	for _, group := range a.disambiguator.FindSimilarPredicates(ordered) {
		canonical := uniqueCanonical(usedPredicate, CanonicalPredicateIRI(bestDescribed(group, predicates), docIRI))
		for _, id := range group {
			predicateMapping[id] = canonical
		}
	}
	return entityMapping, predicateMapping
}

// uniqueCanonical keeps canonical identifiers distinct across groups. Two
// groups whose shortest members share a local name would otherwise mint the
// same identifier and silently merge; the later group gets a numeric suffix.
func uniqueCanonical(used map[rdf.IRI]int, canonical rdf.IRI) rdf.IRI {
	n := used[canonical]
	used[canonical] = n + 1
	if n == 0 {
		return canonical
	}
	return rdf.IRI(fmt.Sprintf("%s-%d", canonical, n+1))
}

// mergePredicateInfo fills dst's missing metadata from src. Present values
// win over absent ones; dst keeps its own values on conflict.
func mergePredicateInfo(dst, src *PredicateInfo) {
	// An explicit label beats one inferred from the local name.
	if src.Label != "" && src.Label != inferLabel(src.ID) && dst.Label == inferLabel(dst.ID) {
		dst.Label = src.Label
	}
	if dst.Comment == "" {
		dst.Comment = src.Comment
	}
	if dst.Domain == "" {
		dst.Domain = src.Domain
	}
	if dst.Range == "" {
		dst.Range = src.Range
	}
	dst.Explicit = dst.Explicit || src.Explicit
}

// bestDescribed picks the group member with the most populated metadata
// fields. Ties resolve to the earliest member.
func bestDescribed(group []rdf.IRI, info map[rdf.IRI]*PredicateInfo) *PredicateInfo {
	best := info[group[0]]
	for _, id := range group[1:] {
		if pi := info[id]; pi.populated() > best.populated() {
			best = pi
		}
	}
	return best
}

// rewrite maps a statement's subject, predicate and object through the
// canonical mappings. Only IRI objects are rewritten; literals pass through.
func (a *Aggregator) rewrite(st rdf.Statement, entities, predicates map[rdf.IRI]rdf.IRI) rdf.Statement {
	if canonical, ok := entities[st.Subject]; ok {
		st.Subject = canonical
	}
	if canonical, ok := predicates[st.Predicate]; ok {
		st.Predicate = canonical
	}
	if obj, isIRI := st.Object.(rdf.IRI); isIRI {
		if canonical, ok := entities[obj]; ok {
			st.Object = canonical
		}
	}
	return st
}

// subjectsInOrder returns the chunk graph's subjects, mapped through the
// entity mapping, first-seen order, without duplicates.
func subjectsInOrder(g *rdf.Graph, entities map[rdf.IRI]rdf.IRI) []rdf.IRI {
	var out []rdf.IRI
	seen := make(map[rdf.IRI]struct{})
	for _, subj := range g.Subjects() {
		if canonical, ok := entities[subj]; ok {
			subj = canonical
		}
		if _, dup := seen[subj]; dup {
			continue
		}
		seen[subj] = struct{}{}
		out = append(out, subj)
	}
	return out
}
