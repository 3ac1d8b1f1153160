package aggregate

import (
	"strings"

	"github.com/smallnest/ontograph/rdf"
)

// DefaultSimilarityThreshold is the label similarity at or above which two
// identifiers join the same group.
const DefaultSimilarityThreshold = 85.0

// Entity pairs an identifier with its extracted human-readable label.
type Entity struct {
	ID    rdf.IRI
	Label string
}

// PredicateInfo carries the metadata extracted for one predicate.
type PredicateInfo struct {
	ID       rdf.IRI
	Label    string
	Comment  string
	Domain   rdf.IRI
	Range    rdf.IRI
	Explicit bool // declared rdf:type rdf:Property
}

func (p *PredicateInfo) populated() int {
	n := 0
	if p.Label != "" {
		n++
	}
	if p.Comment != "" {
		n++
	}
	if p.Domain != "" {
		n++
	}
	if p.Range != "" {
		n++
	}
	if p.Explicit {
		n++
	}
	return n
}

// Disambiguator groups near-duplicate identifiers and predicates extracted
// from several chunk graphs. It performs no I/O; for a fixed input order its
// output is deterministic.
type Disambiguator struct {
	threshold float64
	prefixes  map[string]string
}

// NewDisambiguator creates a disambiguator with the given similarity
// threshold. A zero or negative threshold selects the default.
func NewDisambiguator(threshold float64) *Disambiguator {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	prefixes := make(map[string]string, len(rdf.CommonPrefixes))
	for p, ns := range rdf.CommonPrefixes {
		prefixes[p] = ns
	}
	return &Disambiguator{threshold: threshold, prefixes: prefixes}
}

// RegisterPrefixes adds namespace abbreviations consulted when expanding
// prefixed identifiers before local-name comparison.
func (d *Disambiguator) RegisterPrefixes(prefixes map[string]string) {
	for p, ns := range prefixes {
		d.prefixes[p] = ns
	}
}

// ExtractEntityLabels extracts a label for every identifier appearing as a
// subject: an explicit rdfs:label/rdfs:comment literal wins; otherwise the
// identifier's trailing path segment. Results keep first-seen subject order.
func (d *Disambiguator) ExtractEntityLabels(g *rdf.Graph) []Entity {
	labels := make(map[rdf.IRI]string)
	var order []rdf.IRI

	set := func(id rdf.IRI, label string) {
		if _, seen := labels[id]; !seen {
			order = append(order, id)
		}
		labels[id] = label
	}

	for _, st := range g.Statements() {
		if st.Predicate == rdf.RDFSLabel || st.Predicate == rdf.RDFSComment {
			if lit, ok := st.Object.(rdf.Literal); ok {
				set(st.Subject, lit.Value)
				continue
			}
		}
		if _, seen := labels[st.Subject]; !seen {
			set(st.Subject, st.Subject.LocalName())
		}
	}

	out := make([]Entity, 0, len(order))
	for _, id := range order {
		out = append(out, Entity{ID: id, Label: labels[id]})
	}
	return out
}

// ExtractPredicateInfo extracts metadata for every predicate used in the
// graph, in first-use order. Predicates without an explicit label get one
// inferred from their local name.
func (d *Disambiguator) ExtractPredicateInfo(g *rdf.Graph) []*PredicateInfo {
	info := make(map[rdf.IRI]*PredicateInfo)
	var order []rdf.IRI

	for _, st := range g.Statements() {
		if _, ok := info[st.Predicate]; !ok {
			info[st.Predicate] = &PredicateInfo{ID: st.Predicate}
			order = append(order, st.Predicate)
		}
	}

	for _, st := range g.Statements() {
		pi, ok := info[st.Subject]
		if !ok {
			continue
		}
		switch st.Predicate {
		case rdf.RDFType:
			if obj, isIRI := st.Object.(rdf.IRI); isIRI && obj == rdf.RDFProperty {
				pi.Explicit = true
			}
		case rdf.RDFSLabel:
			if lit, isLit := st.Object.(rdf.Literal); isLit {
				pi.Label = lit.Value
			}
		case rdf.RDFSComment:
			if lit, isLit := st.Object.(rdf.Literal); isLit {
				pi.Comment = lit.Value
			}
		case rdf.RDFSDomain:
			if obj, isIRI := st.Object.(rdf.IRI); isIRI {
				pi.Domain = obj
			}
		case rdf.RDFSRange:
			if obj, isIRI := st.Object.(rdf.IRI); isIRI {
				pi.Range = obj
			}
		}
	}

	out := make([]*PredicateInfo, 0, len(order))
	for _, id := range order {
		pi := info[id]
		if pi.Label == "" {
			pi.Label = inferLabel(id)
		}
		out = append(out, pi)
	}
	return out
}

// inferLabel turns a local name into a readable label: snake_case becomes
// space-separated lower-case words.
func inferLabel(id rdf.IRI) string {
	words := strings.Fields(strings.ReplaceAll(id.LocalName(), "_", " "))
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

// FindSimilarEntities groups near-duplicate entities. Grouping is a single
// greedy pass: each unprocessed entity seeds a new group and absorbs every
// later unprocessed entity whose label is similar enough to the seed's, or
// whose expanded local name matches the seed's exactly. The pass is
// order-dependent: an entity joins the first seed it matches. Only groups of
// size two or more are returned.
func (d *Disambiguator) FindSimilarEntities(entities []Entity) [][]rdf.IRI {
	var groups [][]rdf.IRI
	processed := make(map[rdf.IRI]struct{}, len(entities))

	for i, seed := range entities {
		if _, done := processed[seed.ID]; done {
			continue
		}
		processed[seed.ID] = struct{}{}
		group := []rdf.IRI{seed.ID}

		for _, candidate := range entities[i+1:] {
			if _, done := processed[candidate.ID]; done {
				continue
			}
			if d.entitiesMatch(seed, candidate) {
				group = append(group, candidate.ID)
				processed[candidate.ID] = struct{}{}
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}

func (d *Disambiguator) entitiesMatch(a, b Entity) bool {
	if Ratio(strings.ToLower(a.Label), strings.ToLower(b.Label)) >= d.threshold {
		return true
	}
	return d.expand(a.ID).LocalName() == d.expand(b.ID).LocalName()
}

// expand resolves a namespace abbreviation ("prefix:local") to a full IRI.
// Full IRIs pass through unchanged.
func (d *Disambiguator) expand(id rdf.IRI) rdf.IRI {
	s := string(id)
	if strings.Contains(s, "://") {
		return id
	}
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return id
	}
	if ns, ok := d.prefixes[s[:colon]]; ok {
		return rdf.IRI(ns + s[colon+1:])
	}
	return id
}

// FindSimilarPredicates groups near-duplicate predicates with the same
// greedy pass as FindSimilarEntities, with an extra constraint: two
// predicates merge only when their declared domains do not conflict and
// their declared ranges do not conflict (absent declarations are always
// compatible).
func (d *Disambiguator) FindSimilarPredicates(predicates []*PredicateInfo) [][]rdf.IRI {
	var groups [][]rdf.IRI
	processed := make(map[rdf.IRI]struct{}, len(predicates))

	for i, seed := range predicates {
		if _, done := processed[seed.ID]; done {
			continue
		}
		processed[seed.ID] = struct{}{}
		group := []rdf.IRI{seed.ID}

		for _, candidate := range predicates[i+1:] {
			if _, done := processed[candidate.ID]; done {
				continue
			}
			if d.predicatesMatch(seed, candidate) {
				group = append(group, candidate.ID)
				processed[candidate.ID] = struct{}{}
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}

func (d *Disambiguator) predicatesMatch(a, b *PredicateInfo) bool {
	if a.Label == "" || b.Label == "" {
		return false
	}
	if Ratio(strings.ToLower(a.Label), strings.ToLower(b.Label)) < d.threshold {
		return false
	}
	domainCompatible := a.Domain == b.Domain || a.Domain == "" || b.Domain == ""
	rangeCompatible := a.Range == b.Range || a.Range == "" || b.Range == ""
	return domainCompatible && rangeCompatible
}

// CanonicalEntityIRI synthesizes the canonical identifier for a group: the
// shortest member's local name minted inside the document namespace. Ties
// resolve to the earliest member.
func CanonicalEntityIRI(group []rdf.IRI, docIRI string) rdf.IRI {
	shortest := group[0]
	for _, id := range group[1:] {
		if len(id) < len(shortest) {
			shortest = id
		}
	}
	return rdf.IRI(strings.TrimSuffix(docIRI, "/") + "/entity/" + shortest.LocalName())
}

// CanonicalPredicateIRI synthesizes the canonical identifier for a predicate
// group from its best-described member.
func CanonicalPredicateIRI(best *PredicateInfo, docIRI string) rdf.IRI {
	return rdf.IRI(strings.TrimSuffix(docIRI, "/") + "/predicate/" + best.ID.LocalName())
}
