package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/ontograph/rdf"
)

const testDomain = "https://example.com"

func link(g *rdf.Graph, s, o string) {
	g.Add(rdf.Statement{Subject: rdf.IRI(s), Predicate: "https://example.com/relatedTo", Object: rdf.IRI(o)})
}

func label(g *rdf.Graph, s, text string) {
	g.Add(rdf.Statement{Subject: rdf.IRI(s), Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral(text)})
}

func TestEmptyGraphIsConnected(t *testing.T) {
	v := New(rdf.NewGraph(), testDomain)

	report := v.Validate()
	assert.True(t, report.IsConnected)
	assert.Zero(t, report.TotalEntities)
	assert.Zero(t, report.LargestComponentSize)
	assert.Empty(t, report.Components)
}

func TestSingleComponentIsConnected(t *testing.T) {
	g := rdf.NewGraph()
	link(g, "https://example.com/a", "https://example.com/b")
	link(g, "https://example.com/b", "https://example.com/c")

	v := New(g, testDomain)
	assert.True(t, v.IsConnected())

	report := v.Validate()
	assert.Equal(t, 3, report.TotalEntities)
	assert.Equal(t, 3, report.LargestComponentSize)
	assert.Len(t, report.Components, 1)
	assert.Empty(t, report.IsolatedEntities)
}

func TestLiteralsDoNotConnect(t *testing.T) {
	// Two entities that only share literal values are still disconnected.
	g := rdf.NewGraph()
	label(g, "https://example.com/a", "same")
	label(g, "https://example.com/b", "same")

	v := New(g, testDomain)
	report := v.Validate()
	assert.False(t, report.IsConnected)
	assert.Len(t, report.Components, 2)
	assert.Len(t, report.IsolatedEntities, 2)
}

func TestRepairBridgesAllComponents(t *testing.T) {
	g := rdf.NewGraph()
	link(g, "https://example.com/a", "https://example.com/b")
	link(g, "https://example.com/c", "https://example.com/d")
	label(g, "https://example.com/e", "isolated")

	v := New(g, testDomain)
	require.Len(t, v.FindComponents(), 3)

	chunkIRI := "https://example.com/doc/1/chunk/abc"
	repaired := v.Repair(chunkIRI)

	// Repair is additive: every original statement survives.
	for _, st := range g.Statements() {
		assert.True(t, repaired.Has(st))
	}
	assert.True(t, New(repaired, testDomain).IsConnected())

	// The hub is typed and labeled, and bridges run in both directions.
	hub := rdf.IRI(chunkIRI)
	typ, ok := repaired.FirstIRI(hub, rdf.RDFType)
	require.True(t, ok)
	assert.Equal(t, rdf.IRI("https://example.com/TextChunk"), typ)

	hubPtr := hub
	hasPart := rdf.SchemaHasPart
	quoted := rdf.PROVWasQuotedFrom
	assert.Len(t, repaired.Select(&hubPtr, &hasPart, nil), 3)
	assert.Len(t, repaired.Select(nil, &quoted, hub), 3)

	// 2 hub statements + 2 per component on top of the original 3.
	assert.Equal(t, g.Len()+2+3*2, repaired.Len())
}

func TestRepairLeavesConnectedGraphAlone(t *testing.T) {
	g := rdf.NewGraph()
	link(g, "https://example.com/a", "https://example.com/b")

	v := New(g, testDomain)
	repaired := v.Repair("https://example.com/doc/1/chunk/abc")
	assert.Equal(t, g.Len(), repaired.Len())
}

func TestRepairIsIdempotent(t *testing.T) {
	g := rdf.NewGraph()
	link(g, "https://example.com/a", "https://example.com/b")
	link(g, "https://example.com/c", "https://example.com/d")

	chunkIRI := "https://example.com/doc/1/chunk/abc"
	once := New(g, testDomain).Repair(chunkIRI)
	twice := New(once, testDomain).Repair(chunkIRI)
	assert.Equal(t, once.Len(), twice.Len())
}

func TestChooseRepresentativePrefersLabeledThenDegree(t *testing.T) {
	g := rdf.NewGraph()
	// b has the highest degree but only c carries a label.
	link(g, "https://example.com/a", "https://example.com/b")
	link(g, "https://example.com/b", "https://example.com/c")
	link(g, "https://example.com/b", "https://example.com/d")
	label(g, "https://example.com/c", "C")

	v := New(g, testDomain)
	components := v.FindComponents()
	require.Len(t, components, 1)
	assert.Equal(t, rdf.IRI("https://example.com/c"), v.chooseRepresentative(components[0]))
}

func TestPredicateStats(t *testing.T) {
	g := rdf.NewGraph()
	p := rdf.IRI("https://example.com/worksAt")
	g.Add(rdf.Statement{Subject: "https://example.com/a", Predicate: p, Object: rdf.IRI("https://example.com/org")})
	g.Add(rdf.Statement{Subject: p, Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("works at")})
	g.Add(rdf.Statement{Subject: p, Predicate: rdf.RDFSDomain, Object: rdf.IRI("https://example.com/Person")})

	stats := New(g, testDomain).Validate().PredicateStats
	assert.Equal(t, 3, stats.Total) // worksAt, rdfs:label, rdfs:domain
	assert.Equal(t, 1, stats.WithLabels)
	assert.Equal(t, 1, stats.WithDomains)
	assert.Zero(t, stats.WithRanges)
}
