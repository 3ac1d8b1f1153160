package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
)

const docIRI = "https://example.com/doc/abc123"

func chunkWith(t *testing.T, text string, build func(g *rdf.Graph, ns string)) *onto.Chunk {
	t.Helper()
	c := onto.NewChunk(text, docIRI)
	build(c.Graph, c.Namespace())
	return c
}

func TestExtractEntityLabels(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Statement{Subject: "https://example.com/a", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Acme Corporation")})
	g.Add(rdf.Statement{Subject: "https://example.com/widget_maker", Predicate: rdf.RDFType, Object: rdf.IRI("https://example.com/Org")})

	entities := NewDisambiguator(0).ExtractEntityLabels(g)
	require.Len(t, entities, 2)
	assert.Equal(t, "Acme Corporation", entities[0].Label)
	// No label statement, so the local name stands in.
	assert.Equal(t, "widget_maker", entities[1].Label)
}

func TestExtractPredicateInfo(t *testing.T) {
	g := rdf.NewGraph()
	worksAt := rdf.IRI("https://example.com/works_at")
	g.Add(rdf.Statement{Subject: "https://example.com/a", Predicate: worksAt, Object: rdf.IRI("https://example.com/org")})
	g.Add(rdf.Statement{Subject: worksAt, Predicate: rdf.RDFType, Object: rdf.RDFProperty})
	g.Add(rdf.Statement{Subject: worksAt, Predicate: rdf.RDFSDomain, Object: rdf.IRI("https://example.com/Person")})

	infos := NewDisambiguator(0).ExtractPredicateInfo(g)
	byID := make(map[rdf.IRI]*PredicateInfo)
	for _, pi := range infos {
		byID[pi.ID] = pi
	}

	pi := byID[worksAt]
	require.NotNil(t, pi)
	assert.True(t, pi.Explicit)
	assert.Equal(t, rdf.IRI("https://example.com/Person"), pi.Domain)
	// Label inferred from the local name.
	assert.Equal(t, "works at", pi.Label)
}

func TestFindSimilarEntitiesGreedy(t *testing.T) {
	d := NewDisambiguator(0)
	entities := []Entity{
		{ID: "https://example.com/c1/acme", Label: "acme corporation"},
		{ID: "https://example.com/c2/acme_corp", Label: "acme corporation inc"},
		{ID: "https://example.com/c1/globex", Label: "globex industries"},
	}

	groups := d.FindSimilarEntities(entities)
	require.Len(t, groups, 1)
	assert.ElementsMatch(t, []rdf.IRI{
		"https://example.com/c1/acme",
		"https://example.com/c2/acme_corp",
	}, groups[0])
}

func TestFindSimilarEntitiesLocalNameMatch(t *testing.T) {
	d := NewDisambiguator(0)
	// Labels differ entirely but the local names coincide.
	entities := []Entity{
		{ID: "https://example.com/doc/1/chunk/x/alice_smith", Label: "Alice Smith"},
		{ID: "https://example.com/doc/1/chunk/y/alice_smith", Label: "Dr. A. Smith, PhD"},
	}

	groups := d.FindSimilarEntities(entities)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
}

func TestFindSimilarPredicatesRespectsDomains(t *testing.T) {
	d := NewDisambiguator(0)
	predicates := []*PredicateInfo{
		{ID: "https://example.com/c1/works_at", Label: "works at", Domain: "https://example.com/Person"},
		{ID: "https://example.com/c2/worksAt", Label: "works at", Domain: "https://example.com/Person"},
		{ID: "https://example.com/c3/works_at", Label: "works at", Domain: "https://example.com/Robot"},
	}

	groups := d.FindSimilarPredicates(predicates)
	require.Len(t, groups, 1)
	// The conflicting-domain predicate stays out.
	assert.ElementsMatch(t, []rdf.IRI{
		"https://example.com/c1/works_at",
		"https://example.com/c2/worksAt",
	}, groups[0])
}

func TestCanonicalEntityIRI(t *testing.T) {
	group := []rdf.IRI{
		"https://example.com/doc/1/chunk/xxxx/acme_corporation",
		"https://example.com/doc/1/chunk/yyyy/acme",
	}
	canonical := CanonicalEntityIRI(group, docIRI)
	assert.Equal(t, rdf.IRI(docIRI+"/entity/acme"), canonical)
}

func TestBuildMappingsKeepsCollidingGroupsApart(t *testing.T) {
	// Two unrelated groups whose shortest members both carry the local name
	// "acme". Without suffixing they would map onto one identifier.
	c := chunkWith(t, "Acme and Beta.", func(g *rdf.Graph, ns string) {
		g.Add(rdf.Statement{Subject: "https://example.com/doc/1/chunk/aa/acme_corporation", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Acme Corporation")})
		g.Add(rdf.Statement{Subject: "http://x.io/a/acme", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Acme Corporations")})
		g.Add(rdf.Statement{Subject: "http://x.io/b/acme", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Beta Industries")})
		g.Add(rdf.Statement{Subject: "http://x.io/c/beta_industry", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Beta Industry")})
	})

	entityMapping, _ := NewAggregator(0).buildMappings([]*onto.Chunk{c}, docIRI)

	acme := entityMapping["http://x.io/a/acme"]
	beta := entityMapping["http://x.io/b/acme"]
	assert.Equal(t, rdf.IRI(docIRI+"/entity/acme"), acme)
	assert.Equal(t, rdf.IRI(docIRI+"/entity/acme-2"), beta)
	assert.Equal(t, acme, entityMapping["https://example.com/doc/1/chunk/aa/acme_corporation"])
	assert.Equal(t, beta, entityMapping["http://x.io/c/beta_industry"])
}

func TestAggregateMergesAcrossChunks(t *testing.T) {
	c1 := chunkWith(t, "Acme was founded in 1999.", func(g *rdf.Graph, ns string) {
		acme := rdf.IRI(ns + "acme")
		g.Add(rdf.Statement{Subject: acme, Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Acme Corporation")})
		g.Add(rdf.Statement{Subject: acme, Predicate: "https://example.com/founded", Object: rdf.NewTypedLiteral("1999", rdf.XSDInteger)})
	})
	c2 := chunkWith(t, "Acme employs Alice.", func(g *rdf.Graph, ns string) {
		acme := rdf.IRI(ns + "acme_corp")
		alice := rdf.IRI(ns + "alice")
		g.Add(rdf.Statement{Subject: acme, Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Acme Corporation Inc")})
		g.Add(rdf.Statement{Subject: acme, Predicate: "https://example.com/employs", Object: alice})
		g.Add(rdf.Statement{Subject: alice, Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Alice")})
	})

	out := NewAggregator(0).Aggregate([]*onto.Chunk{c1, c2}, docIRI)

	canonical := rdf.IRI(docIRI + "/entity/acme")

	// Both chunks' statements now speak about the canonical entity.
	founded, ok := out.FirstLiteral(canonical, "https://example.com/founded")
	require.True(t, ok)
	assert.Equal(t, "1999", founded.Value)
	_, ok = out.FirstIRI(canonical, "https://example.com/employs")
	assert.True(t, ok)

	// No statement about the original chunk-scoped identifiers survives.
	assert.Empty(t, out.ForSubject(rdf.IRI(c1.Namespace()+"acme")))
	assert.Empty(t, out.ForSubject(rdf.IRI(c2.Namespace()+"acme_corp")))

	// Provenance: each chunk is an entity of the document...
	for _, c := range []*onto.Chunk{c1, c2} {
		typ, ok := out.FirstIRI(rdf.IRI(c.IRI()), rdf.RDFType)
		require.True(t, ok)
		assert.Equal(t, rdf.PROVEntity, typ)
		part, ok := out.FirstIRI(rdf.IRI(c.IRI()), rdf.PROVWasPartOf)
		require.True(t, ok)
		assert.Equal(t, rdf.IRI(docIRI), part)
	}

	// ...and the merged entity is attributed to both chunks.
	wasGeneratedBy := rdf.PROVWasGeneratedBy
	assert.Len(t, out.Select(&canonical, &wasGeneratedBy, nil), 2)
}

func TestAggregateIsDeterministic(t *testing.T) {
	build := func() *rdf.Graph {
		c1 := chunkWith(t, "first", func(g *rdf.Graph, ns string) {
			g.Add(rdf.Statement{Subject: rdf.IRI(ns + "x"), Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Thing X")})
		})
		c2 := chunkWith(t, "second", func(g *rdf.Graph, ns string) {
			g.Add(rdf.Statement{Subject: rdf.IRI(ns + "y"), Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("Thing Y")})
		})
		return NewAggregator(0).Aggregate([]*onto.Chunk{c1, c2}, docIRI)
	}

	first := build()
	second := build()
	require.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Statements(), second.Statements())
}

func TestAggregateEmptyChunks(t *testing.T) {
	out := NewAggregator(0).Aggregate(nil, docIRI)
	assert.Zero(t, out.Len())
}
