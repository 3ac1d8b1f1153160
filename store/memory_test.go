package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
)

func testOntology(shortName, version string) *onto.Ontology {
	return &onto.Ontology{
		ShortName: shortName,
		Title:     "Test",
		Version:   version,
		IRI:       "https://example.com/" + shortName,
		Graph:     rdf.NewGraph(),
	}
}

func TestMemoryStoreOntologies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	ontologies, err := s.FetchOntologies(ctx)
	require.NoError(t, err)
	assert.Empty(t, ontologies)

	require.NoError(t, s.StoreOntology(ctx, testOntology("fin", "1.0.0")))
	require.NoError(t, s.StoreOntology(ctx, testOntology("legal", "1.0.0")))
	// Same short name and version replaces instead of duplicating.
	require.NoError(t, s.StoreOntology(ctx, testOntology("fin", "1.0.0")))

	ontologies, err = s.FetchOntologies(ctx)
	require.NoError(t, err)
	require.Len(t, ontologies, 2)
	assert.Equal(t, "fin", ontologies[0].ShortName)
	assert.Equal(t, "legal", ontologies[1].ShortName)
}

func TestMemoryStoreFacts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.FetchFacts(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	g := rdf.NewGraph()
	g.Add(rdf.Statement{Subject: "https://example.com/a", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("A")})
	require.NoError(t, s.StoreFacts(ctx, g, "doc1"))

	// Later mutations of the caller's graph do not leak into the store.
	g.Add(rdf.Statement{Subject: "https://example.com/b", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("B")})

	loaded, err := s.FetchFacts(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}
