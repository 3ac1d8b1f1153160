package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
	"github.com/smallnest/ontograph/store"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	s, err := NewSqliteStore(SqliteOptions{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSqliteStoreOntologyUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	o := &onto.Ontology{
		ShortName: "fin",
		Title:     "Finance Ontology",
		Version:   "1.0.0",
		IRI:       "https://example.com/ontology/fin",
		Graph:     rdf.NewGraph(),
	}
	require.NoError(t, s.StoreOntology(ctx, o))

	o.Title = "Finance Ontology, revised"
	require.NoError(t, s.StoreOntology(ctx, o))

	ontologies, err := s.FetchOntologies(ctx)
	require.NoError(t, err)
	require.Len(t, ontologies, 1)
	assert.Equal(t, "Finance Ontology, revised", ontologies[0].Title)
	assert.Equal(t, "1.0.0", ontologies[0].Version)
}

func TestSqliteStoreFacts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.FetchFacts(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	g := rdf.NewGraph()
	g.Add(rdf.Statement{
		Subject:   "https://example.com/a",
		Predicate: rdf.RDFSLabel,
		Object:    rdf.NewLiteral("A"),
	})
	require.NoError(t, s.StoreFacts(ctx, g, "doc1"))

	loaded, err := s.FetchFacts(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	label, ok := loaded.FirstLiteral("https://example.com/a", rdf.RDFSLabel)
	require.True(t, ok)
	assert.Equal(t, "A", label.Value)
}
