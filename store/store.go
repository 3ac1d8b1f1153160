package store

import (
	"context"
	"errors"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
)

// ErrNotFound reports a graph that is not in the store.
var ErrNotFound = errors.New("graph not found")

// TripleStoreManager persists ontologies and aggregated fact graphs.
// Backends exist for the filesystem, SQLite, Redis and PostgreSQL; the
// in-memory implementation in this package backs tests and one-shot runs.
type TripleStoreManager interface {
	// FetchOntologies returns every stored ontology with its metadata.
	FetchOntologies(ctx context.Context) ([]*onto.Ontology, error)

	// StoreOntology writes an ontology, replacing any earlier copy with the
	// same short name and version.
	StoreOntology(ctx context.Context, o *onto.Ontology) error

	// StoreFacts writes a fact graph under a caller-chosen hint, typically
	// the document identifier.
	StoreFacts(ctx context.Context, g *rdf.Graph, hint string) error

	// FetchFacts returns the fact graph stored under hint, or ErrNotFound.
	FetchFacts(ctx context.Context, hint string) (*rdf.Graph, error)

	// Close releases backend resources.
	Close() error
}
