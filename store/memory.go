package store

import (
	"context"
	"sync"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
)

// MemoryStore is an in-memory TripleStoreManager. It is safe for concurrent
// use and keeps ontologies in insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	ontologies map[string]*onto.Ontology // keyed by short name + version
	order      []string
	facts      map[string]*rdf.Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ontologies: make(map[string]*onto.Ontology),
		facts:      make(map[string]*rdf.Graph),
	}
}

func ontologyKey(o *onto.Ontology) string {
	return o.ShortName + "\x00" + o.Version
}

func (s *MemoryStore) FetchOntologies(ctx context.Context) ([]*onto.Ontology, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*onto.Ontology, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.ontologies[key])
	}
	return out, nil
}

func (s *MemoryStore) StoreOntology(ctx context.Context, o *onto.Ontology) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ontologyKey(o)
	if _, exists := s.ontologies[key]; !exists {
		s.order = append(s.order, key)
	}
	s.ontologies[key] = o
	return nil
}

func (s *MemoryStore) StoreFacts(ctx context.Context, g *rdf.Graph, hint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.facts[hint] = g.Clone()
	return nil
}

func (s *MemoryStore) FetchFacts(ctx context.Context, hint string) (*rdf.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.facts[hint]
	if !ok {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

func (s *MemoryStore) Close() error { return nil }

var _ TripleStoreManager = (*MemoryStore)(nil)
