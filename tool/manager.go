package tool

import (
	"context"
	"fmt"
	"sync"

	"github.com/smallnest/ontograph/log"
	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/store"
)

// OntologyManager keeps the working set of ontologies for a run: loaded from
// the store up front, updated in place as drafts are accepted, flushed back
// at the end. Lookups by an unknown or empty short name return the void
// sentinel, never nil.
type OntologyManager struct {
	mu         sync.RWMutex
	store      store.TripleStoreManager
	ontologies map[string]*onto.Ontology
	order      []string
}

// NewOntologyManager creates a manager over the given store.
func NewOntologyManager(ts store.TripleStoreManager) *OntologyManager {
	return &OntologyManager{
		store:      ts,
		ontologies: make(map[string]*onto.Ontology),
	}
}

// Load fetches all stored ontologies into the working set.
func (m *OntologyManager) Load(ctx context.Context) error {
	ontologies, err := m.store.FetchOntologies(ctx)
	if err != nil {
		return fmt.Errorf("fetch ontologies: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range ontologies {
		if _, exists := m.ontologies[o.ShortName]; !exists {
			m.order = append(m.order, o.ShortName)
		}
		m.ontologies[o.ShortName] = o
	}
	log.Debug("ontology manager: loaded %d ontologies", len(ontologies))
	return nil
}

// Get returns the ontology with the given short name, or the void sentinel
// when the name is empty or unknown.
func (m *OntologyManager) Get(shortName string) *onto.Ontology {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if o, ok := m.ontologies[shortName]; ok {
		return o
	}
	return onto.NewVoidOntology()
}

// Update merges an accepted addendum into the working set: an existing
// ontology with the addendum's short name absorbs it, otherwise the addendum
// becomes a new ontology. The resulting ontology is returned.
func (m *OntologyManager) Update(addendum *onto.Ontology) *onto.Ontology {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.ontologies[addendum.ShortName]; ok && !existing.IsVoid() {
		existing.Merge(addendum)
		return existing
	}
	m.ontologies[addendum.ShortName] = addendum
	m.order = append(m.order, addendum.ShortName)
	return addendum
}

// Choices lists the working set as selector options, in load order.
func (m *OntologyManager) Choices() []OntologyChoice {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]OntologyChoice, 0, len(m.order))
	for _, name := range m.order {
		o := m.ontologies[name]
		out = append(out, OntologyChoice{ShortName: o.ShortName, Description: o.Description})
	}
	return out
}

// Names lists the known short names in load order.
func (m *OntologyManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// Flush writes every working-set ontology back to the store.
func (m *OntologyManager) Flush(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range m.order {
		if err := m.store.StoreOntology(ctx, m.ontologies[name]); err != nil {
			return fmt.Errorf("store ontology %s: %w", name, err)
		}
	}
	return nil
}
