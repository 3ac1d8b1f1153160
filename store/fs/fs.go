package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
	"github.com/smallnest/ontograph/store"
)

// FileStore is a TripleStoreManager over a directory of Turtle files.
// Ontologies are written as ontology_<shortname>_<version>.ttl and fact
// graphs as facts_<hint>.ttl, so a run with the same inputs overwrites its
// earlier output instead of accumulating copies.
type FileStore struct {
	dir string
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// sanitize keeps filenames portable: anything outside [A-Za-z0-9._-]
// becomes an underscore.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func (s *FileStore) ontologyPath(o *onto.Ontology) string {
	name := fmt.Sprintf("ontology_%s_%s.ttl", sanitize(o.ShortName), sanitize(o.Version))
	return filepath.Join(s.dir, name)
}

func (s *FileStore) factsPath(hint string) string {
	return filepath.Join(s.dir, fmt.Sprintf("facts_%s.ttl", sanitize(hint)))
}

func (s *FileStore) FetchOntologies(ctx context.Context) ([]*onto.Ontology, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "ontology_*.ttl"))
	if err != nil {
		return nil, fmt.Errorf("scan store directory: %w", err)
	}
	sort.Strings(matches)

	var out []*onto.Ontology
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read ontology %s: %w", filepath.Base(path), err)
		}
		g, err := rdf.DecodeTurtle(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse ontology %s: %w", filepath.Base(path), err)
		}
		o := onto.FromGraph(g)
		if o == nil {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *FileStore) StoreOntology(ctx context.Context, o *onto.Ontology) error {
	path := s.ontologyPath(o)
	if err := os.WriteFile(path, []byte(o.WithMetadata().EncodeTurtle()), 0o644); err != nil {
		return fmt.Errorf("write ontology %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *FileStore) StoreFacts(ctx context.Context, g *rdf.Graph, hint string) error {
	path := s.factsPath(hint)
	if err := os.WriteFile(path, []byte(g.EncodeTurtle()), 0o644); err != nil {
		return fmt.Errorf("write facts %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *FileStore) FetchFacts(ctx context.Context, hint string) (*rdf.Graph, error) {
	data, err := os.ReadFile(s.factsPath(hint))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read facts %s: %w", hint, err)
	}
	g, err := rdf.DecodeTurtle(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse facts %s: %w", hint, err)
	}
	return g, nil
}

func (s *FileStore) Close() error { return nil }

var _ store.TripleStoreManager = (*FileStore)(nil)
