package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
	"github.com/smallnest/ontograph/store"
)

// SqliteStore implements store.TripleStoreManager over a SQLite database.
// Graphs are stored as Turtle text, one row per ontology or fact graph.
type SqliteStore struct {
	db *sql.DB
}

// SqliteOptions configures the SQLite connection.
type SqliteOptions struct {
	Path string // database file, ":memory:" for ephemeral
}

// NewSqliteStore opens the database and creates the schema if needed.
func NewSqliteStore(opts SqliteOptions) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	if opts.Path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &SqliteStore{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqliteStore) initSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ontologies (
			short_name TEXT NOT NULL,
			version TEXT NOT NULL,
			turtle TEXT NOT NULL,
			PRIMARY KEY (short_name, version)
		);
		CREATE TABLE IF NOT EXISTS facts (
			hint TEXT PRIMARY KEY,
			turtle TEXT NOT NULL
		);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) FetchOntologies(ctx context.Context) ([]*onto.Ontology, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT turtle FROM ontologies ORDER BY short_name, version")
	if err != nil {
		return nil, fmt.Errorf("failed to query ontologies: %w", err)
	}
	defer rows.Close()

	var out []*onto.Ontology
	for rows.Next() {
		var turtle string
		if err := rows.Scan(&turtle); err != nil {
			return nil, fmt.Errorf("failed to scan ontology row: %w", err)
		}
		g, err := rdf.DecodeTurtle(turtle)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored ontology: %w", err)
		}
		if o := onto.FromGraph(g); o != nil {
			out = append(out, o)
		}
	}
	return out, rows.Err()
}

func (s *SqliteStore) StoreOntology(ctx context.Context, o *onto.Ontology) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ontologies (short_name, version, turtle) VALUES (?, ?, ?)
		 ON CONFLICT (short_name, version) DO UPDATE SET turtle = excluded.turtle`,
		o.ShortName, o.Version, o.WithMetadata().EncodeTurtle())
	if err != nil {
		return fmt.Errorf("failed to store ontology: %w", err)
	}
	return nil
}

func (s *SqliteStore) StoreFacts(ctx context.Context, g *rdf.Graph, hint string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO facts (hint, turtle) VALUES (?, ?)
		 ON CONFLICT (hint) DO UPDATE SET turtle = excluded.turtle`,
		hint, g.EncodeTurtle())
	if err != nil {
		return fmt.Errorf("failed to store facts: %w", err)
	}
	return nil
}

func (s *SqliteStore) FetchFacts(ctx context.Context, hint string) (*rdf.Graph, error) {
	var turtle string
	err := s.db.QueryRowContext(ctx,
		"SELECT turtle FROM facts WHERE hint = ?", hint).Scan(&turtle)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load facts: %w", err)
	}
	g, err := rdf.DecodeTurtle(turtle)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored facts: %w", err)
	}
	return g, nil
}

var _ store.TripleStoreManager = (*SqliteStore)(nil)
