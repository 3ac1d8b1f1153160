package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
	"github.com/smallnest/ontograph/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements store.TripleStoreManager using PostgreSQL.
// Graphs are stored as Turtle text.
type PostgresStore struct {
	pool DBPool
}

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
}

// NewPostgresStore creates a new Postgres-backed store.
func NewPostgresStore(ctx context.Context, opts PostgresOptions) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresStoreWithPool creates a store over an existing pool. Useful for
// testing with mocks.
func NewPostgresStoreWithPool(pool DBPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// InitSchema creates the necessary tables if they don't exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
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
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) FetchOntologies(ctx context.Context) ([]*onto.Ontology, error) {
	rows, err := s.pool.Query(ctx,
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

func (s *PostgresStore) StoreOntology(ctx context.Context, o *onto.Ontology) error {
	query := `
		INSERT INTO ontologies (short_name, version, turtle)
		VALUES ($1, $2, $3)
		ON CONFLICT (short_name, version) DO UPDATE SET turtle = EXCLUDED.turtle
	`
	_, err := s.pool.Exec(ctx, query, o.ShortName, o.Version, o.WithMetadata().EncodeTurtle())
	if err != nil {
		return fmt.Errorf("failed to store ontology: %w", err)
	}
	return nil
}

func (s *PostgresStore) StoreFacts(ctx context.Context, g *rdf.Graph, hint string) error {
	query := `
		INSERT INTO facts (hint, turtle)
		VALUES ($1, $2)
		ON CONFLICT (hint) DO UPDATE SET turtle = EXCLUDED.turtle
	`
	_, err := s.pool.Exec(ctx, query, hint, g.EncodeTurtle())
	if err != nil {
		return fmt.Errorf("failed to store facts: %w", err)
	}
	return nil
}

func (s *PostgresStore) FetchFacts(ctx context.Context, hint string) (*rdf.Graph, error) {
	var turtle string
	err := s.pool.QueryRow(ctx, "SELECT turtle FROM facts WHERE hint = $1", hint).Scan(&turtle)
	if errors.Is(err, pgx.ErrNoRows) {
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

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var _ store.TripleStoreManager = (*PostgresStore)(nil)
