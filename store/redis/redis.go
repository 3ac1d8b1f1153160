package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
	"github.com/smallnest/ontograph/store"
)

// RedisStore implements store.TripleStoreManager over Redis. Graphs are
// stored as Turtle strings; ontology keys are tracked in a set so they can
// be enumerated without SCAN.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // key prefix, default "ontograph:"
	TTL      time.Duration // expiration for stored graphs, default 0 (none)
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "ontograph:"
	}

	return &RedisStore{client: client, prefix: prefix, ttl: opts.TTL}
}

func (s *RedisStore) ontologyKey(shortName, version string) string {
	return fmt.Sprintf("%sontology:%s:%s", s.prefix, shortName, version)
}

func (s *RedisStore) ontologyIndexKey() string {
	return s.prefix + "ontologies"
}

func (s *RedisStore) factsKey(hint string) string {
	return s.prefix + "facts:" + hint
}

func (s *RedisStore) FetchOntologies(ctx context.Context) ([]*onto.Ontology, error) {
	keys, err := s.client.SMembers(ctx, s.ontologyIndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ontologies: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ontologies: %w", err)
	}

	var out []*onto.Ontology
	for _, value := range values {
		turtle, ok := value.(string)
		if !ok {
			// expired member, skip
			continue
		}
		g, err := rdf.DecodeTurtle(turtle)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored ontology: %w", err)
		}
		if o := onto.FromGraph(g); o != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *RedisStore) StoreOntology(ctx context.Context, o *onto.Ontology) error {
	key := s.ontologyKey(o.ShortName, o.Version)
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, o.WithMetadata().EncodeTurtle(), s.ttl)
	pipe.SAdd(ctx, s.ontologyIndexKey(), key)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.ontologyIndexKey(), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store ontology: %w", err)
	}
	return nil
}

func (s *RedisStore) StoreFacts(ctx context.Context, g *rdf.Graph, hint string) error {
	if err := s.client.Set(ctx, s.factsKey(hint), g.EncodeTurtle(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store facts: %w", err)
	}
	return nil
}

func (s *RedisStore) FetchFacts(ctx context.Context, hint string) (*rdf.Graph, error) {
	turtle, err := s.client.Get(ctx, s.factsKey(hint)).Result()
	if err == redis.Nil {
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

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ store.TripleStoreManager = (*RedisStore)(nil)
