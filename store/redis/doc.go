// Package redis provides Redis-backed storage for ontologies and fact graphs.
//
// Graphs are serialized as Turtle strings under prefixed keys, with an index
// set for enumerating ontologies. Suitable when several extraction workers
// share one store, or when stored graphs should expire.
//
// # Basic Usage
//
//	store := redis.NewRedisStore(redis.RedisOptions{
//		Addr:   "localhost:6379",
//		Prefix: "ontograph:",
//		TTL:    24 * time.Hour,
//	})
//	defer store.Close()
//
//	ontologies, err := store.FetchOntologies(ctx)
package redis
