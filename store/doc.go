// Package store defines the persistence interface for ontologies and
// aggregated fact graphs, plus an in-memory implementation. Durable backends
// live in the subpackages fs, sqlite, redis and postgres; all of them
// serialize graphs as Turtle.
package store
