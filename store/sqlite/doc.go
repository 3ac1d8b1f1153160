// Package sqlite provides SQLite-backed storage for ontologies and fact
// graphs. A single database file holds both tables, which makes it the
// default durable backend for single-process deployments.
//
// # Basic Usage
//
//	store, err := sqlite.NewSqliteStore(sqlite.SqliteOptions{Path: "ontograph.db"})
//	if err != nil {
//		return err
//	}
//	defer store.Close()
package sqlite
