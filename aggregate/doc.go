// Package aggregate merges per-chunk fact graphs into one document-level
// knowledge graph. It collapses near-duplicate entity and predicate
// identifiers to canonical ones using label similarity, and records chunk
// provenance for every merged statement.
package aggregate
