// Package agent wires the extraction stages into a workflow graph and runs
// documents through it. Each document flows through conversion, chunking, a
// per-chunk ontology and fact generation loop with bounded retries, and a
// final aggregation into one provenance-carrying knowledge graph.
package agent
