// Package onto defines the domain model shared by the pipeline stages: the
// Ontology and Chunk types, the per-run State with its failure record and
// per-stage visit counters, and the structured results the generator
// collaborator returns.
package onto
