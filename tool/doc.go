// Package tool holds the collaborators of the extraction workflow: document
// conversion to markdown, heading-aware chunking, model-backed generation
// and critique of ontologies and facts, and the ontology working set over a
// triple store.
package tool
