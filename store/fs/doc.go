// Package fs provides filesystem storage for ontologies and fact graphs as
// Turtle files in a single directory. File names derive from the ontology
// short name and version, or the facts hint, so repeated runs overwrite
// their earlier output.
package fs
