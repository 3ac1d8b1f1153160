// Package rdf implements a small in-memory triple store.
//
// A Graph is a set of (subject, predicate, object) statements where subjects
// and predicates are IRIs and objects are IRIs or literals. Statements are
// deduplicated and iterated in insertion order, which keeps every operation
// built on top of the store deterministic. The package also provides a
// Turtle encoder/decoder able to round-trip any graph it produces; the
// decoder injects a fixed set of well-known namespace prefixes when the
// input omits them, since LLM-authored Turtle frequently does.
package rdf
