package rdf

import "strings"

// Term is either an IRI or a Literal.
type Term interface {
	// Kind returns TermIRI or TermLiteral.
	Kind() TermKind

	// String returns the lexical value of the term: the IRI string for an
	// IRI, the literal value for a Literal.
	String() string
}

// TermKind discriminates the two term types.
type TermKind int

const (
	// TermIRI identifies IRI terms.
	TermIRI TermKind = iota
	// TermLiteral identifies Literal terms.
	TermLiteral
)

// IRI is an opaque, globally unique identifier. IRIs are immutable values
// compared by exact string equality.
type IRI string

// Kind returns TermIRI.
func (IRI) Kind() TermKind { return TermIRI }

// String returns the IRI as a plain string.
func (i IRI) String() string { return string(i) }

// LocalName returns the trailing path segment of the IRI: the text after the
// last '/' or '#'.
func (i IRI) LocalName() string {
	s := string(i)
	if idx := strings.LastIndexAny(s, "/#"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// HasPrefix reports whether the IRI starts with the given namespace prefix.
func (i IRI) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(i), prefix)
}

// Literal is a typed scalar value. Literals may appear only as the object of
// a statement. Lang and Datatype are mutually exclusive; both empty means a
// plain string literal.
type Literal struct {
	Value    string
	Datatype IRI
	Lang     string
}

// Kind returns TermLiteral.
func (Literal) Kind() TermKind { return TermLiteral }

// String returns the literal value without quoting or type annotation.
func (l Literal) String() string { return l.Value }

// NewLiteral returns a plain string literal.
func NewLiteral(value string) Literal {
	return Literal{Value: value}
}

// NewTypedLiteral returns a literal with an explicit datatype IRI.
func NewTypedLiteral(value string, datatype IRI) Literal {
	return Literal{Value: value, Datatype: datatype}
}

// NewLangLiteral returns a language-tagged string literal.
func NewLangLiteral(value, lang string) Literal {
	return Literal{Value: value, Lang: lang}
}

// Statement is one (subject, predicate, object) triple.
type Statement struct {
	Subject   IRI
	Predicate IRI
	Object    Term
}

// key returns a collision-free identity for set membership.
func (s Statement) key() string {
	var b strings.Builder
	b.Grow(len(s.Subject) + len(s.Predicate) + 32)
	b.WriteString(string(s.Subject))
	b.WriteByte(0)
	b.WriteString(string(s.Predicate))
	b.WriteByte(0)
	switch o := s.Object.(type) {
	case IRI:
		b.WriteByte('i')
		b.WriteString(string(o))
	case Literal:
		b.WriteByte('l')
		b.WriteString(o.Value)
		b.WriteByte(0)
		b.WriteString(string(o.Datatype))
		b.WriteByte(0)
		b.WriteString(o.Lang)
	}
	return b.String()
}
