package onto

import (
	"fmt"
	"strings"

	"github.com/smallnest/ontograph/rdf"
)

// Sentinel identity of the void ontology, used before any ontology has been
// selected or drafted for a document.
const (
	VoidOntologyName = "__void_ontology_name"
	VoidOntologyIRI  = "NULL"
)

// OntologyNamespace derives the namespace of an ontology IRI ("#" separator).
func OntologyNamespace(iri string) string { return iri + "#" }

// ResourceNamespace derives the namespace of a document or chunk IRI
// ("/" separator).
func ResourceNamespace(iri string) string { return iri + "/" }

// Ontology is a named, versioned triple store plus descriptive metadata.
type Ontology struct {
	ShortName   string
	Title       string
	Description string
	Version     string
	IRI         string
	Graph       *rdf.Graph
}

// NewVoidOntology returns the sentinel ontology with an empty graph.
func NewVoidOntology() *Ontology {
	return &Ontology{
		ShortName:   VoidOntologyName,
		Title:       "null title",
		Description: "null description",
		Version:     "0.0.0",
		IRI:         VoidOntologyIRI,
		Graph:       rdf.NewGraph(),
	}
}

// IsVoid reports whether this is the sentinel ontology.
func (o *Ontology) IsVoid() bool {
	return o == nil || o.IRI == VoidOntologyIRI
}

// Namespace returns the ontology namespace derived from its IRI.
func (o *Ontology) Namespace() string {
	return OntologyNamespace(o.IRI)
}

// Describe renders the metadata block shown to the ontology selector.
func (o *Ontology) Describe() string {
	return fmt.Sprintf("Ontology name: %s\nDescription: %s\nOntology IRI: %s\n",
		o.ShortName, o.Description, o.IRI)
}

// Merge adds the other ontology's statements to this one and takes the
// other's metadata.
func (o *Ontology) Merge(other *Ontology) {
	o.Graph.AddAll(other.Graph)
	o.ShortName = other.ShortName
	o.Title = other.Title
	o.Description = other.Description
	o.Version = other.Version
	o.IRI = other.IRI
}

// WithMetadata returns a copy of the ontology graph with the descriptive
// metadata embedded as statements about the ontology IRI, so a serialized
// ontology round-trips through a triple store without a side channel.
func (o *Ontology) WithMetadata() *rdf.Graph {
	g := o.Graph.Clone()
	subject := rdf.IRI(o.IRI)
	g.Add(rdf.Statement{Subject: subject, Predicate: rdf.RDFType, Object: rdf.OWLOntology})
	g.Add(rdf.Statement{Subject: subject, Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral(o.Title)})
	g.Add(rdf.Statement{Subject: subject, Predicate: rdf.RDFSComment, Object: rdf.NewLiteral(o.Description)})
	g.Add(rdf.Statement{Subject: subject, Predicate: rdf.OWLVersionInfo, Object: rdf.NewLiteral(o.Version)})
	g.Add(rdf.Statement{Subject: subject, Predicate: rdf.SKOSAltLabel, Object: rdf.NewLiteral(o.ShortName)})
	return g
}

// FromGraph reconstructs an ontology from a graph carrying embedded
// metadata. It returns nil when the graph declares no owl:Ontology subject.
func FromGraph(g *rdf.Graph) *Ontology {
	var subject rdf.IRI
	for _, st := range g.Statements() {
		if st.Predicate == rdf.RDFType {
			if obj, ok := st.Object.(rdf.IRI); ok && obj == rdf.OWLOntology {
				subject = st.Subject
				break
			}
		}
	}
	if subject == "" {
		return nil
	}
	literal := func(predicate rdf.IRI) string {
		lit, _ := g.FirstLiteral(subject, predicate)
		return lit.Value
	}
	o := &Ontology{
		IRI:         string(subject),
		Title:       literal(rdf.RDFSLabel),
		Description: literal(rdf.RDFSComment),
		Version:     literal(rdf.OWLVersionInfo),
		ShortName:   literal(rdf.SKOSAltLabel),
		Graph:       g,
	}
	if o.Version == "" {
		o.Version = "0.0.0"
	}
	if o.ShortName == "" {
		o.ShortName = o.IRIID()
	}
	return o
}

// IRIID returns the trailing identifier segment of the ontology IRI, used in
// deterministic storage names. Empty segments fall back to "default".
func (o *Ontology) IRIID() string {
	id := rdf.IRI(o.IRI).LocalName()
	if idx := strings.IndexByte(id, '#'); idx >= 0 {
		id = id[:idx]
	}
	if id == "" {
		id = "default"
	}
	return id
}
