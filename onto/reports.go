package onto

import "github.com/smallnest/ontograph/rdf"

// OntologySelection is the generator's answer to "which known ontology fits
// this document".
type OntologySelection struct {
	ShortName string
	Present   bool
}

// OntologyDraft is a generated ontology addendum: metadata plus the abstract
// triples describing classes and properties.
type OntologyDraft struct {
	ShortName   string
	Title       string
	Description string
	Version     string
	IRI         string
	Graph       *rdf.Graph
}

// Ontology converts the draft into a domain Ontology.
func (d *OntologyDraft) Ontology() *Ontology {
	g := d.Graph
	if g == nil {
		g = rdf.NewGraph()
	}
	version := d.Version
	if version == "" {
		version = "0.0.0"
	}
	return &Ontology{
		ShortName:   d.ShortName,
		Title:       d.Title,
		Description: d.Description,
		Version:     version,
		IRI:         d.IRI,
		Graph:       g,
	}
}

// FactsDraft is a generated graph of concrete facts for one chunk, plus the
// generator's own quality estimates.
type FactsDraft struct {
	Graph                  *rdf.Graph
	OntologyRelevanceScore float64
	TriplesScore           float64
}

// OntologyCritique is the critic's verdict on an ontology update.
type OntologyCritique struct {
	Success bool
	Score   float64
	Comment string
}

// FactsCritique is the critic's verdict on a chunk's facts graph.
type FactsCritique struct {
	Success bool
	Score   float64
	Comment string
}
