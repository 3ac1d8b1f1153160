package rdf

// Well-known vocabulary namespaces.
const (
	RDFNS    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS   = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNS    = "http://www.w3.org/2002/07/owl#"
	XSDNS    = "http://www.w3.org/2001/XMLSchema#"
	SKOSNS   = "http://www.w3.org/2004/02/skos/core#"
	FOAFNS   = "http://xmlns.com/foaf/0.1/"
	SchemaNS = "http://schema.org/"
	PROVNS   = "http://www.w3.org/ns/prov#"
)

// Frequently used vocabulary terms.
var (
	RDFType     = IRI(RDFNS + "type")
	RDFProperty = IRI(RDFNS + "Property")

	RDFSLabel   = IRI(RDFSNS + "label")
	RDFSComment = IRI(RDFSNS + "comment")
	RDFSDomain  = IRI(RDFSNS + "domain")
	RDFSRange   = IRI(RDFSNS + "range")
	RDFSClass   = IRI(RDFSNS + "Class")

	OWLOntology    = IRI(OWLNS + "Ontology")
	OWLVersionInfo = IRI(OWLNS + "versionInfo")

	SKOSAltLabel = IRI(SKOSNS + "altLabel")

	XSDInteger = IRI(XSDNS + "integer")
	XSDDecimal = IRI(XSDNS + "decimal")
	XSDBoolean = IRI(XSDNS + "boolean")
	XSDDate    = IRI(XSDNS + "date")

	SchemaHasPart = IRI(SchemaNS + "hasPart")

	PROVEntity         = IRI(PROVNS + "Entity")
	PROVWasPartOf      = IRI(PROVNS + "wasPartOf")
	PROVWasGeneratedBy = IRI(PROVNS + "wasGeneratedBy")
	PROVWasQuotedFrom  = IRI(PROVNS + "wasQuotedFrom")
)

// CommonPrefixes are the prefix bindings the Turtle decoder injects when the
// input declares none of its own for these vocabularies.
var CommonPrefixes = map[string]string{
	"rdf":    RDFNS,
	"rdfs":   RDFSNS,
	"owl":    OWLNS,
	"xsd":    XSDNS,
	"skos":   SKOSNS,
	"foaf":   FOAFNS,
	"schema": SchemaNS,
	"prov":   PROVNS,
	"ex":     "http://example.org/",
}
