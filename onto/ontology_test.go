package onto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/ontograph/rdf"
)

func TestVoidOntology(t *testing.T) {
	o := NewVoidOntology()
	assert.True(t, o.IsVoid())
	assert.Equal(t, VoidOntologyName, o.ShortName)
	assert.Zero(t, o.Graph.Len())

	var nilOntology *Ontology
	assert.True(t, nilOntology.IsVoid())
}

func TestNamespaces(t *testing.T) {
	assert.Equal(t, "https://example.com/fin#", OntologyNamespace("https://example.com/fin"))
	assert.Equal(t, "https://example.com/doc/1/", ResourceNamespace("https://example.com/doc/1"))

	o := &Ontology{IRI: "https://example.com/fin"}
	assert.Equal(t, "https://example.com/fin#", o.Namespace())
}

func TestOntologyMergeTakesMetadataAndStatements(t *testing.T) {
	base := &Ontology{ShortName: "old", Version: "1.0.0", IRI: "https://example.com/old", Graph: rdf.NewGraph()}
	base.Graph.Add(rdf.Statement{Subject: "https://example.com/old#A", Predicate: rdf.RDFType, Object: rdf.RDFSClass})

	other := &Ontology{ShortName: "fin", Title: "Finance", Version: "1.1.0", IRI: "https://example.com/fin", Graph: rdf.NewGraph()}
	other.Graph.Add(rdf.Statement{Subject: "https://example.com/fin#B", Predicate: rdf.RDFType, Object: rdf.RDFSClass})

	base.Merge(other)
	assert.Equal(t, "fin", base.ShortName)
	assert.Equal(t, "1.1.0", base.Version)
	assert.Equal(t, 2, base.Graph.Len())
}

func TestOntologyDraftDefaults(t *testing.T) {
	d := &OntologyDraft{ShortName: "fin", IRI: "https://example.com/fin"}
	o := d.Ontology()
	assert.Equal(t, "0.0.0", o.Version)
	require.NotNil(t, o.Graph)
	assert.Zero(t, o.Graph.Len())
}

func TestOntologyMetadataRoundTrip(t *testing.T) {
	o := &Ontology{
		ShortName:   "fin",
		Title:       "Finance",
		Description: "Terms for financial filings",
		Version:     "1.2.0",
		IRI:         "https://example.com/fin",
		Graph:       rdf.NewGraph(),
	}
	o.Graph.Add(rdf.Statement{Subject: "https://example.com/fin#Loan", Predicate: rdf.RDFType, Object: rdf.RDFSClass})

	g := o.WithMetadata()
	// The source graph is untouched.
	assert.Equal(t, 1, o.Graph.Len())

	decoded, err := rdf.DecodeTurtle(g.EncodeTurtle())
	require.NoError(t, err)

	restored := FromGraph(decoded)
	require.NotNil(t, restored)
	assert.Equal(t, o.ShortName, restored.ShortName)
	assert.Equal(t, o.Title, restored.Title)
	assert.Equal(t, o.Description, restored.Description)
	assert.Equal(t, o.Version, restored.Version)
	assert.Equal(t, o.IRI, restored.IRI)
	assert.True(t, restored.Graph.Has(rdf.Statement{
		Subject: "https://example.com/fin#Loan", Predicate: rdf.RDFType, Object: rdf.RDFSClass,
	}))
}

func TestFromGraphWithoutOntologyDeclaration(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Statement{Subject: "https://example.com/a", Predicate: rdf.RDFSLabel, Object: rdf.NewLiteral("A")})
	assert.Nil(t, FromGraph(g))
}

func TestIRIID(t *testing.T) {
	assert.Equal(t, "fin", (&Ontology{IRI: "https://example.com/onto/fin"}).IRIID())
	assert.Equal(t, "default", (&Ontology{IRI: "https://example.com/onto/"}).IRIID())
}
