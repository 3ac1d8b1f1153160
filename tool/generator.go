package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/rdf"
)

// OntologyChoice describes one known ontology offered to the selector.
type OntologyChoice struct {
	ShortName   string
	Description string
}

// SelectOntologyRequest asks which known ontology fits a document.
type SelectOntologyRequest struct {
	Text       string
	Ontologies []OntologyChoice
}

// DraftOntologyRequest asks for an ontology addendum covering a chunk.
// Feedback carries the critic's comment from a failed earlier attempt, empty
// on the first try.
type DraftOntologyRequest struct {
	ChunkText      string
	OntologyTurtle string
	Feedback       string
}

// DraftFactsRequest asks for concrete facts extracted from a chunk.
type DraftFactsRequest struct {
	ChunkText      string
	OntologyTurtle string
	ChunkNamespace string
	Feedback       string
}

// CritiqueOntologyRequest asks for a verdict on an ontology addendum.
type CritiqueOntologyRequest struct {
	ChunkText      string
	OntologyTurtle string
}

// CritiqueFactsRequest asks for a verdict on a chunk's facts graph.
type CritiqueFactsRequest struct {
	ChunkText      string
	FactsTurtle    string
	OntologyTurtle string
}

// Generator produces ontology and fact drafts and critiques them. The two
// shipped implementations call hosted language models; tests substitute a
// canned one.
type Generator interface {
	SelectOntology(ctx context.Context, req SelectOntologyRequest) (*onto.OntologySelection, error)
	DraftOntology(ctx context.Context, req DraftOntologyRequest) (*onto.OntologyDraft, error)
	DraftFacts(ctx context.Context, req DraftFactsRequest) (*onto.FactsDraft, error)
	CritiqueOntology(ctx context.Context, req CritiqueOntologyRequest) (*onto.OntologyCritique, error)
	CritiqueFacts(ctx context.Context, req CritiqueFactsRequest) (*onto.FactsCritique, error)
}

// Wire formats shared by the model-backed generators. Graphs travel as
// Turtle strings inside the JSON payload.

type selectionWire struct {
	ShortName string `json:"short_name"`
	Present   bool   `json:"present"`
}

type ontologyDraftWire struct {
	ShortName   string `json:"short_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
	IRI         string `json:"iri"`
	Turtle      string `json:"turtle"`
}

type factsDraftWire struct {
	Turtle                 string  `json:"turtle"`
	OntologyRelevanceScore float64 `json:"ontology_relevance_score"`
	TriplesScore           float64 `json:"triples_score"`
}

type critiqueWire struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// decodeWire parses a model reply into the wire struct, tolerating markdown
// code fences around the JSON body.
func decodeWire(reply string, out any) error {
	body := strings.TrimSpace(reply)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		if end := strings.LastIndex(body, "```"); end >= 0 {
			body = body[:end]
		}
		body = strings.TrimSpace(body)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("parse model reply: %w", err)
	}
	return nil
}

// decodeGraph parses a Turtle fragment from a model reply, injecting the
// well-known prefix declarations models habitually omit.
func decodeGraph(turtle string) (*rdf.Graph, error) {
	g, err := rdf.DecodeTurtle(rdf.EnsurePrefixes(turtle))
	if err != nil {
		return nil, fmt.Errorf("parse model turtle: %w", err)
	}
	return g, nil
}

func (w *ontologyDraftWire) draft() (*onto.OntologyDraft, error) {
	g, err := decodeGraph(w.Turtle)
	if err != nil {
		return nil, err
	}
	return &onto.OntologyDraft{
		ShortName:   w.ShortName,
		Title:       w.Title,
		Description: w.Description,
		Version:     w.Version,
		IRI:         w.IRI,
		Graph:       g,
	}, nil
}

func (w *factsDraftWire) draft() (*onto.FactsDraft, error) {
	g, err := decodeGraph(w.Turtle)
	if err != nil {
		return nil, err
	}
	return &onto.FactsDraft{
		Graph:                  g,
		OntologyRelevanceScore: w.OntologyRelevanceScore,
		TriplesScore:           w.TriplesScore,
	}, nil
}
