package tool

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/smallnest/ontograph/onto"
)

// LangChainGenerator implements Generator over any langchaingo model.
type LangChainGenerator struct {
	model       llms.Model
	temperature float64
}

// NewLangChainGenerator wraps a langchaingo model. Generation runs at
// temperature zero for reproducibility.
func NewLangChainGenerator(model llms.Model) *LangChainGenerator {
	return &LangChainGenerator{model: model, temperature: 0}
}

func (g *LangChainGenerator) complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	response, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("model call: empty response")
	}
	return response.Choices[0].Content, nil
}

func (g *LangChainGenerator) SelectOntology(ctx context.Context, req SelectOntologyRequest) (*onto.OntologySelection, error) {
	reply, err := g.complete(ctx, selectOntologySystem, selectOntologyPrompt(req))
	if err != nil {
		return nil, err
	}
	var wire selectionWire
	if err := decodeWire(reply, &wire); err != nil {
		return nil, err
	}
	return &onto.OntologySelection{ShortName: wire.ShortName, Present: wire.Present}, nil
}

func (g *LangChainGenerator) DraftOntology(ctx context.Context, req DraftOntologyRequest) (*onto.OntologyDraft, error) {
	reply, err := g.complete(ctx, draftOntologySystem, draftOntologyPrompt(req))
	if err != nil {
		return nil, err
	}
	var wire ontologyDraftWire
	if err := decodeWire(reply, &wire); err != nil {
		return nil, err
	}
	return wire.draft()
}

func (g *LangChainGenerator) DraftFacts(ctx context.Context, req DraftFactsRequest) (*onto.FactsDraft, error) {
	reply, err := g.complete(ctx, draftFactsSystem, draftFactsPrompt(req))
	if err != nil {
		return nil, err
	}
	var wire factsDraftWire
	if err := decodeWire(reply, &wire); err != nil {
		return nil, err
	}
	return wire.draft()
}

func (g *LangChainGenerator) CritiqueOntology(ctx context.Context, req CritiqueOntologyRequest) (*onto.OntologyCritique, error) {
	reply, err := g.complete(ctx, critiqueOntologySystem, critiqueOntologyPrompt(req))
	if err != nil {
		return nil, err
	}
	var wire critiqueWire
	if err := decodeWire(reply, &wire); err != nil {
		return nil, err
	}
	return &onto.OntologyCritique{Success: wire.Success, Score: wire.Score, Comment: wire.Comment}, nil
}

func (g *LangChainGenerator) CritiqueFacts(ctx context.Context, req CritiqueFactsRequest) (*onto.FactsCritique, error) {
	reply, err := g.complete(ctx, critiqueFactsSystem, critiqueFactsPrompt(req))
	if err != nil {
		return nil, err
	}
	var wire critiqueWire
	if err := decodeWire(reply, &wire); err != nil {
		return nil, err
	}
	return &onto.FactsCritique{Success: wire.Success, Score: wire.Score, Comment: wire.Comment}, nil
}

var _ Generator = (*LangChainGenerator)(nil)
