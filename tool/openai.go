package tool

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/smallnest/ontograph/onto"
)

// OpenAIGenerator implements Generator directly over the OpenAI chat API,
// for deployments that do not go through langchaingo. It asks the API for a
// JSON-object response so replies need no fence stripping.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator wraps an OpenAI client. An empty model selects
// gpt-4o-mini.
func NewOpenAIGenerator(client *openai.Client, model string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{client: client, model: model}
}

func (g *OpenAIGenerator) complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model call: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) SelectOntology(ctx context.Context, req SelectOntologyRequest) (*onto.OntologySelection, error) {
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

func (g *OpenAIGenerator) DraftOntology(ctx context.Context, req DraftOntologyRequest) (*onto.OntologyDraft, error) {
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

func (g *OpenAIGenerator) DraftFacts(ctx context.Context, req DraftFactsRequest) (*onto.FactsDraft, error) {
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

func (g *OpenAIGenerator) CritiqueOntology(ctx context.Context, req CritiqueOntologyRequest) (*onto.OntologyCritique, error) {
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

func (g *OpenAIGenerator) CritiqueFacts(ctx context.Context, req CritiqueFactsRequest) (*onto.FactsCritique, error) {
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

var _ Generator = (*OpenAIGenerator)(nil)
