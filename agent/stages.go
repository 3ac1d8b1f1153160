package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/smallnest/ontograph/log"
	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/tool"
	"github.com/smallnest/ontograph/validate"
)

// promptExcerptLimit caps the document text shown to the ontology selector.
const promptExcerptLimit = 1000

// convertDocument turns raw input files into markdown text and derives the
// document identity from it. Pure text input passes through unchanged.
func (a *Agent) convertDocument(ctx context.Context, s *onto.State) (*onto.State, error) {
	if len(s.Files) > 0 {
		names := make([]string, 0, len(s.Files))
		for name := range s.Files {
			names = append(names, name)
		}
		sort.Strings(names)

		var parts []string
		for _, name := range names {
			text, err := a.box.Converter.Convert(name, s.Files[name])
			if err != nil {
				return s, fmt.Errorf("convert %s: %w", name, err)
			}
			parts = append(parts, text)
		}
		s.InputText = strings.Join(parts, "\n\n")
	}

	s.DocHID = onto.TextHash(s.InputText)
	s.Status = onto.StatusSuccess
	log.Debug("converted document %s, %d bytes", s.DocHID, len(s.InputText))
	return s, nil
}

// chunkText splits the document into chunks scoped under the document IRI.
func (a *Agent) chunkText(ctx context.Context, s *onto.State) (*onto.State, error) {
	pieces := a.box.Chunker.Split(s.InputText)
	if s.MaxChunks > 0 && len(pieces) > s.MaxChunks {
		pieces = pieces[:s.MaxChunks]
	}

	s.Chunks = s.Chunks[:0]
	for _, piece := range pieces {
		s.Chunks = append(s.Chunks, onto.NewChunk(piece, s.DocIRI()))
	}
	s.Status = onto.StatusSuccess
	log.Info("document %s split into %d chunks", s.DocHID, len(s.Chunks))
	return s, nil
}

// chunksEmptyCheck decides whether chunk processing continues. A finished
// current chunk is banked first; then either the next chunk is popped
// (status failed, meaning "keep looping") or the queue is empty (status
// success, meaning "go aggregate").
func (a *Agent) chunksEmptyCheck(ctx context.Context, s *onto.State) (*onto.State, error) {
	if s.CurrentChunk != nil {
		s.CurrentChunk.Processed = true
		s.ChunksProcessed = append(s.ChunksProcessed, s.CurrentChunk)
		s.CurrentChunk = nil
	}

	if len(s.Chunks) == 0 {
		s.Status = onto.StatusSuccess
		return s, nil
	}

	s.CurrentChunk = s.Chunks[0]
	s.Chunks = s.Chunks[1:]
	s.ResetVisits()
	s.ClearFailure()
	s.Status = onto.StatusFailed
	return s, nil
}

// selectOntology asks the generator which known ontology covers the current
// chunk. An unusable reply falls back to the void ontology; selection never
// fails the run.
func (a *Agent) selectOntology(ctx context.Context, s *onto.State) (*onto.State, error) {
	choices := a.box.Ontology.Choices()
	if len(choices) == 0 {
		s.CurrentOntology = onto.NewVoidOntology()
		s.Status = onto.StatusSuccess
		return s, nil
	}

	selection, err := a.box.Generator.SelectOntology(ctx, tool.SelectOntologyRequest{
		Text:       excerpt(s.CurrentChunk.Text, promptExcerptLimit),
		Ontologies: choices,
	})
	if err != nil {
		log.Warn("ontology selection failed, using void ontology: %v", err)
		s.CurrentOntology = onto.NewVoidOntology()
		s.Status = onto.StatusSuccess
		return s, nil
	}

	if selection.Present {
		s.CurrentOntology = a.box.Ontology.Get(selection.ShortName)
	} else {
		s.CurrentOntology = onto.NewVoidOntology()
	}
	s.Status = onto.StatusSuccess
	return s, nil
}

// renderOntology drafts an ontology addendum for the current chunk. The
// critic's comment from a rejected earlier attempt is fed back into the
// prompt.
func (a *Agent) renderOntology(ctx context.Context, s *onto.State) (*onto.State, error) {
	s.CountVisit(onto.StageRenderOntology)

	draft, err := a.box.Generator.DraftOntology(ctx, tool.DraftOntologyRequest{
		ChunkText:      s.CurrentChunk.Text,
		OntologyTurtle: s.CurrentOntology.Graph.EncodeTurtle(),
		Feedback:       s.FailureReason,
	})
	if err != nil {
		s.SetFailure(onto.StageRenderOntology, onto.FailureContent, err.Error(), 0)
		return s, nil
	}

	s.OntologyAddendum = draft.Ontology()
	s.ClearFailure()
	return s, nil
}

// criticiseOntology judges the pending addendum. An empty addendum passes
// without a model call. On acceptance the addendum joins the working set and
// becomes the current ontology.
func (a *Agent) criticiseOntology(ctx context.Context, s *onto.State) (*onto.State, error) {
	s.CountVisit(onto.StageCriticiseOntology)

	if s.OntologyAddendum == nil || s.OntologyAddendum.Graph.Len() == 0 {
		s.ClearFailure()
		return s, nil
	}

	critique, err := a.box.Generator.CritiqueOntology(ctx, tool.CritiqueOntologyRequest{
		ChunkText:      s.CurrentChunk.Text,
		OntologyTurtle: s.OntologyAddendum.Graph.EncodeTurtle(),
	})
	if err != nil {
		s.SetFailure(onto.StageCriticiseOntology, onto.FailureContent, err.Error(), 0)
		return s, nil
	}
	if !critique.Success {
		s.SetFailure(onto.StageCriticiseOntology, onto.FailureContent, critique.Comment, critique.Score)
		return s, nil
	}

	s.CurrentOntology = a.box.Ontology.Update(s.OntologyAddendum)
	s.OntologyAddendum = onto.NewVoidOntology()
	s.SuccessScore = critique.Score
	s.ClearFailure()
	return s, nil
}

// renderFacts extracts concrete facts for the current chunk into the chunk
// graph, minting entity identifiers inside the chunk namespace.
func (a *Agent) renderFacts(ctx context.Context, s *onto.State) (*onto.State, error) {
	s.CountVisit(onto.StageRenderFacts)

	draft, err := a.box.Generator.DraftFacts(ctx, tool.DraftFactsRequest{
		ChunkText:      s.CurrentChunk.Text,
		OntologyTurtle: s.CurrentOntology.Graph.EncodeTurtle(),
		ChunkNamespace: s.CurrentChunk.Namespace(),
		Feedback:       s.FailureReason,
	})
	if err != nil {
		s.SetFailure(onto.StageRenderFacts, onto.FailureContent, err.Error(), 0)
		return s, nil
	}

	s.CurrentChunk.Graph.AddAll(draft.Graph)
	for prefix, ns := range draft.Graph.Namespaces() {
		s.CurrentChunk.Graph.Bind(prefix, ns)
	}
	s.ClearFailure()
	return s, nil
}

// sublimateOntology separates ontology-level statements from the chunk
// facts. A statement touching the chunk namespace (as subject, predicate or
// IRI object) is a fact; everything else is abstract and moves into the
// working ontology. Both partitions inherit the ontology's own namespace
// binding; an ontology whose graph declares no prefix for its own namespace
// is an internal-consistency problem and is recorded as a technical failure,
// not a content one. With only the void ontology in play there is nowhere to
// move abstract statements, so the chunk keeps its whole graph. The
// remaining facts are then repaired into a single connected component.
func (a *Agent) sublimateOntology(ctx context.Context, s *onto.State) (*onto.State, error) {
	facts := s.CurrentChunk.Graph
	if !s.CurrentOntology.IsVoid() {
		ns := s.CurrentOntology.Namespace()
		prefix, ok := s.CurrentOntology.Graph.PrefixFor(ns)
		if !ok {
			s.SetFailure(onto.StageSublimateOntology, onto.FailureTechnical,
				fmt.Sprintf("ontology %s declares no prefix for its namespace %s", s.CurrentOntology.ShortName, ns), 0)
			return s, nil
		}

		inside, outside := facts.Partition(s.CurrentChunk.Namespace())
		inside.Bind(prefix, ns)
		outside.Bind(prefix, ns)
		if outside.Len() > 0 {
			s.CurrentOntology.Graph.AddAll(outside)
			log.Debug("sublimated %d statements into ontology %s", outside.Len(), s.CurrentOntology.ShortName)
		}
		facts = inside
	}

	s.CurrentChunk.Graph = validate.New(facts, s.Domain).Repair(s.CurrentChunk.IRI())
	s.Status = onto.StatusSuccess
	return s, nil
}

// criticiseFacts judges the chunk's facts graph against its ontology.
func (a *Agent) criticiseFacts(ctx context.Context, s *onto.State) (*onto.State, error) {
	s.CountVisit(onto.StageCriticiseFacts)

	if s.CurrentChunk.Graph.Len() == 0 {
		s.SetFailure(onto.StageCriticiseFacts, onto.FailureContent, "no facts were extracted from the chunk", 0)
		return s, nil
	}

	critique, err := a.box.Generator.CritiqueFacts(ctx, tool.CritiqueFactsRequest{
		ChunkText:      s.CurrentChunk.Text,
		FactsTurtle:    s.CurrentChunk.Graph.EncodeTurtle(),
		OntologyTurtle: s.CurrentOntology.Graph.EncodeTurtle(),
	})
	if err != nil {
		s.SetFailure(onto.StageCriticiseFacts, onto.FailureContent, err.Error(), 0)
		return s, nil
	}
	if !critique.Success {
		s.SetFailure(onto.StageCriticiseFacts, onto.FailureContent, critique.Comment, critique.Score)
		return s, nil
	}

	s.SuccessScore = critique.Score
	s.ClearFailure()
	return s, nil
}

// aggregateFacts merges all processed chunk graphs into the document facts
// graph, persists it and flushes the ontology working set.
func (a *Agent) aggregateFacts(ctx context.Context, s *onto.State) (*onto.State, error) {
	s.FactsGraph = a.aggregator.Aggregate(s.ChunksProcessed, s.DocIRI())
	report := validate.New(s.FactsGraph, s.Domain).Validate()
	log.Info("document %s aggregated: %d chunks, %d statements, %d entities in %d components",
		s.DocHID, len(s.ChunksProcessed), s.FactsGraph.Len(),
		report.TotalEntities, len(report.Components))

	if a.box.Store != nil {
		if err := a.box.Store.StoreFacts(ctx, s.FactsGraph, s.DocHID); err != nil {
			s.SetFailure(onto.StageAggregateFacts, onto.FailureTechnical, err.Error(), 0)
			return s, nil
		}
	}
	if err := a.box.Ontology.Flush(ctx); err != nil {
		s.SetFailure(onto.StageAggregateFacts, onto.FailureTechnical, err.Error(), 0)
		return s, nil
	}
	return s, nil
}

// excerpt truncates text to at most n runes.
func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
