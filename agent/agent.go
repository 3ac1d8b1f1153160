package agent

import (
	"context"
	"fmt"

	"github.com/smallnest/ontograph/aggregate"
	"github.com/smallnest/ontograph/graph"
	"github.com/smallnest/ontograph/log"
	"github.com/smallnest/ontograph/onto"
	"github.com/smallnest/ontograph/tool"
)

// Agent runs the document-to-knowledge-graph workflow: convert, chunk, then
// per chunk a retry-bounded ontology and fact generation loop, and finally
// aggregation into one document graph.
//
// An Agent is safe to reuse across documents; each run owns its own state.
type Agent struct {
	box        *tool.ToolBox
	aggregator *aggregate.Aggregator
	runnable   *graph.Runnable[*onto.State]

	domain    string
	maxVisits int
	maxChunks int
}

// Option configures an Agent.
type Option func(*Agent)

// WithDomain scopes document IRIs under the given domain.
func WithDomain(domain string) Option {
	return func(a *Agent) { a.domain = domain }
}

// WithMaxVisits bounds retries per generation stage.
func WithMaxVisits(n int) Option {
	return func(a *Agent) { a.maxVisits = n }
}

// WithMaxChunks caps how many chunks of a document are processed.
func WithMaxChunks(n int) Option {
	return func(a *Agent) { a.maxChunks = n }
}

// WithSimilarityThreshold sets the label similarity at or above which
// identifiers merge during aggregation.
func WithSimilarityThreshold(threshold float64) Option {
	return func(a *Agent) { a.aggregator = aggregate.NewAggregator(threshold) }
}

// New creates an agent over a toolbox and compiles its workflow.
func New(box *tool.ToolBox, opts ...Option) (*Agent, error) {
	a := &Agent{
		box:        box,
		aggregator: aggregate.NewAggregator(0),
		domain:     onto.DefaultDomain,
		maxVisits:  onto.DefaultMaxVisits,
	}
	for _, opt := range opts {
		opt(a)
	}

	runnable, err := a.buildWorkflow().Compile()
	if err != nil {
		return nil, fmt.Errorf("compile workflow: %w", err)
	}
	a.runnable = runnable
	return a, nil
}

// buildWorkflow wires the stages into a state graph.
//
// The per-chunk loop is driven by two kinds of conditional edges: the chunk
// queue check routes between aggregation and the next chunk, and each
// generation stage routes between proceeding and retrying based on its
// status and visit budget.
func (a *Agent) buildWorkflow() *graph.StateGraph[*onto.State] {
	g := graph.NewStateGraph[*onto.State]()

	g.AddNode(string(onto.StageConvert), "convert input files to markdown text", a.convertDocument)
	g.AddNode(string(onto.StageChunk), "split the document into chunks", a.chunkText)
	g.AddNode(string(onto.StageChunksEmpty), "pop the next chunk or finish", a.chunksEmptyCheck)
	g.AddNode(string(onto.StageSelectOntology), "pick the ontology covering the chunk", a.selectOntology)
	g.AddNode(string(onto.StageRenderOntology), "draft an ontology addendum", a.renderOntology)
	g.AddNode(string(onto.StageCriticiseOntology), "review the ontology addendum", a.criticiseOntology)
	g.AddNode(string(onto.StageRenderFacts), "extract facts from the chunk", a.renderFacts)
	g.AddNode(string(onto.StageSublimateOntology), "separate ontology statements from facts", a.sublimateOntology)
	g.AddNode(string(onto.StageCriticiseFacts), "review the extracted facts", a.criticiseFacts)
	g.AddNode(string(onto.StageAggregateFacts), "merge chunk graphs into the document graph", a.aggregateFacts)

	g.SetEntryPoint(string(onto.StageConvert))
	g.AddEdge(string(onto.StageConvert), string(onto.StageChunk))
	g.AddEdge(string(onto.StageChunk), string(onto.StageChunksEmpty))

	g.AddConditionalEdge(string(onto.StageChunksEmpty), func(ctx context.Context, s *onto.State) string {
		if s.Status == onto.StatusSuccess {
			return string(onto.StageAggregateFacts)
		}
		return string(onto.StageSelectOntology)
	})

	g.AddEdge(string(onto.StageSelectOntology), string(onto.StageRenderOntology))
	g.AddConditionalEdge(string(onto.StageRenderOntology),
		a.route(onto.StageRenderOntology, onto.StageCriticiseOntology, onto.StageRenderOntology))
	g.AddConditionalEdge(string(onto.StageCriticiseOntology),
		a.route(onto.StageCriticiseOntology, onto.StageRenderFacts, onto.StageRenderOntology))
	g.AddConditionalEdge(string(onto.StageRenderFacts),
		a.route(onto.StageRenderFacts, onto.StageSublimateOntology, onto.StageRenderFacts))
	g.AddEdge(string(onto.StageSublimateOntology), string(onto.StageCriticiseFacts))
	g.AddConditionalEdge(string(onto.StageCriticiseFacts),
		a.route(onto.StageCriticiseFacts, onto.StageChunksEmpty, onto.StageRenderFacts))

	g.AddEdge(string(onto.StageAggregateFacts), graph.END)
	return g
}

// route builds the retry decision for one generation stage: proceed on
// success, retry on failure while the stage's visit budget lasts, and force
// progress once it is spent. Forcing keeps the failure record on the state
// so the final result still names what went wrong.
func (a *Agent) route(stage, onSuccess, onRetry onto.Stage) func(ctx context.Context, s *onto.State) string {
	return func(ctx context.Context, s *onto.State) string {
		if s.Status == onto.StatusSuccess {
			return string(onSuccess)
		}
		if s.Visits(stage) >= s.MaxVisits {
			log.Warn("stage %s exhausted %d attempts, forcing progress: %s", stage, s.MaxVisits, s.FailureReason)
			s.ForceSuccess()
			return string(onSuccess)
		}
		return string(onRetry)
	}
}

// AddListener registers a workflow listener, notified of every stage event.
func (a *Agent) AddListener(l graph.Listener[*onto.State]) {
	a.runnable.AddListener(l)
}

// ProcessText runs the workflow over a markdown or plain text document.
func (a *Agent) ProcessText(ctx context.Context, text string) (*onto.State, error) {
	s := a.newState()
	s.InputText = text
	return a.run(ctx, s)
}

// ProcessFiles runs the workflow over raw input files keyed by name.
func (a *Agent) ProcessFiles(ctx context.Context, files map[string][]byte) (*onto.State, error) {
	s := a.newState()
	s.Files = files
	return a.run(ctx, s)
}

func (a *Agent) newState() *onto.State {
	s := onto.NewState(a.domain)
	s.MaxVisits = a.maxVisits
	s.MaxChunks = a.maxChunks
	return s
}

func (a *Agent) run(ctx context.Context, s *onto.State) (*onto.State, error) {
	if err := a.box.Ontology.Load(ctx); err != nil {
		return nil, err
	}
	return a.runnable.Invoke(ctx, s)
}
