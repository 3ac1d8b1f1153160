package onto

import "github.com/smallnest/ontograph/rdf"

// Status is the success/failure flag routed on by the workflow.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Stage names one pipeline stage. Stages double as workflow node names.
type Stage string

const (
	StageConvert           Stage = "convert_document"
	StageChunk             Stage = "chunk_text"
	StageSelectOntology    Stage = "select_ontology"
	StageRenderOntology    Stage = "render_ontology"
	StageCriticiseOntology Stage = "criticise_ontology"
	StageRenderFacts       Stage = "render_facts"
	StageCriticiseFacts    Stage = "criticise_facts"
	StageSublimateOntology Stage = "sublimate_ontology"
	StageChunksEmpty       Stage = "chunks_empty_check"
	StageAggregateFacts    Stage = "aggregate_facts"
)

// FailureKind separates LLM-content failures from internal technical ones.
type FailureKind string

const (
	// FailureContent marks output a generation or critique stage judged
	// unsatisfactory, or an unparsable generator response.
	FailureContent FailureKind = "content"
	// FailureTechnical marks an internal-consistency problem such as a
	// missing namespace binding or a store error.
	FailureTechnical FailureKind = "technical"
)

// DefaultMaxVisits bounds retries per generation stage.
const DefaultMaxVisits = 3

// DefaultDomain scopes document IRIs when the caller provides none.
const DefaultDomain = "https://example.com"

// State is the run state threaded through the workflow for one document.
// Exactly one State exists per in-flight document; it is owned and mutated
// by a single logical thread.
type State struct {
	InputText string
	Domain    string
	DocHID    string

	// Files holds the raw inputs to convert, keyed by file name.
	Files map[string][]byte

	CurrentChunk    *Chunk
	Chunks          []*Chunk
	ChunksProcessed []*Chunk
	MaxChunks       int // 0 means unlimited

	CurrentOntology  *Ontology
	OntologyAddendum *Ontology
	FactsGraph       *rdf.Graph

	Status        Status
	FailureStage  Stage
	FailureKind   FailureKind
	FailureReason string
	SuccessScore  float64

	NodeVisits map[Stage]int
	MaxVisits  int
}

// NewState creates a run state with defaults applied.
func NewState(domain string) *State {
	if domain == "" {
		domain = DefaultDomain
	}
	return &State{
		Domain:           domain,
		Files:            make(map[string][]byte),
		CurrentOntology:  NewVoidOntology(),
		OntologyAddendum: NewVoidOntology(),
		FactsGraph:       rdf.NewGraph(),
		Status:           StatusSuccess,
		NodeVisits:       make(map[Stage]int),
		MaxVisits:        DefaultMaxVisits,
	}
}

// DocIRI returns the identifier of the document being processed.
func (s *State) DocIRI() string {
	return s.Domain + "/doc/" + s.DocHID
}

// DocNamespace returns the document-scoped namespace.
func (s *State) DocNamespace() string {
	return ResourceNamespace(s.DocIRI())
}

// SetFailure records a failure for a stage and flips the status.
func (s *State) SetFailure(stage Stage, kind FailureKind, reason string, score float64) {
	s.FailureStage = stage
	s.FailureKind = kind
	s.FailureReason = reason
	s.SuccessScore = score
	s.Status = StatusFailed
}

// ClearFailure erases the failure record and restores success.
func (s *State) ClearFailure() {
	s.FailureStage = ""
	s.FailureKind = ""
	s.FailureReason = ""
	s.SuccessScore = 0
	s.Status = StatusSuccess
}

// ForceSuccess flips the status to success while retaining the failure
// record for diagnostics. Used when a stage's retry budget is exhausted and
// the run proceeds with the best available artifact.
func (s *State) ForceSuccess() {
	s.Status = StatusSuccess
}

// Visits returns the visit count of a stage, zero when never visited.
func (s *State) Visits(stage Stage) int {
	return s.NodeVisits[stage]
}

// CountVisit increments the visit counter of a stage.
func (s *State) CountVisit(stage Stage) {
	if s.NodeVisits == nil {
		s.NodeVisits = make(map[Stage]int)
	}
	s.NodeVisits[stage]++
}

// ResetVisits clears all visit counters. Called when a new chunk enters the
// ontology/facts sub-pipeline.
func (s *State) ResetVisits() {
	s.NodeVisits = make(map[Stage]int)
}
