package onto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState("")
	assert.Equal(t, DefaultDomain, s.Domain)
	assert.Equal(t, DefaultMaxVisits, s.MaxVisits)
	assert.Equal(t, StatusSuccess, s.Status)
	assert.True(t, s.CurrentOntology.IsVoid())

	s = NewState("https://corp.example")
	s.DocHID = "abc"
	assert.Equal(t, "https://corp.example/doc/abc", s.DocIRI())
	assert.Equal(t, "https://corp.example/doc/abc/", s.DocNamespace())
}

func TestFailureLifecycle(t *testing.T) {
	s := NewState("")
	s.SetFailure(StageRenderFacts, FailureContent, "facts not grounded", 0.4)

	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, StageRenderFacts, s.FailureStage)
	assert.Equal(t, FailureContent, s.FailureKind)
	assert.Equal(t, 0.4, s.SuccessScore)

	s.ClearFailure()
	assert.Equal(t, StatusSuccess, s.Status)
	assert.Empty(t, s.FailureStage)
	assert.Empty(t, s.FailureReason)
}

func TestForceSuccessRetainsFailureRecord(t *testing.T) {
	s := NewState("")
	s.SetFailure(StageCriticiseFacts, FailureContent, "still wrong", 0.2)
	s.ForceSuccess()

	assert.Equal(t, StatusSuccess, s.Status)
	assert.Equal(t, StageCriticiseFacts, s.FailureStage)
	assert.Equal(t, "still wrong", s.FailureReason)
}

func TestVisitCounting(t *testing.T) {
	s := NewState("")
	assert.Zero(t, s.Visits(StageRenderOntology))

	s.CountVisit(StageRenderOntology)
	s.CountVisit(StageRenderOntology)
	s.CountVisit(StageRenderFacts)
	assert.Equal(t, 2, s.Visits(StageRenderOntology))
	assert.Equal(t, 1, s.Visits(StageRenderFacts))

	s.ResetVisits()
	assert.Zero(t, s.Visits(StageRenderOntology))
}

func TestChunkIdentity(t *testing.T) {
	c := NewChunk("some text", "https://example.com/doc/abc")
	assert.Equal(t, TextHash("some text"), c.HID)
	assert.Equal(t, "https://example.com/doc/abc/chunk/"+c.HID, c.IRI())
	assert.Equal(t, c.IRI()+"/", c.Namespace())

	// Identity is content-derived and stable.
	assert.Equal(t, c.HID, NewChunk("some text", "elsewhere").HID)
	assert.NotEqual(t, c.HID, NewChunk("other text", "elsewhere").HID)
	assert.Len(t, c.HID, 16)
}
