package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	steps []string
	n     int
}

func appendStep(name string) func(ctx context.Context, s *counterState) (*counterState, error) {
	return func(ctx context.Context, s *counterState) (*counterState, error) {
		s.steps = append(s.steps, name)
		return s, nil
	}
}

func TestInvokeLinearGraph(t *testing.T) {
	g := NewStateGraph[*counterState]()
	g.AddNode("first", "", appendStep("first"))
	g.AddNode("second", "", appendStep("second"))
	g.SetEntryPoint("first")
	g.AddEdge("first", "second")
	g.AddEdge("second", END)

	r, err := g.Compile()
	require.NoError(t, err)

	final, err := r.Invoke(context.Background(), &counterState{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, final.steps)
}

func TestInvokeConditionalLoop(t *testing.T) {
	g := NewStateGraph[*counterState]()
	g.AddNode("work", "", func(ctx context.Context, s *counterState) (*counterState, error) {
		s.n++
		return s, nil
	})
	g.SetEntryPoint("work")
	g.AddConditionalEdge("work", func(ctx context.Context, s *counterState) string {
		if s.n < 3 {
			return "work"
		}
		return END
	})

	r, err := g.Compile()
	require.NoError(t, err)

	final, err := r.Invoke(context.Background(), &counterState{})
	require.NoError(t, err)
	assert.Equal(t, 3, final.n)
}

func TestConditionalEdgeTakesPrecedence(t *testing.T) {
	g := NewStateGraph[*counterState]()
	g.AddNode("a", "", appendStep("a"))
	g.AddNode("b", "", appendStep("b"))
	g.AddNode("c", "", appendStep("c"))
	g.SetEntryPoint("a")
	g.AddEdge("a", "b") // shadowed by the conditional edge
	g.AddConditionalEdge("a", func(ctx context.Context, s *counterState) string { return "c" })
	g.AddEdge("b", END)
	g.AddEdge("c", END)

	r, err := g.Compile()
	require.NoError(t, err)

	final, err := r.Invoke(context.Background(), &counterState{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, final.steps)
}

func TestCompileErrors(t *testing.T) {
	g := NewStateGraph[*counterState]()
	_, err := g.Compile()
	assert.ErrorIs(t, err, ErrEntryPointNotSet)

	g.SetEntryPoint("missing")
	_, err = g.Compile()
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestInvokeNodeError(t *testing.T) {
	boom := errors.New("boom")
	g := NewStateGraph[*counterState]()
	g.AddNode("fail", "", func(ctx context.Context, s *counterState) (*counterState, error) {
		return s, boom
	})
	g.SetEntryPoint("fail")
	g.AddEdge("fail", END)

	r, err := g.Compile()
	require.NoError(t, err)

	_, err = r.Invoke(context.Background(), &counterState{})
	assert.ErrorIs(t, err, boom)
}

func TestInvokeMissingEdge(t *testing.T) {
	g := NewStateGraph[*counterState]()
	g.AddNode("lonely", "", appendStep("lonely"))
	g.SetEntryPoint("lonely")

	r, err := g.Compile()
	require.NoError(t, err)

	_, err = r.Invoke(context.Background(), &counterState{})
	assert.ErrorIs(t, err, ErrNoOutgoingEdge)
}

func TestInvokeHonorsCancellation(t *testing.T) {
	g := NewStateGraph[*counterState]()
	g.AddNode("spin", "", func(ctx context.Context, s *counterState) (*counterState, error) {
		s.n++
		return s, nil
	})
	g.SetEntryPoint("spin")
	g.AddConditionalEdge("spin", func(ctx context.Context, s *counterState) string { return "spin" })

	r, err := g.Compile()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Invoke(ctx, &counterState{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListenersObserveEvents(t *testing.T) {
	g := NewStateGraph[*counterState]()
	g.AddNode("only", "", appendStep("only"))
	g.SetEntryPoint("only")
	g.AddEdge("only", END)

	r, err := g.Compile()
	require.NoError(t, err)

	var events []EventType
	r.AddListener(ListenerFunc[*counterState](func(ctx context.Context, ev Event[*counterState]) {
		events = append(events, ev.Type)
		assert.Equal(t, "only", ev.Node)
		assert.NotEmpty(t, ev.RunID)
	}))

	_, err = r.Invoke(context.Background(), &counterState{})
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventNodeStart, EventNodeComplete}, events)
}
