package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StateGraph is a state-based workflow graph. The type parameter S is the
// state threaded through the nodes.
//
// Execution is strictly sequential: exactly one node is active at a time and
// the state is owned by the invoking goroutine. Multiple documents are
// processed concurrently by running independent compiled graphs, each with
// its own state.
type StateGraph[S any] struct {
	nodes            map[string]Node[S]
	edges            []Edge
	conditionalEdges map[string]func(ctx context.Context, state S) string
	entryPoint       string
}

// NewStateGraph creates an empty state graph.
func NewStateGraph[S any]() *StateGraph[S] {
	return &StateGraph[S]{
		nodes:            make(map[string]Node[S]),
		conditionalEdges: make(map[string]func(ctx context.Context, state S) string),
	}
}

// AddNode adds a node with the given name, description and function.
func (g *StateGraph[S]) AddNode(name, description string, fn func(ctx context.Context, state S) (S, error)) {
	g.nodes[name] = Node[S]{
		Name:        name,
		Description: description,
		Function:    fn,
	}
}

// AddEdge adds a static edge between the "from" and "to" nodes.
func (g *StateGraph[S]) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// AddConditionalEdge adds an edge whose target node is determined at runtime
// from the state. A conditional edge takes precedence over static edges from
// the same node.
func (g *StateGraph[S]) AddConditionalEdge(from string, condition func(ctx context.Context, state S) string) {
	g.conditionalEdges[from] = condition
}

// SetEntryPoint sets the entry point node name.
func (g *StateGraph[S]) SetEntryPoint(name string) {
	g.entryPoint = name
}

// Compile validates the graph and returns a Runnable.
func (g *StateGraph[S]) Compile() (*Runnable[S], error) {
	if g.entryPoint == "" {
		return nil, ErrEntryPointNotSet
	}
	if _, ok := g.nodes[g.entryPoint]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, g.entryPoint)
	}
	return &Runnable[S]{graph: g}, nil
}

// Runnable is a compiled state graph that can be invoked.
type Runnable[S any] struct {
	graph     *StateGraph[S]
	listeners []Listener[S]
}

// AddListener registers a listener notified of every node event.
func (r *Runnable[S]) AddListener(l Listener[S]) {
	r.listeners = append(r.listeners, l)
}

// Invoke executes the graph with the given initial state and returns the
// final state. Cancellation is cooperative: the context is checked before
// every node transition, never mid-node.
func (r *Runnable[S]) Invoke(ctx context.Context, initialState S) (S, error) {
	state := initialState
	current := r.graph.entryPoint
	runID := uuid.NewString()

	for current != END {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		node, ok := r.graph.nodes[current]
		if !ok {
			return state, fmt.Errorf("%w: %s", ErrNodeNotFound, current)
		}

		r.notify(ctx, Event[S]{Type: EventNodeStart, RunID: runID, Node: current, State: state})

		newState, err := node.Function(ctx, state)
		if err != nil {
			r.notify(ctx, Event[S]{Type: EventNodeError, RunID: runID, Node: current, State: state, Err: err})
			return state, fmt.Errorf("node %s: %w", current, err)
		}
		state = newState

		r.notify(ctx, Event[S]{Type: EventNodeComplete, RunID: runID, Node: current, State: state})

		next, err := r.nextNode(ctx, current, state)
		if err != nil {
			return state, err
		}
		current = next
	}

	return state, nil
}

func (r *Runnable[S]) nextNode(ctx context.Context, current string, state S) (string, error) {
	if condition, ok := r.graph.conditionalEdges[current]; ok {
		next := condition(ctx, state)
		if next == "" {
			return "", fmt.Errorf("%w: from %s", ErrEmptyCondition, current)
		}
		return next, nil
	}
	for _, edge := range r.graph.edges {
		if edge.From == current {
			return edge.To, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoOutgoingEdge, current)
}

func (r *Runnable[S]) notify(ctx context.Context, ev Event[S]) {
	for _, l := range r.listeners {
		l.OnNodeEvent(ctx, ev)
	}
}
