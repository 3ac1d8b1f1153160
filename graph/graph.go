package graph

import (
	"context"
	"errors"
)

// END is the special node name that terminates execution.
const END = "END"

var (
	// ErrEntryPointNotSet is returned when the entry point of the graph is not set.
	ErrEntryPointNotSet = errors.New("entry point not set")

	// ErrNodeNotFound is returned when a node is not found in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoOutgoingEdge is returned when no outgoing edge is found for a node.
	ErrNoOutgoingEdge = errors.New("no outgoing edge found for node")

	// ErrEmptyCondition is returned when a conditional edge yields an empty
	// next node name.
	ErrEmptyCondition = errors.New("conditional edge returned empty next node")
)

// Node represents a node in the graph.
type Node[S any] struct {
	// Name is the unique identifier for the node.
	Name string

	// Description describes the functionality of the node.
	Description string

	// Function mutates or replaces the state and returns it.
	Function func(ctx context.Context, state S) (S, error)
}

// Edge is a static connection between two nodes.
type Edge struct {
	From string
	To   string
}
