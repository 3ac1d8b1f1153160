package graph

import "context"

// EventType identifies a node lifecycle event.
type EventType int

const (
	// EventNodeStart is emitted before a node function runs.
	EventNodeStart EventType = iota
	// EventNodeComplete is emitted after a node function returns without error.
	EventNodeComplete
	// EventNodeError is emitted when a node function returns an error.
	EventNodeError
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventNodeStart:
		return "start"
	case EventNodeComplete:
		return "complete"
	case EventNodeError:
		return "error"
	default:
		return "unknown"
	}
}

// Event carries one observable node transition.
type Event[S any] struct {
	Type  EventType
	RunID string
	Node  string
	State S
	Err   error
}

// Listener receives node events during Invoke.
type Listener[S any] interface {
	OnNodeEvent(ctx context.Context, ev Event[S])
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc[S any] func(ctx context.Context, ev Event[S])

// OnNodeEvent implements Listener.
func (f ListenerFunc[S]) OnNodeEvent(ctx context.Context, ev Event[S]) { f(ctx, ev) }
