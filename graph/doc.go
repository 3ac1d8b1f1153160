// Package graph provides a small sequential workflow state machine: named
// nodes connected by static and conditional edges, compiled into a Runnable
// that threads a typed state from the entry point to END. The caller's
// context is checked before every node transition, so cancellation is
// cooperative and never preempts an in-flight node.
package graph
