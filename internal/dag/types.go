package dag

import (
	"sync"
	"sync/atomic"

	"github.com/vk/bundleforge/internal/step"
)

// Node states, stored atomically so workers and the dependent-skipping
// path can hand off a node without locking.
const (
	statePending int32 = iota
	stateRunning
	stateDone
	stateFailed
)

// Node is a single step within an execution graph.
type Node struct {
	ID   string
	Step *step.Step

	// Deps holds the nodes this node depends on (predecessors).
	Deps map[string]*Node
	// Dependents holds the nodes that depend on this node (successors).
	Dependents map[string]*Node
	// dependentOrder preserves edge insertion order so newly-ready
	// dependents are enqueued deterministically.
	dependentOrder []string

	// depCount is the number of unfinished prerequisites.
	depCount atomic.Int32
	state    atomic.Int32

	// Err is set when the node fails or is abandoned. Written exactly
	// once, before the node's waitgroup slot is released.
	Err error

	// Result is the recorded outcome, set once the node reaches a
	// terminal state.
	Result *step.Result
}

// Graph is a set of step nodes and their dependency edges. Mutating
// operations are concurrency-safe; insertion order is preserved for
// deterministic traversal.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*Node
	order []string
}
