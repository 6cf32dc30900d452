package dag

import (
	"fmt"

	"github.com/vk/bundleforge/internal/step"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds a node for the given step. If a node with the same ID
// already exists, the function does nothing.
func (g *Graph) AddNode(s *step.Step) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[s.ID]; ok {
		return
	}

	g.nodes[s.ID] = &Node{
		ID:         s.ID,
		Step:       s,
		Deps:       make(map[string]*Node),
		Dependents: make(map[string]*Node),
	}
	g.order = append(g.order, s.ID)
}

// AddEdge creates a directed edge from `fromID` to `toID`, meaning `toID`
// depends on `fromID`. An error is returned if either node does not exist
// or if the edge would create a self-reference. Adding the same edge twice
// is a no-op.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if _, dup := toNode.Deps[fromID]; dup {
		return nil
	}

	toNode.Deps[fromID] = fromNode
	fromNode.Dependents[toID] = toNode
	fromNode.dependentOrder = append(fromNode.dependentOrder, toID)
	toNode.depCount.Add(1)

	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, naming the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	// Classic depth-first search with three node sets:
	// permanent: fully visited, known cycle-free.
	// temporary: currently on the recursion stack.
	// unvisited: everything else.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if permanent[n.ID] {
			return nil
		}
		if temporary[n.ID] {
			return fmt.Errorf("cycle detected involving step '%s'", n.ID)
		}

		temporary[n.ID] = true
		for _, dependent := range n.Dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.ID)
		permanent[n.ID] = true
		return nil
	}

	for _, id := range g.order {
		if !permanent[id] {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopologicalOrder returns a deterministic dependency-respecting ordering
// of step IDs: Kahn's algorithm with the ready set drained in insertion
// order. The graph must be acyclic.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	indeg := make(map[string]int, len(g.nodes))
	for _, id := range g.order {
		indeg[id] = len(g.nodes[id].Deps)
	}

	var ready []string
	for _, id := range g.order {
		if indeg[id] == 0 {
			ready = append(ready, id)
		}
	}

	out := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		out = append(out, id)

		n := g.nodes[id]
		for _, depID := range n.dependentOrder {
			indeg[depID]--
			if indeg[depID] == 0 {
				ready = append(ready, depID)
			}
		}
	}

	if len(out) != len(g.nodes) {
		return nil, fmt.Errorf("graph has a cycle; topological order impossible")
	}
	return out, nil
}
