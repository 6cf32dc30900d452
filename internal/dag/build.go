package dag

import (
	"context"
	"fmt"

	"github.com/vk/bundleforge/internal/ctxlog"
	"github.com/vk/bundleforge/internal/registry"
)

// Build constructs the execution graph for the requested target steps,
// pulling in their transitive prerequisites from the registry.
// Prerequisites are inserted before their dependents, so a single-worker
// traversal visits steps in declared order.
func Build(ctx context.Context, reg *registry.Registry, targets []string) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	g := New()

	// visiting guards the recursion against prerequisite cycles, which
	// would otherwise recurse forever before DetectCycles ever ran.
	visiting := make(map[string]bool)

	var add func(id string) error
	add = func(id string) error {
		if _, ok := g.Node(id); ok {
			return nil
		}
		if visiting[id] {
			return fmt.Errorf("cycle detected involving step '%s'", id)
		}
		visiting[id] = true
		defer delete(visiting, id)

		s, ok := reg.Step(id)
		if !ok {
			return fmt.Errorf("unknown step: %s", id)
		}
		for _, need := range s.Needs {
			if err := add(need); err != nil {
				return err
			}
		}
		g.AddNode(s)
		return nil
	}

	for _, id := range targets {
		if err := add(id); err != nil {
			return nil, err
		}
	}

	for _, node := range g.Nodes() {
		for _, need := range node.Step.Needs {
			if err := g.AddEdge(need, node.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	logger.Debug("Dependency graph built.", "nodes", g.Len(), "targets", targets)
	return g, nil
}
