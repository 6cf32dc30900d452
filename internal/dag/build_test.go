package dag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bundleforge/internal/registry"
	"github.com/vk/bundleforge/internal/step"
)

func registryWith(steps ...*step.Step) *registry.Registry {
	r := registry.New()
	for _, s := range steps {
		s.Run = func(ctx context.Context, env *step.Env) error { return nil }
		r.Add(s)
	}
	return r
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("pulls in transitive prerequisites", func(t *testing.T) {
		reg := registryWith(
			testStep("fetch"),
			testStep("install"),
			testStep("build", "fetch", "install"),
			testStep("bundle", "build"),
		)

		g, err := Build(ctx, reg, []string{"bundle"})
		require.NoError(t, err)
		assert.Equal(t, 4, g.Len())

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"fetch", "install", "build", "bundle"}, order)
	})

	t.Run("limits the graph to the requested targets", func(t *testing.T) {
		reg := registryWith(
			testStep("fetch"),
			testStep("build", "fetch"),
			testStep("unrelated"),
		)

		g, err := Build(ctx, reg, []string{"build"})
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())
		_, ok := g.Node("unrelated")
		assert.False(t, ok)
	})

	t.Run("prerequisites come before dependents in insertion order", func(t *testing.T) {
		reg := registryWith(
			testStep("fetch"),
			testStep("build", "fetch"),
		)

		g, err := Build(ctx, reg, []string{"build", "fetch"})
		require.NoError(t, err)

		var ids []string
		for _, n := range g.Nodes() {
			ids = append(ids, n.ID)
		}
		assert.Equal(t, []string{"fetch", "build"}, ids)
	})

	t.Run("unknown target", func(t *testing.T) {
		reg := registryWith(testStep("fetch"))
		_, err := Build(ctx, reg, []string{"ghost"})
		assert.ErrorContains(t, err, "unknown step: ghost")
	})

	t.Run("unknown prerequisite", func(t *testing.T) {
		reg := registryWith(testStep("build", "ghost"))
		_, err := Build(ctx, reg, []string{"build"})
		assert.ErrorContains(t, err, "unknown step: ghost")
	})

	t.Run("prerequisite cycle is rejected", func(t *testing.T) {
		reg := registryWith(
			testStep("a", "b"),
			testStep("b", "a"),
		)
		_, err := Build(ctx, reg, []string{"a"})
		assert.ErrorContains(t, err, "cycle detected")
	})
}
