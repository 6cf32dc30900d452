package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bundleforge/internal/step"
)

func testStep(id string, needs ...string) *step.Step {
	return &step.Step{ID: id, Needs: needs}
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode(testStep("a"))
	assert.Equal(t, 1, g.Len())
	nodeA, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.ID)
	assert.NotNil(t, nodeA.Deps)
	assert.NotNil(t, nodeA.Dependents)

	g.AddNode(testStep("a")) // Test idempotency
	assert.Equal(t, 1, g.Len())

	g.AddNode(testStep("b"))
	assert.Equal(t, 2, g.Len())
	_, ok = g.Node("b")
	assert.True(t, ok)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode(testStep("a"))
		g.AddNode(testStep("b"))

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		nodeA, _ := g.Node("a")
		nodeB, _ := g.Node("b")

		assert.Contains(t, nodeA.Dependents, "b")
		assert.Contains(t, nodeB.Deps, "a")
		assert.Equal(t, int32(1), nodeB.depCount.Load())
	})

	t.Run("duplicate edge is a no-op", func(t *testing.T) {
		g := New()
		g.AddNode(testStep("a"))
		g.AddNode(testStep("b"))

		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("a", "b"))

		nodeB, _ := g.Node("b")
		assert.Equal(t, int32(1), nodeB.depCount.Load())
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode(testStep("a"))
		g.AddNode(testStep("b"))

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode(testStep("a"))
		g.AddNode(testStep("b"))
		g.AddNode(testStep("c"))
		g.AddNode(testStep("d"))
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode(testStep("a"))
		g.AddNode(testStep("b"))
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "cycle detected")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "d"} {
			g.AddNode(testStep(id))
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a"))
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("respects dependencies and insertion order", func(t *testing.T) {
		g := New()
		for _, id := range []string{"fetch", "install", "build", "bundle"} {
			g.AddNode(testStep(id))
		}
		require.NoError(t, g.AddEdge("fetch", "build"))
		require.NoError(t, g.AddEdge("install", "build"))
		require.NoError(t, g.AddEdge("build", "bundle"))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"fetch", "install", "build", "bundle"}, order)
	})

	t.Run("cycle makes ordering impossible", func(t *testing.T) {
		g := New()
		g.AddNode(testStep("a"))
		g.AddNode(testStep("b"))
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		_, err := g.TopologicalOrder()
		assert.ErrorContains(t, err, "cycle")
	})
}
