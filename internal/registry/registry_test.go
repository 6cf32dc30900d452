package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bundleforge/internal/step"
)

func noopStep(id string, needs ...string) *step.Step {
	return &step.Step{
		ID:    id,
		Needs: needs,
		Run:   func(ctx context.Context, env *step.Env) error { return nil },
	}
}

func TestAddAndLookup(t *testing.T) {
	r := New()
	r.Add(noopStep("fetch"))
	r.Add(noopStep("build", "fetch"))

	s, ok := r.Step("fetch")
	require.True(t, ok)
	assert.Equal(t, "fetch", s.ID)

	_, ok = r.Step("absent")
	assert.False(t, ok)
}

func TestStepsPreserveRegistrationOrder(t *testing.T) {
	r := New()
	for _, id := range []string{"c", "a", "b"} {
		r.Add(noopStep(id))
	}

	var ids []string
	for _, s := range r.Steps() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid set", func(t *testing.T) {
		r := New()
		r.Add(noopStep("fetch"))
		r.Add(noopStep("build", "fetch"))
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("duplicate registration", func(t *testing.T) {
		r := New()
		r.Add(noopStep("fetch"))
		r.Add(noopStep("fetch"))
		err := r.Validate(ctx)
		assert.ErrorContains(t, err, "registered more than once")
	})

	t.Run("missing handler", func(t *testing.T) {
		r := New()
		r.Add(&step.Step{ID: "hollow"})
		err := r.Validate(ctx)
		assert.ErrorContains(t, err, "no handler")
	})

	t.Run("self dependency", func(t *testing.T) {
		r := New()
		r.Add(noopStep("loop", "loop"))
		err := r.Validate(ctx)
		assert.ErrorContains(t, err, "depends on itself")
	})

	t.Run("duplicate prerequisite", func(t *testing.T) {
		r := New()
		r.Add(noopStep("fetch"))
		r.Add(noopStep("build", "fetch", "fetch"))
		err := r.Validate(ctx)
		assert.ErrorContains(t, err, "duplicate prerequisite")
	})

	t.Run("unknown prerequisite", func(t *testing.T) {
		r := New()
		r.Add(noopStep("build", "ghost"))
		err := r.Validate(ctx)
		assert.ErrorContains(t, err, "unknown prerequisite 'ghost'")
	})

	t.Run("all problems are reported together", func(t *testing.T) {
		r := New()
		r.Add(&step.Step{ID: "hollow"})
		r.Add(noopStep("build", "ghost"))
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "no handler")
		assert.ErrorContains(t, err, "unknown prerequisite")
	})
}
