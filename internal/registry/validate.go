package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/bundleforge/internal/ctxlog"
)

// Validate performs a strict integrity check over the registered step set:
// no duplicate IDs, every step has a handler, and every declared
// prerequisite references a registered step other than itself.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, id := range r.duplicates {
		errs = append(errs, fmt.Sprintf("step '%s': registered more than once", id))
	}

	for _, id := range r.order {
		s := r.steps[id]
		if s.ID == "" {
			errs = append(errs, "step with empty ID registered")
			continue
		}
		if s.Run == nil {
			errs = append(errs, fmt.Sprintf("step '%s': no handler", id))
		}
		seen := make(map[string]struct{}, len(s.Needs))
		for _, need := range s.Needs {
			if need == id {
				errs = append(errs, fmt.Sprintf("step '%s': depends on itself", id))
				continue
			}
			if _, dup := seen[need]; dup {
				errs = append(errs, fmt.Sprintf("step '%s': duplicate prerequisite '%s'", id, need))
				continue
			}
			seen[need] = struct{}{}
			if _, ok := r.steps[need]; !ok {
				errs = append(errs, fmt.Sprintf("step '%s': unknown prerequisite '%s'", id, need))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "steps", len(r.order))
	return nil
}
