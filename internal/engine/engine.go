package engine

import (
	"sort"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

type engine struct {
}

// Config holds the dependencies for the engine. The engine is pure and
// currently has none; the config exists so wiring matches the rest of
// the service.
type Config struct {
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	return nil
}

// New creates a new rules engine.
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{}, nil
}

// Ensure engine implements Engine
var _ Engine = (*engine)(nil)

func (e *engine) ResolveSteps(catalog []*boardgame.Step, selection *boardgame.Selection) []*boardgame.Step {
	resolved := make([]*boardgame.Step, 0, len(catalog))
	seen := make(map[string]struct{}, len(catalog))
	for _, step := range catalog {
		if step == nil {
			continue
		}
		if step.ID != "" {
			if _, dup := seen[step.ID]; dup {
				continue
			}
			seen[step.ID] = struct{}{}
		}
		if conditionMatches(step.Condition, selection) {
			resolved = append(resolved, step)
		}
	}

	// Stable: equal orders keep their catalog position rather than
	// erroring. Duplicate orders are a data-quality anomaly, not ours to
	// validate here.
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Order < resolved[j].Order
	})

	return resolved
}

// conditionMatches evaluates the condition as a conjunction in a fixed
// sub-condition order, short-circuiting on the first failure. A nil or
// empty condition always matches; a nil selection only matches
// unconditional steps.
func conditionMatches(cond *boardgame.StepCondition, sel *boardgame.Selection) bool {
	if cond.IsEmpty() {
		return true
	}
	if sel == nil {
		return false
	}

	if len(cond.PlayerCounts) > 0 && !containsInt32(cond.PlayerCounts, sel.PlayerCount) {
		return false
	}

	if cond.RequireNoExpansions && len(sel.SelectedExpansions) > 0 {
		return false
	}

	for _, id := range cond.IncludeExpansions {
		if !sel.HasExpansion(id) {
			return false
		}
	}
	for _, id := range cond.ExcludeExpansions {
		if sel.HasExpansion(id) {
			return false
		}
	}

	for _, id := range cond.IncludeModules {
		if !sel.HasModule(id) {
			return false
		}
	}
	for _, id := range cond.ExcludeModules {
		if sel.HasModule(id) {
			return false
		}
	}

	return true
}

func containsInt32(values []int32, v int32) bool {
	for _, c := range values {
		if c == v {
			return true
		}
	}
	return false
}
