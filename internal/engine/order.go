package engine

import (
	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
)

func (e *engine) ReorderSteps(steps []*boardgame.Step, from, to int) ([]*boardgame.Step, error) {
	if from < 0 || from >= len(steps) {
		return nil, errors.InvalidArgumentf("from index %d out of range [0,%d)", from, len(steps))
	}
	if to < 0 || to >= len(steps) {
		return nil, errors.InvalidArgumentf("to index %d out of range [0,%d)", to, len(steps))
	}

	// Work on copies so callers keep their snapshot intact until the
	// reorder is persisted.
	reordered := make([]*boardgame.Step, 0, len(steps))
	for i, step := range steps {
		if i == from {
			continue
		}
		copied := *step
		reordered = append(reordered, &copied)
	}
	moved := *steps[from]
	reordered = append(reordered, nil)
	copy(reordered[to+1:], reordered[to:])
	reordered[to] = &moved

	// Renumber everything to its 1-based position. No minimal-diff
	// cleverness: this is always dense and unique no matter what the
	// prior order values were.
	for i, step := range reordered {
		step.Order = int32(i + 1) // #nosec G115 -- catalog sizes are tens of steps
	}

	return reordered, nil
}

func (e *engine) NextStepOrder(steps []*boardgame.Step) int32 {
	var maxOrder int32
	for _, step := range steps {
		if step.Order > maxOrder {
			maxOrder = step.Order
		}
	}
	return maxOrder + 1
}
