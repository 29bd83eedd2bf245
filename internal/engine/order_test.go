package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
)

func orderedSteps(ids ...string) []*boardgame.Step {
	steps := make([]*boardgame.Step, 0, len(ids))
	for i, id := range ids {
		steps = append(steps, &boardgame.Step{ID: id, Order: int32(i + 1)})
	}
	return steps
}

func TestReorderSteps(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name string
		from int
		to   int
		want []string
	}{
		{name: "move forward", from: 0, to: 2, want: []string{"s2", "s3", "s1", "s4"}},
		{name: "move backward", from: 3, to: 0, want: []string{"s4", "s1", "s2", "s3"}},
		{name: "adjacent swap", from: 1, to: 2, want: []string{"s1", "s3", "s2", "s4"}},
		{name: "same position", from: 2, to: 2, want: []string{"s1", "s2", "s3", "s4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := orderedSteps("s1", "s2", "s3", "s4")

			reordered, err := e.ReorderSteps(steps, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stepIDs(reordered))

			// Orders are always renumbered to dense 1-based positions.
			for i, s := range reordered {
				assert.Equal(t, int32(i+1), s.Order)
			}
		})
	}
}

func TestReorderSteps_RenumbersSparseOrders(t *testing.T) {
	e := newEngine(t)

	// Deletion leaves gaps; any reorder repairs them.
	steps := []*boardgame.Step{
		{ID: "s1", Order: 2},
		{ID: "s2", Order: 7},
		{ID: "s3", Order: 9},
	}

	reordered, err := e.ReorderSteps(steps, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s1", "s2"}, stepIDs(reordered))
	assert.Equal(t, int32(1), reordered[0].Order)
	assert.Equal(t, int32(2), reordered[1].Order)
	assert.Equal(t, int32(3), reordered[2].Order)
}

func TestReorderSteps_OutOfBounds(t *testing.T) {
	e := newEngine(t)
	steps := orderedSteps("s1", "s2")

	for _, tc := range []struct{ from, to int }{
		{from: -1, to: 0},
		{from: 2, to: 0},
		{from: 0, to: -1},
		{from: 0, to: 2},
	} {
		_, err := e.ReorderSteps(steps, tc.from, tc.to)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	}
}

func TestReorderSteps_DoesNotMutateInput(t *testing.T) {
	e := newEngine(t)
	steps := orderedSteps("s1", "s2", "s3")

	_, err := e.ReorderSteps(steps, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2", "s3"}, stepIDs(steps))
	for i, s := range steps {
		assert.Equal(t, int32(i+1), s.Order)
	}
}

func TestReorderSteps_SingleStep(t *testing.T) {
	e := newEngine(t)
	steps := orderedSteps("s1")

	reordered, err := e.ReorderSteps(steps, 0, 0)
	require.NoError(t, err)
	require.Len(t, reordered, 1)
	assert.Equal(t, int32(1), reordered[0].Order)
}

func TestNextStepOrder(t *testing.T) {
	e := newEngine(t)

	assert.Equal(t, int32(1), e.NextStepOrder(nil))
	assert.Equal(t, int32(4), e.NextStepOrder(orderedSteps("s1", "s2", "s3")))

	// Max plus one even when orders have gaps.
	sparse := []*boardgame.Step{
		{ID: "s1", Order: 3},
		{ID: "s2", Order: 8},
	}
	assert.Equal(t, int32(9), e.NextStepOrder(sparse))
}
