// Package engine implements the setup rules: conditional step
// resolution, step order maintenance, and selection state transitions.
// Everything here is pure and operates on in-memory snapshots; loading
// and persistence belong to the orchestrators.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/tablewise/setup-api/internal/engine Engine

import (
	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

// Engine computes which setup steps apply and keeps the step order and
// selection state consistent.
type Engine interface {
	// ResolveSteps returns the steps whose condition (if any) is
	// satisfied by the selection, sorted ascending by order. The sort is
	// stable: steps sharing an order value keep their catalog order.
	// Inputs are never mutated and the call never fails; a malformed
	// condition degrades to "does not match".
	ResolveSteps(catalog []*boardgame.Step, selection *boardgame.Selection) []*boardgame.Step

	// ReorderSteps moves the step at index from to index to and
	// renumbers every step to its 1-based position, yielding a dense,
	// unique order sequence regardless of the prior order values. The
	// input slice is not mutated. Out-of-bounds indexes are
	// InvalidArgument errors.
	ReorderSteps(steps []*boardgame.Step, from, to int) ([]*boardgame.Step, error)

	// NextStepOrder returns the order a newly created step should get:
	// one past the current maximum, or 1 for an empty catalog.
	NextStepOrder(steps []*boardgame.Step) int32

	// NewSelection builds the default selection for a game: player count
	// at the domain minimum, no expansions, no modules.
	NewSelection(game *boardgame.Game) *boardgame.Selection

	// ApplyPlayerCount returns a copy of the selection with the player
	// count set. Values outside the game's player-count domain are
	// rejected with InvalidArgument; the prior selection is unchanged.
	ApplyPlayerCount(game *boardgame.Game, selection *boardgame.Selection, count int32) (*boardgame.Selection, error)

	// ToggleExpansion returns a copy of the selection with the expansion
	// membership flipped. Selected modules whose owning expansion is no
	// longer selected are removed in the same transition; modules is the
	// game's full module catalog used to look up ownership.
	ToggleExpansion(selection *boardgame.Selection, expansionID string, modules []*boardgame.Module) *boardgame.Selection

	// ToggleModule returns a copy of the selection with the module
	// membership flipped. Selecting a module whose owning expansion is
	// not part of the selection fails with FailedPrecondition;
	// deselecting always succeeds.
	ToggleModule(selection *boardgame.Selection, module *boardgame.Module) (*boardgame.Selection, error)

	// AvailableModules filters the module catalog down to modules that
	// are currently selectable: base-game modules plus modules whose
	// owning expansion is selected.
	AvailableModules(modules []*boardgame.Module, selection *boardgame.Selection) []*boardgame.Module
}
