package engine

import (
	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
)

func (e *engine) NewSelection(game *boardgame.Game) *boardgame.Selection {
	return &boardgame.Selection{
		PlayerCount:        game.DefaultPlayerCount(),
		SelectedExpansions: []string{},
		SelectedModules:    []string{},
	}
}

func (e *engine) ApplyPlayerCount(
	game *boardgame.Game,
	selection *boardgame.Selection,
	count int32,
) (*boardgame.Selection, error) {
	if !game.SupportsPlayerCount(count) {
		return nil, errors.InvalidArgumentf(
			"player count %d is not supported by game %s", count, game.ID,
		).WithMeta("supported_counts", game.PlayerCounts)
	}

	next := selection.Clone()
	next.PlayerCount = count
	return next, nil
}

func (e *engine) ToggleExpansion(
	selection *boardgame.Selection,
	expansionID string,
	modules []*boardgame.Module,
) *boardgame.Selection {
	next := selection.Clone()
	if next.HasExpansion(expansionID) {
		next.SelectedExpansions = removeID(next.SelectedExpansions, expansionID)
	} else {
		next.SelectedExpansions = append(next.SelectedExpansions, expansionID)
	}

	// Cascading cleanup runs in the same transition: a module whose
	// owning expansion just left the selection must never be observed
	// selected by a resolver pass.
	owners := make(map[string]string, len(modules))
	for _, m := range modules {
		owners[m.ID] = m.ExpansionID
	}

	kept := next.SelectedModules[:0]
	for _, id := range next.SelectedModules {
		owner, known := owners[id]
		if !known {
			// Unknown module id, drop it while we are repairing anyway.
			continue
		}
		if owner == "" || next.HasExpansion(owner) {
			kept = append(kept, id)
		}
	}
	next.SelectedModules = kept

	return next
}

func (e *engine) ToggleModule(
	selection *boardgame.Selection,
	module *boardgame.Module,
) (*boardgame.Selection, error) {
	next := selection.Clone()
	if next.HasModule(module.ID) {
		next.SelectedModules = removeID(next.SelectedModules, module.ID)
		return next, nil
	}

	if !module.IsBaseGame() && !next.HasExpansion(module.ExpansionID) {
		return nil, errors.FailedPreconditionf(
			"module %s requires expansion %s to be selected", module.ID, module.ExpansionID,
		)
	}

	next.SelectedModules = append(next.SelectedModules, module.ID)
	return next, nil
}

func (e *engine) AvailableModules(
	modules []*boardgame.Module,
	selection *boardgame.Selection,
) []*boardgame.Module {
	available := make([]*boardgame.Module, 0, len(modules))
	for _, m := range modules {
		if m.IsBaseGame() || selection.HasExpansion(m.ExpansionID) {
			available = append(available, m)
		}
	}
	return available
}

func removeID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
