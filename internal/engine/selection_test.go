package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
)

func testGame() *boardgame.Game {
	return &boardgame.Game{
		ID:           "game-1",
		Title:        "Harbors of Valdheim",
		PlayerCounts: []int32{2, 3, 4},
	}
}

func testModules() []*boardgame.Module {
	return []*boardgame.Module{
		{ID: "mod-winter", GameID: "game-1", ExpansionID: "exp-north"},
		{ID: "mod-trade", GameID: "game-1", ExpansionID: "exp-south"},
		{ID: "mod-variant", GameID: "game-1"},
	}
}

func TestNewSelection(t *testing.T) {
	e := newEngine(t)

	sel := e.NewSelection(testGame())
	assert.Equal(t, int32(2), sel.PlayerCount)
	assert.Empty(t, sel.SelectedExpansions)
	assert.Empty(t, sel.SelectedModules)
}

func TestApplyPlayerCount(t *testing.T) {
	e := newEngine(t)
	game := testGame()
	sel := e.NewSelection(game)

	next, err := e.ApplyPlayerCount(game, sel, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(4), next.PlayerCount)
	// The prior selection is untouched.
	assert.Equal(t, int32(2), sel.PlayerCount)
}

func TestApplyPlayerCount_Unsupported(t *testing.T) {
	e := newEngine(t)
	game := testGame()
	sel := e.NewSelection(game)

	next, err := e.ApplyPlayerCount(game, sel, 7)
	require.Error(t, err)
	assert.Nil(t, next)
	assert.True(t, errors.IsInvalidArgument(err))

	meta := errors.GetMeta(err)
	require.NotNil(t, meta)
	assert.Equal(t, []int32{2, 3, 4}, meta["supported_counts"])

	// Rejection leaves the selection unchanged.
	assert.Equal(t, int32(2), sel.PlayerCount)
}

func TestToggleExpansion_SelectAndDeselect(t *testing.T) {
	e := newEngine(t)
	modules := testModules()
	sel := &boardgame.Selection{
		PlayerCount:        2,
		SelectedExpansions: []string{},
		SelectedModules:    []string{},
	}

	on := e.ToggleExpansion(sel, "exp-north", modules)
	assert.True(t, on.HasExpansion("exp-north"))
	assert.False(t, sel.HasExpansion("exp-north"))

	off := e.ToggleExpansion(on, "exp-north", modules)
	assert.False(t, off.HasExpansion("exp-north"))
}

func TestToggleExpansion_DeselectCascadesModules(t *testing.T) {
	e := newEngine(t)
	modules := testModules()

	sel := &boardgame.Selection{
		PlayerCount:        3,
		SelectedExpansions: []string{"exp-north", "exp-south"},
		SelectedModules:    []string{"mod-winter", "mod-trade", "mod-variant"},
	}

	next := e.ToggleExpansion(sel, "exp-north", modules)

	// mod-winter is owned by the deselected expansion and goes with it.
	// The base-game module and the other expansion's module stay.
	assert.False(t, next.HasModule("mod-winter"))
	assert.True(t, next.HasModule("mod-trade"))
	assert.True(t, next.HasModule("mod-variant"))

	// Cascade never leaks into the input selection.
	assert.True(t, sel.HasModule("mod-winter"))
}

func TestToggleExpansion_DropsUnknownModules(t *testing.T) {
	e := newEngine(t)
	modules := testModules()

	sel := &boardgame.Selection{
		PlayerCount:        2,
		SelectedExpansions: []string{},
		SelectedModules:    []string{"mod-ghost"},
	}

	next := e.ToggleExpansion(sel, "exp-north", modules)
	assert.False(t, next.HasModule("mod-ghost"))
}

func TestToggleModule(t *testing.T) {
	e := newEngine(t)
	winter := &boardgame.Module{ID: "mod-winter", GameID: "game-1", ExpansionID: "exp-north"}
	variant := &boardgame.Module{ID: "mod-variant", GameID: "game-1"}

	sel := &boardgame.Selection{
		PlayerCount:        2,
		SelectedExpansions: []string{},
		SelectedModules:    []string{},
	}

	t.Run("base game module selects without prerequisites", func(t *testing.T) {
		next, err := e.ToggleModule(sel, variant)
		require.NoError(t, err)
		assert.True(t, next.HasModule("mod-variant"))
	})

	t.Run("expansion module requires its expansion", func(t *testing.T) {
		next, err := e.ToggleModule(sel, winter)
		require.Error(t, err)
		assert.Nil(t, next)
		assert.True(t, errors.IsFailedPrecondition(err))
	})

	t.Run("expansion module selects once expansion is in", func(t *testing.T) {
		withNorth := &boardgame.Selection{
			PlayerCount:        2,
			SelectedExpansions: []string{"exp-north"},
			SelectedModules:    []string{},
		}
		next, err := e.ToggleModule(withNorth, winter)
		require.NoError(t, err)
		assert.True(t, next.HasModule("mod-winter"))
	})

	t.Run("deselect always succeeds", func(t *testing.T) {
		// Selected module whose expansion is gone can still be turned off.
		orphaned := &boardgame.Selection{
			PlayerCount:        2,
			SelectedExpansions: []string{},
			SelectedModules:    []string{"mod-winter"},
		}
		next, err := e.ToggleModule(orphaned, winter)
		require.NoError(t, err)
		assert.False(t, next.HasModule("mod-winter"))
	})
}

func TestAvailableModules(t *testing.T) {
	e := newEngine(t)
	modules := testModules()

	base := &boardgame.Selection{PlayerCount: 2}
	available := e.AvailableModules(modules, base)
	assert.Equal(t, []string{"mod-variant"}, moduleIDs(available))

	withNorth := &boardgame.Selection{
		PlayerCount:        2,
		SelectedExpansions: []string{"exp-north"},
	}
	available = e.AvailableModules(modules, withNorth)
	assert.Equal(t, []string{"mod-winter", "mod-variant"}, moduleIDs(available))
}

func moduleIDs(modules []*boardgame.Module) []string {
	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	return ids
}
