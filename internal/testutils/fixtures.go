package testutils

import (
	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

// Well-known fixture ids used across tests
const (
	TestGameID          = "game-test-001"
	TestExpansionNorth  = "exp-north"
	TestExpansionSouth  = "exp-south"
	TestModuleWinter    = "mod-winter"
	TestModuleTrade     = "mod-trade"
	TestModuleVariant   = "mod-variant"
	TestGameTitle       = "Frosthaven Harbor"
)

// CreateTestGame creates a game with a 2-4 player domain
func CreateTestGame() *boardgame.Game {
	return &boardgame.Game{
		ID:           TestGameID,
		Title:        TestGameTitle,
		PlayerCounts: []int32{2, 3, 4},
	}
}

// CreateTestExpansions creates two expansions owned by the test game
func CreateTestExpansions() []*boardgame.Expansion {
	return []*boardgame.Expansion{
		{ID: TestExpansionNorth, GameID: TestGameID, Name: "Northern Reaches"},
		{ID: TestExpansionSouth, GameID: TestGameID, Name: "Southern Trade Routes"},
	}
}

// CreateTestModules creates one module per expansion plus a base-game
// module
func CreateTestModules() []*boardgame.Module {
	return []*boardgame.Module{
		{ID: TestModuleWinter, GameID: TestGameID, ExpansionID: TestExpansionNorth, Name: "Winter Events"},
		{ID: TestModuleTrade, GameID: TestGameID, ExpansionID: TestExpansionSouth, Name: "Trade Contracts"},
		{ID: TestModuleVariant, GameID: TestGameID, Name: "Variant Setup"},
	}
}

// CreateTestSteps creates a small catalog exercising every condition
// kind, pre-sorted by order
func CreateTestSteps() []*boardgame.Step {
	return []*boardgame.Step{
		{
			ID: "step-1", GameID: TestGameID, Order: 1,
			Text: "Place the main board in the center of the table",
		},
		{
			ID: "step-2", GameID: TestGameID, Order: 2,
			Text: "Return all expansion content to the box",
			Condition: &boardgame.StepCondition{RequireNoExpansions: true},
		},
		{
			ID: "step-3", GameID: TestGameID, Order: 3,
			Text: "Shuffle the Northern Reaches event deck",
			Condition: &boardgame.StepCondition{
				IncludeExpansions: []string{TestExpansionNorth},
			},
		},
		{
			ID: "step-4", GameID: TestGameID, Order: 4,
			Text: "Add the winter tokens to the supply",
			Condition: &boardgame.StepCondition{
				IncludeModules: []string{TestModuleWinter},
			},
		},
		{
			ID: "step-5", GameID: TestGameID, Order: 5,
			Text: "Deal the two-player reference cards",
			Condition: &boardgame.StepCondition{
				PlayerCounts: []int32{2},
			},
		},
	}
}
