package admin

import (
	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

// CreateGameInput defines the input for creating a game
type CreateGameInput struct {
	Title        string
	Description  string
	RulesURL     string
	PlayerCounts []int32
}

// CreateGameOutput defines the output for creating a game
type CreateGameOutput struct {
	Game *boardgame.Game
}

// ListGamesInput defines the input for listing games
type ListGamesInput struct {
}

// ListGamesOutput defines the output for listing games
type ListGamesOutput struct {
	Games []*boardgame.Game
}

// DeleteGameInput defines the input for deleting a game and everything
// it owns
type DeleteGameInput struct {
	GameID string
}

// DeleteGameOutput defines the output for deleting a game
type DeleteGameOutput struct {
	ExpansionsDeleted int
	ModulesDeleted    int
	StepsDeleted      int
}

// CreateExpansionInput defines the input for creating an expansion
type CreateExpansionInput struct {
	GameID      string
	Name        string
	Description string
}

// CreateExpansionOutput defines the output for creating an expansion
type CreateExpansionOutput struct {
	Expansion *boardgame.Expansion
}

// DeleteExpansionInput defines the input for deleting an expansion and
// its modules
type DeleteExpansionInput struct {
	ExpansionID string
}

// DeleteExpansionOutput defines the output for deleting an expansion
type DeleteExpansionOutput struct {
	ModulesDeleted int
}

// CreateModuleInput defines the input for creating a module. An empty
// ExpansionID creates a base-game module.
type CreateModuleInput struct {
	GameID      string
	ExpansionID string
	Name        string
	Description string
}

// CreateModuleOutput defines the output for creating a module
type CreateModuleOutput struct {
	Module *boardgame.Module
}

// DeleteModuleInput defines the input for deleting a module
type DeleteModuleInput struct {
	ModuleID string
}

// DeleteModuleOutput defines the output for deleting a module
type DeleteModuleOutput struct {
}

// CreateStepInput defines the input for creating a step. Order is
// assigned by the orchestrator, never taken from the caller.
type CreateStepInput struct {
	GameID    string
	Text      string
	Visual    string
	Condition *boardgame.StepCondition
}

// CreateStepOutput defines the output for creating a step
type CreateStepOutput struct {
	Step *boardgame.Step
}

// UpdateStepInput defines the input for updating a step's content
type UpdateStepInput struct {
	StepID    string
	Text      string
	Visual    string
	Condition *boardgame.StepCondition
}

// UpdateStepOutput defines the output for updating a step
type UpdateStepOutput struct {
	Step *boardgame.Step
}

// DeleteStepInput defines the input for deleting a step
type DeleteStepInput struct {
	StepID string
}

// DeleteStepOutput defines the output for deleting a step
type DeleteStepOutput struct {
}

// ListStepsInput defines the input for listing a game's steps
type ListStepsInput struct {
	GameID string
}

// ListStepsOutput defines the output for listing a game's steps
type ListStepsOutput struct {
	Steps []*boardgame.Step
}

// ReorderStepInput defines the input for moving a step within the
// catalog. Indexes are positions in the order-sorted step list.
type ReorderStepInput struct {
	GameID    string
	FromIndex int
	ToIndex   int
}

// ReorderStepOutput defines the output for moving a step
type ReorderStepOutput struct {
	// Steps is the renumbered catalog after a successful persist
	Steps []*boardgame.Step
}
