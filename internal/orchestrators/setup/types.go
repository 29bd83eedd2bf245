package setup

import (
	"github.com/tablewise/setup-api/internal/entities/boardgame"
	setupsession "github.com/tablewise/setup-api/internal/repositories/setup_session"
)

// StartSessionInput defines the input for starting a setup session
type StartSessionInput struct {
	GameID string
}

// StartSessionOutput defines the output for starting a setup session
type StartSessionOutput struct {
	Session    *setupsession.Session
	Game       *boardgame.Game
	Expansions []*boardgame.Expansion
	// AvailableModules are the modules selectable under the fresh
	// default selection (base-game modules only, initially)
	AvailableModules []*boardgame.Module
	// Steps resolved for the default selection
	Steps []*boardgame.Step
	// Warning is set when the requested game was unknown and the
	// session fell back to the first catalog game
	Warning string
}

// GetSetupGuideInput defines the input for resolving a session's steps
type GetSetupGuideInput struct {
	SessionID string
}

// GetSetupGuideOutput defines the output for resolving a session's steps
type GetSetupGuideOutput struct {
	Session *setupsession.Session
	Game    *boardgame.Game
	Steps   []*boardgame.Step
}

// SetPlayerCountInput defines the input for changing the player count
type SetPlayerCountInput struct {
	SessionID   string
	PlayerCount int32
}

// SetPlayerCountOutput defines the output for changing the player count
type SetPlayerCountOutput struct {
	Session *setupsession.Session
	Steps   []*boardgame.Step
}

// ToggleExpansionInput defines the input for toggling an expansion
type ToggleExpansionInput struct {
	SessionID   string
	ExpansionID string
}

// ToggleExpansionOutput defines the output for toggling an expansion
type ToggleExpansionOutput struct {
	Session *setupsession.Session
	// AvailableModules reflects the new expansion selection
	AvailableModules []*boardgame.Module
	Steps            []*boardgame.Step
}

// ToggleModuleInput defines the input for toggling a module
type ToggleModuleInput struct {
	SessionID string
	ModuleID  string
}

// ToggleModuleOutput defines the output for toggling a module
type ToggleModuleOutput struct {
	Session *setupsession.Session
	Steps   []*boardgame.Step
}

// SwitchGameInput defines the input for pointing a session at another
// game
type SwitchGameInput struct {
	SessionID string
	GameID    string
}

// SwitchGameOutput defines the output for pointing a session at another
// game
type SwitchGameOutput struct {
	Session          *setupsession.Session
	Game             *boardgame.Game
	Expansions       []*boardgame.Expansion
	AvailableModules []*boardgame.Module
	Steps            []*boardgame.Step
}

// ListAvailableModulesInput defines the input for listing selectable
// modules
type ListAvailableModulesInput struct {
	SessionID string
}

// ListAvailableModulesOutput defines the output for listing selectable
// modules
type ListAvailableModulesOutput struct {
	Modules []*boardgame.Module
}

// catalog is one game's fully loaded step-resolution input. A catalog
// is only handed to the resolver when all four loads succeeded.
type catalog struct {
	game       *boardgame.Game
	expansions []*boardgame.Expansion
	modules    []*boardgame.Module
	steps      []*boardgame.Step
}
