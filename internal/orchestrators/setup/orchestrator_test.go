package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/tablewise/setup-api/internal/engine"
	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
	"github.com/tablewise/setup-api/internal/orchestrators/setup"
	"github.com/tablewise/setup-api/internal/repositories/expansion"
	expansionmock "github.com/tablewise/setup-api/internal/repositories/expansion/mock"
	"github.com/tablewise/setup-api/internal/repositories/game"
	gamemock "github.com/tablewise/setup-api/internal/repositories/game/mock"
	gamemodule "github.com/tablewise/setup-api/internal/repositories/game_module"
	gamemodulemock "github.com/tablewise/setup-api/internal/repositories/game_module/mock"
	setupsession "github.com/tablewise/setup-api/internal/repositories/setup_session"
	setupsessionmock "github.com/tablewise/setup-api/internal/repositories/setup_session/mock"
	"github.com/tablewise/setup-api/internal/repositories/step"
	stepmock "github.com/tablewise/setup-api/internal/repositories/step/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockGameRepo    *gamemock.MockRepository
	mockExpRepo     *expansionmock.MockRepository
	mockModuleRepo  *gamemodulemock.MockRepository
	mockStepRepo    *stepmock.MockRepository
	mockSessionRepo *setupsessionmock.MockRepository
	orchestrator    setup.Service
	ctx             context.Context

	testGame    *boardgame.Game
	testSteps   []*boardgame.Step
	testModules []*boardgame.Module
	testExps    []*boardgame.Expansion
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockGameRepo = gamemock.NewMockRepository(s.ctrl)
	s.mockExpRepo = expansionmock.NewMockRepository(s.ctrl)
	s.mockModuleRepo = gamemodulemock.NewMockRepository(s.ctrl)
	s.mockStepRepo = stepmock.NewMockRepository(s.ctrl)
	s.mockSessionRepo = setupsessionmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	eng, err := engine.New(&engine.Config{})
	s.Require().NoError(err)

	orchestrator, err := setup.NewOrchestrator(&setup.Config{
		GameRepo:      s.mockGameRepo,
		ExpansionRepo: s.mockExpRepo,
		ModuleRepo:    s.mockModuleRepo,
		StepRepo:      s.mockStepRepo,
		SessionRepo:   s.mockSessionRepo,
		Engine:        eng,
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator

	s.testGame = &boardgame.Game{
		ID:           "game-1",
		Title:        "Harbors of Valdheim",
		PlayerCounts: []int32{2, 3, 4},
	}
	s.testExps = []*boardgame.Expansion{
		{ID: "exp-north", GameID: "game-1", Name: "Frozen Straits"},
	}
	s.testModules = []*boardgame.Module{
		{ID: "mod-winter", GameID: "game-1", ExpansionID: "exp-north"},
		{ID: "mod-variant", GameID: "game-1"},
	}
	s.testSteps = []*boardgame.Step{
		{ID: "s1", GameID: "game-1", Order: 1, Text: "Place the board."},
		{ID: "s2", GameID: "game-1", Order: 2, Text: "Base only.", Condition: &boardgame.StepCondition{
			RequireNoExpansions: true,
		}},
		{ID: "s3", GameID: "game-1", Order: 3, Text: "North setup.", Condition: &boardgame.StepCondition{
			IncludeExpansions: []string{"exp-north"},
		}},
	}
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectCatalogLoad wires the four concurrent catalog fetches for the
// test game.
func (s *OrchestratorTestSuite) expectCatalogLoad() {
	s.mockGameRepo.EXPECT().
		Get(gomock.Any(), game.GetInput{ID: "game-1"}).
		Return(&game.GetOutput{Game: s.testGame}, nil)
	s.mockExpRepo.EXPECT().
		ListByGameID(gomock.Any(), expansion.ListByGameIDInput{GameID: "game-1"}).
		Return(&expansion.ListByGameIDOutput{Expansions: s.testExps}, nil)
	s.mockModuleRepo.EXPECT().
		ListByGameID(gomock.Any(), gamemodule.ListByGameIDInput{GameID: "game-1"}).
		Return(&gamemodule.ListByGameIDOutput{Modules: s.testModules}, nil)
	s.mockStepRepo.EXPECT().
		ListByGameID(gomock.Any(), step.ListByGameIDInput{GameID: "game-1"}).
		Return(&step.ListByGameIDOutput{Steps: s.testSteps}, nil)
}

func (s *OrchestratorTestSuite) session(selection *boardgame.Selection) *setupsession.Session {
	return &setupsession.Session{
		ID:        "sess-1",
		GameID:    "game-1",
		Selection: selection,
		Revision:  3,
	}
}

func (s *OrchestratorTestSuite) expectGetSession(selection *boardgame.Selection) {
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, setupsession.GetInput{ID: "sess-1"}).
		Return(&setupsession.GetOutput{Session: s.session(selection)}, nil)
}

func (s *OrchestratorTestSuite) TestStartSession() {
	s.expectCatalogLoad()

	s.mockSessionRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input setupsession.CreateInput) (*setupsession.CreateOutput, error) {
			s.Equal("game-1", input.GameID)
			s.Equal(setup.DefaultSessionTTL, input.TTL)
			s.Equal(int32(2), input.Selection.PlayerCount)
			s.Empty(input.Selection.SelectedExpansions)
			return &setupsession.CreateOutput{
				Session: &setupsession.Session{
					ID:        "sess-1",
					GameID:    input.GameID,
					Selection: input.Selection,
					Revision:  1,
				},
			}, nil
		})

	output, err := s.orchestrator.StartSession(s.ctx, &setup.StartSessionInput{GameID: "game-1"})
	s.Require().NoError(err)
	s.Equal("sess-1", output.Session.ID)
	s.Equal(s.testGame, output.Game)
	s.Empty(output.Warning)

	// Default selection: unconditional and base-only steps apply.
	s.Len(output.Steps, 2)
	s.Equal("s1", output.Steps[0].ID)
	s.Equal("s2", output.Steps[1].ID)

	// Only the base-game module is selectable before any expansion.
	s.Len(output.AvailableModules, 1)
	s.Equal("mod-variant", output.AvailableModules[0].ID)
}

func (s *OrchestratorTestSuite) TestStartSession_UnknownGameFallsBack() {
	notFound := errors.NotFound("game missing not found")
	s.mockGameRepo.EXPECT().
		Get(gomock.Any(), game.GetInput{ID: "missing"}).
		Return(nil, notFound)
	// The sibling loads race the failing Get; they may or may not run.
	s.mockExpRepo.EXPECT().
		ListByGameID(gomock.Any(), expansion.ListByGameIDInput{GameID: "missing"}).
		Return(&expansion.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockModuleRepo.EXPECT().
		ListByGameID(gomock.Any(), gamemodule.ListByGameIDInput{GameID: "missing"}).
		Return(&gamemodule.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockStepRepo.EXPECT().
		ListByGameID(gomock.Any(), step.ListByGameIDInput{GameID: "missing"}).
		Return(&step.ListByGameIDOutput{}, nil).
		AnyTimes()

	s.mockGameRepo.EXPECT().
		List(s.ctx, game.ListInput{}).
		Return(&game.ListOutput{Games: []*boardgame.Game{s.testGame}}, nil)

	s.expectCatalogLoad()

	s.mockSessionRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input setupsession.CreateInput) (*setupsession.CreateOutput, error) {
			s.Equal("game-1", input.GameID)
			return &setupsession.CreateOutput{
				Session: &setupsession.Session{ID: "sess-1", GameID: input.GameID, Selection: input.Selection, Revision: 1},
			}, nil
		})

	output, err := s.orchestrator.StartSession(s.ctx, &setup.StartSessionInput{GameID: "missing"})
	s.Require().NoError(err)
	s.Equal("game-1", output.Game.ID)
	s.Contains(output.Warning, "missing")
	s.Contains(output.Warning, s.testGame.Title)
}

func (s *OrchestratorTestSuite) TestStartSession_NoGamesAtAll() {
	s.mockGameRepo.EXPECT().
		Get(gomock.Any(), game.GetInput{ID: "missing"}).
		Return(nil, errors.NotFound("not found"))
	s.mockExpRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&expansion.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockModuleRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&gamemodule.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockStepRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&step.ListByGameIDOutput{}, nil).
		AnyTimes()

	s.mockGameRepo.EXPECT().
		List(s.ctx, game.ListInput{}).
		Return(&game.ListOutput{}, nil)

	output, err := s.orchestrator.StartSession(s.ctx, &setup.StartSessionInput{GameID: "missing"})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestStartSession_CatalogLoadFailure() {
	s.mockGameRepo.EXPECT().
		Get(gomock.Any(), game.GetInput{ID: "game-1"}).
		Return(nil, errors.Internal("redis down"))
	s.mockExpRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&expansion.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockModuleRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&gamemodule.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockStepRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&step.ListByGameIDOutput{}, nil).
		AnyTimes()

	output, err := s.orchestrator.StartSession(s.ctx, &setup.StartSessionInput{GameID: "game-1"})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsUnavailable(err))
	s.Equal("load", errors.GetMeta(err)["phase"])
}

func (s *OrchestratorTestSuite) TestGetSetupGuide() {
	selection := &boardgame.Selection{
		PlayerCount:        3,
		SelectedExpansions: []string{"exp-north"},
		SelectedModules:    []string{},
	}
	s.expectGetSession(selection)
	s.expectCatalogLoad()

	output, err := s.orchestrator.GetSetupGuide(s.ctx, &setup.GetSetupGuideInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	// Expansion selected: base-only step out, expansion step in.
	s.Len(output.Steps, 2)
	s.Equal("s1", output.Steps[0].ID)
	s.Equal("s3", output.Steps[1].ID)
}

func (s *OrchestratorTestSuite) TestSetPlayerCount() {
	selection := &boardgame.Selection{
		PlayerCount:        2,
		SelectedExpansions: []string{},
		SelectedModules:    []string{},
	}
	s.expectGetSession(selection)
	s.expectCatalogLoad()

	s.mockSessionRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input setupsession.UpdateInput) (*setupsession.UpdateOutput, error) {
			s.Equal("sess-1", input.ID)
			s.Equal(int64(3), input.ExpectedRevision)
			s.Equal(int32(4), input.Selection.PlayerCount)
			return &setupsession.UpdateOutput{
				Session: &setupsession.Session{
					ID:        input.ID,
					GameID:    input.GameID,
					Selection: input.Selection,
					Revision:  4,
				},
			}, nil
		})

	output, err := s.orchestrator.SetPlayerCount(s.ctx, &setup.SetPlayerCountInput{
		SessionID:   "sess-1",
		PlayerCount: 4,
	})
	s.Require().NoError(err)
	s.Equal(int32(4), output.Session.Selection.PlayerCount)
	s.Equal(int64(4), output.Session.Revision)
}

func (s *OrchestratorTestSuite) TestSetPlayerCount_OutOfDomainRejected() {
	selection := &boardgame.Selection{
		PlayerCount:        2,
		SelectedExpansions: []string{},
		SelectedModules:    []string{},
	}
	s.expectGetSession(selection)
	s.expectCatalogLoad()
	// No Update expectation: the rejected value must never be written.

	output, err := s.orchestrator.SetPlayerCount(s.ctx, &setup.SetPlayerCountInput{
		SessionID:   "sess-1",
		PlayerCount: 9,
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestToggleExpansion_CascadesModuleRemoval() {
	selection := &boardgame.Selection{
		PlayerCount:        3,
		SelectedExpansions: []string{"exp-north"},
		SelectedModules:    []string{"mod-winter", "mod-variant"},
	}
	s.expectGetSession(selection)

	s.mockExpRepo.EXPECT().
		Get(s.ctx, expansion.GetInput{ID: "exp-north"}).
		Return(&expansion.GetOutput{Expansion: s.testExps[0]}, nil)

	s.expectCatalogLoad()

	s.mockSessionRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input setupsession.UpdateInput) (*setupsession.UpdateOutput, error) {
			// Deselecting the expansion drops its module in the same write.
			s.Empty(input.Selection.SelectedExpansions)
			s.Equal([]string{"mod-variant"}, input.Selection.SelectedModules)
			return &setupsession.UpdateOutput{
				Session: &setupsession.Session{ID: input.ID, GameID: input.GameID, Selection: input.Selection, Revision: 4},
			}, nil
		})

	output, err := s.orchestrator.ToggleExpansion(s.ctx, &setup.ToggleExpansionInput{
		SessionID:   "sess-1",
		ExpansionID: "exp-north",
	})
	s.Require().NoError(err)
	s.False(output.Session.Selection.HasModule("mod-winter"))

	// Resolver sees the cleaned selection: base-only step is back.
	s.Len(output.Steps, 2)
	s.Equal("s2", output.Steps[1].ID)
}

func (s *OrchestratorTestSuite) TestToggleExpansion_WrongGame() {
	selection := &boardgame.Selection{PlayerCount: 2, SelectedExpansions: []string{}, SelectedModules: []string{}}
	s.expectGetSession(selection)

	s.mockExpRepo.EXPECT().
		Get(s.ctx, expansion.GetInput{ID: "exp-other"}).
		Return(&expansion.GetOutput{
			Expansion: &boardgame.Expansion{ID: "exp-other", GameID: "game-2"},
		}, nil)

	output, err := s.orchestrator.ToggleExpansion(s.ctx, &setup.ToggleExpansionInput{
		SessionID:   "sess-1",
		ExpansionID: "exp-other",
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestToggleModule_RequiresExpansion() {
	selection := &boardgame.Selection{PlayerCount: 2, SelectedExpansions: []string{}, SelectedModules: []string{}}
	s.expectGetSession(selection)

	s.mockModuleRepo.EXPECT().
		Get(s.ctx, gamemodule.GetInput{ID: "mod-winter"}).
		Return(&gamemodule.GetOutput{Module: s.testModules[0]}, nil)

	output, err := s.orchestrator.ToggleModule(s.ctx, &setup.ToggleModuleInput{
		SessionID: "sess-1",
		ModuleID:  "mod-winter",
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestToggleModule_RevisionRaceAborts() {
	selection := &boardgame.Selection{PlayerCount: 2, SelectedExpansions: []string{}, SelectedModules: []string{}}
	s.expectGetSession(selection)

	s.mockModuleRepo.EXPECT().
		Get(s.ctx, gamemodule.GetInput{ID: "mod-variant"}).
		Return(&gamemodule.GetOutput{Module: s.testModules[1]}, nil)

	s.expectCatalogLoad()

	s.mockSessionRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.Aborted("session revision changed"))

	output, err := s.orchestrator.ToggleModule(s.ctx, &setup.ToggleModuleInput{
		SessionID: "sess-1",
		ModuleID:  "mod-variant",
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsAborted(err))
}

func (s *OrchestratorTestSuite) TestSwitchGame_ResetsSelection() {
	selection := &boardgame.Selection{
		PlayerCount:        4,
		SelectedExpansions: []string{"exp-old"},
		SelectedModules:    []string{"mod-old"},
	}
	s.mockSessionRepo.EXPECT().
		Get(s.ctx, setupsession.GetInput{ID: "sess-1"}).
		Return(&setupsession.GetOutput{
			Session: &setupsession.Session{ID: "sess-1", GameID: "game-0", Selection: selection, Revision: 7},
		}, nil)

	s.expectCatalogLoad()

	s.mockSessionRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input setupsession.UpdateInput) (*setupsession.UpdateOutput, error) {
			s.Equal("game-1", input.GameID)
			s.Equal(int64(7), input.ExpectedRevision)
			s.Equal(int32(2), input.Selection.PlayerCount)
			s.Empty(input.Selection.SelectedExpansions)
			s.Empty(input.Selection.SelectedModules)
			return &setupsession.UpdateOutput{
				Session: &setupsession.Session{ID: input.ID, GameID: input.GameID, Selection: input.Selection, Revision: 8},
			}, nil
		})

	output, err := s.orchestrator.SwitchGame(s.ctx, &setup.SwitchGameInput{
		SessionID: "sess-1",
		GameID:    "game-1",
	})
	s.Require().NoError(err)
	s.Equal("game-1", output.Session.GameID)
	s.Equal(int32(2), output.Session.Selection.PlayerCount)
}

func (s *OrchestratorTestSuite) TestSwitchGame_UnknownGame() {
	selection := &boardgame.Selection{PlayerCount: 2, SelectedExpansions: []string{}, SelectedModules: []string{}}
	s.expectGetSession(selection)

	s.mockGameRepo.EXPECT().
		Get(gomock.Any(), game.GetInput{ID: "nope"}).
		Return(nil, errors.NotFound("game nope not found"))
	s.mockExpRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&expansion.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockModuleRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&gamemodule.ListByGameIDOutput{}, nil).
		AnyTimes()
	s.mockStepRepo.EXPECT().
		ListByGameID(gomock.Any(), gomock.Any()).
		Return(&step.ListByGameIDOutput{}, nil).
		AnyTimes()

	// Unlike StartSession there is no fallback here: switching to a
	// game that does not exist is the caller's mistake.
	output, err := s.orchestrator.SwitchGame(s.ctx, &setup.SwitchGameInput{
		SessionID: "sess-1",
		GameID:    "nope",
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListAvailableModules() {
	selection := &boardgame.Selection{
		PlayerCount:        2,
		SelectedExpansions: []string{"exp-north"},
		SelectedModules:    []string{},
	}
	s.expectGetSession(selection)

	s.mockModuleRepo.EXPECT().
		ListByGameID(s.ctx, gamemodule.ListByGameIDInput{GameID: "game-1"}).
		Return(&gamemodule.ListByGameIDOutput{Modules: s.testModules}, nil)

	output, err := s.orchestrator.ListAvailableModules(s.ctx, &setup.ListAvailableModulesInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Len(output.Modules, 2)
}

func (s *OrchestratorTestSuite) TestValidation_EmptySessionID() {
	_, err := s.orchestrator.GetSetupGuide(s.ctx, &setup.GetSetupGuideInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.SetPlayerCount(s.ctx, &setup.SetPlayerCountInput{PlayerCount: 2})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.ToggleExpansion(s.ctx, &setup.ToggleExpansionInput{ExpansionID: "exp-north"})
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
