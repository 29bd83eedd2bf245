// Package admin implements the orchestrator behind the admin consoles:
// game, expansion, module, and step CRUD plus drag-reorder persistence.
package admin

//go:generate mockgen -destination=mock/mock_service.go -package=adminmock github.com/tablewise/setup-api/internal/orchestrators/admin Service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tablewise/setup-api/internal/engine"
	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
	"github.com/tablewise/setup-api/internal/repositories/expansion"
	"github.com/tablewise/setup-api/internal/repositories/game"
	gamemodule "github.com/tablewise/setup-api/internal/repositories/game_module"
	"github.com/tablewise/setup-api/internal/repositories/step"
)

// Service defines the interface for admin operations
type Service interface {
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	CreateExpansion(ctx context.Context, input *CreateExpansionInput) (*CreateExpansionOutput, error)
	DeleteExpansion(ctx context.Context, input *DeleteExpansionInput) (*DeleteExpansionOutput, error)

	CreateModule(ctx context.Context, input *CreateModuleInput) (*CreateModuleOutput, error)
	DeleteModule(ctx context.Context, input *DeleteModuleInput) (*DeleteModuleOutput, error)

	// CreateStep appends a step at the end of the catalog: its order is
	// one past the current maximum, never derived from a list position.
	CreateStep(ctx context.Context, input *CreateStepInput) (*CreateStepOutput, error)
	UpdateStep(ctx context.Context, input *UpdateStepInput) (*UpdateStepOutput, error)
	DeleteStep(ctx context.Context, input *DeleteStepInput) (*DeleteStepOutput, error)
	ListSteps(ctx context.Context, input *ListStepsInput) (*ListStepsOutput, error)

	// ReorderStep moves the step at FromIndex to ToIndex and persists
	// the renumbered catalog, one order update per changed step. Any
	// single write failure fails the whole batch; callers must then
	// re-fetch the catalog rather than trust their local ordering.
	ReorderStep(ctx context.Context, input *ReorderStepInput) (*ReorderStepOutput, error)
}

// Config holds the dependencies for the admin orchestrator
type Config struct {
	GameRepo      game.Repository
	ExpansionRepo expansion.Repository
	ModuleRepo    gamemodule.Repository
	StepRepo      step.Repository
	Engine        engine.Engine
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameRepo == nil {
		vb.RequiredField("GameRepo")
	}
	if c.ExpansionRepo == nil {
		vb.RequiredField("ExpansionRepo")
	}
	if c.ModuleRepo == nil {
		vb.RequiredField("ModuleRepo")
	}
	if c.StepRepo == nil {
		vb.RequiredField("StepRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}

	return vb.Build()
}

type orchestrator struct {
	gameRepo      game.Repository
	expansionRepo expansion.Repository
	moduleRepo    gamemodule.Repository
	stepRepo      step.Repository
	engine        engine.Engine
}

// NewOrchestrator creates a new admin orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		gameRepo:      cfg.GameRepo,
		expansionRepo: cfg.ExpansionRepo,
		moduleRepo:    cfg.ModuleRepo,
		stepRepo:      cfg.StepRepo,
		engine:        cfg.Engine,
	}, nil
}

func (o *orchestrator) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	vb := errors.NewValidationBuilder()
	if input.Title == "" {
		vb.RequiredField("Title")
	}
	if len(input.PlayerCounts) == 0 {
		vb.RequiredField("PlayerCounts")
	}
	for _, c := range input.PlayerCounts {
		if c < 1 {
			vb.InvalidField("PlayerCounts", "player counts must be positive")
			break
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.gameRepo.Create(ctx, game.CreateInput{
		Game: &boardgame.Game{
			Title:        input.Title,
			Description:  input.Description,
			RulesURL:     input.RulesURL,
			PlayerCounts: input.PlayerCounts,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game")
	}

	slog.InfoContext(ctx, "game created",
		"game_id", out.Game.ID,
		"title", out.Game.Title)

	return &CreateGameOutput{Game: out.Game}, nil
}

func (o *orchestrator) ListGames(ctx context.Context, _ *ListGamesInput) (*ListGamesOutput, error) {
	out, err := o.gameRepo.List(ctx, game.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list games")
	}
	return &ListGamesOutput{Games: out.Games}, nil
}

func (o *orchestrator) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	expOut, err := o.expansionRepo.ListByGameID(ctx, expansion.ListByGameIDInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list expansions")
	}
	modOut, err := o.moduleRepo.ListByGameID(ctx, gamemodule.ListByGameIDInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list modules")
	}
	stepOut, err := o.stepRepo.ListByGameID(ctx, step.ListByGameIDInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list steps")
	}

	output := &DeleteGameOutput{}
	for _, m := range modOut.Modules {
		if _, err := o.moduleRepo.Delete(ctx, gamemodule.DeleteInput{ID: m.ID}); err != nil {
			return nil, errors.Wrapf(err, "failed to delete module %s", m.ID)
		}
		output.ModulesDeleted++
	}
	for _, e := range expOut.Expansions {
		if _, err := o.expansionRepo.Delete(ctx, expansion.DeleteInput{ID: e.ID}); err != nil {
			return nil, errors.Wrapf(err, "failed to delete expansion %s", e.ID)
		}
		output.ExpansionsDeleted++
	}
	for _, s := range stepOut.Steps {
		if _, err := o.stepRepo.Delete(ctx, step.DeleteInput{ID: s.ID}); err != nil {
			return nil, errors.Wrapf(err, "failed to delete step %s", s.ID)
		}
		output.StepsDeleted++
	}

	if _, err := o.gameRepo.Delete(ctx, game.DeleteInput{ID: input.GameID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete game")
	}

	slog.InfoContext(ctx, "game deleted",
		"game_id", input.GameID,
		"expansions_deleted", output.ExpansionsDeleted,
		"modules_deleted", output.ModulesDeleted,
		"steps_deleted", output.StepsDeleted)

	return output, nil
}

func (o *orchestrator) CreateExpansion(ctx context.Context, input *CreateExpansionInput) (*CreateExpansionOutput, error) {
	vb := errors.NewValidationBuilder()
	if input.GameID == "" {
		vb.RequiredField("GameID")
	}
	if input.Name == "" {
		vb.RequiredField("Name")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := o.gameRepo.Get(ctx, game.GetInput{ID: input.GameID}); err != nil {
		return nil, errors.Wrap(err, "failed to get owning game")
	}

	out, err := o.expansionRepo.Create(ctx, expansion.CreateInput{
		Expansion: &boardgame.Expansion{
			GameID:      input.GameID,
			Name:        input.Name,
			Description: input.Description,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create expansion")
	}

	return &CreateExpansionOutput{Expansion: out.Expansion}, nil
}

func (o *orchestrator) DeleteExpansion(ctx context.Context, input *DeleteExpansionInput) (*DeleteExpansionOutput, error) {
	if input.ExpansionID == "" {
		return nil, errors.InvalidArgument("expansion ID is required")
	}

	expOut, err := o.expansionRepo.Get(ctx, expansion.GetInput{ID: input.ExpansionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get expansion")
	}

	modOut, err := o.moduleRepo.ListByOwner(ctx, gamemodule.ListByOwnerInput{
		GameID:      expOut.Expansion.GameID,
		ExpansionID: input.ExpansionID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owned modules")
	}

	output := &DeleteExpansionOutput{}
	for _, m := range modOut.Modules {
		if _, err := o.moduleRepo.Delete(ctx, gamemodule.DeleteInput{ID: m.ID}); err != nil {
			return nil, errors.Wrapf(err, "failed to delete module %s", m.ID)
		}
		output.ModulesDeleted++
	}

	if _, err := o.expansionRepo.Delete(ctx, expansion.DeleteInput{ID: input.ExpansionID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete expansion")
	}

	return output, nil
}

func (o *orchestrator) CreateModule(ctx context.Context, input *CreateModuleInput) (*CreateModuleOutput, error) {
	vb := errors.NewValidationBuilder()
	if input.GameID == "" {
		vb.RequiredField("GameID")
	}
	if input.Name == "" {
		vb.RequiredField("Name")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := o.gameRepo.Get(ctx, game.GetInput{ID: input.GameID}); err != nil {
		return nil, errors.Wrap(err, "failed to get owning game")
	}

	if input.ExpansionID != "" {
		expOut, err := o.expansionRepo.Get(ctx, expansion.GetInput{ID: input.ExpansionID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get owning expansion")
		}
		if expOut.Expansion.GameID != input.GameID {
			return nil, errors.InvalidArgumentf(
				"expansion %s does not belong to game %s", input.ExpansionID, input.GameID)
		}
	}

	out, err := o.moduleRepo.Create(ctx, gamemodule.CreateInput{
		Module: &boardgame.Module{
			GameID:      input.GameID,
			ExpansionID: input.ExpansionID,
			Name:        input.Name,
			Description: input.Description,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create module")
	}

	return &CreateModuleOutput{Module: out.Module}, nil
}

func (o *orchestrator) DeleteModule(ctx context.Context, input *DeleteModuleInput) (*DeleteModuleOutput, error) {
	if input.ModuleID == "" {
		return nil, errors.InvalidArgument("module ID is required")
	}

	if _, err := o.moduleRepo.Delete(ctx, gamemodule.DeleteInput{ID: input.ModuleID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete module")
	}

	return &DeleteModuleOutput{}, nil
}

func (o *orchestrator) CreateStep(ctx context.Context, input *CreateStepInput) (*CreateStepOutput, error) {
	vb := errors.NewValidationBuilder()
	if input.GameID == "" {
		vb.RequiredField("GameID")
	}
	if input.Text == "" {
		vb.RequiredField("Text")
	}
	validateCondition(input.Condition, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	listOut, err := o.stepRepo.ListByGameID(ctx, step.ListByGameIDInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list steps")
	}

	out, err := o.stepRepo.Create(ctx, step.CreateInput{
		Step: &boardgame.Step{
			GameID:    input.GameID,
			Order:     o.engine.NextStepOrder(listOut.Steps),
			Text:      input.Text,
			Visual:    input.Visual,
			Condition: input.Condition,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create step")
	}

	slog.InfoContext(ctx, "step created",
		"step_id", out.Step.ID,
		"game_id", input.GameID,
		"order", out.Step.Order)

	return &CreateStepOutput{Step: out.Step}, nil
}

func (o *orchestrator) UpdateStep(ctx context.Context, input *UpdateStepInput) (*UpdateStepOutput, error) {
	vb := errors.NewValidationBuilder()
	if input.StepID == "" {
		vb.RequiredField("StepID")
	}
	if input.Text == "" {
		vb.RequiredField("Text")
	}
	validateCondition(input.Condition, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.stepRepo.Update(ctx, step.UpdateInput{
		Step: &boardgame.Step{
			ID:        input.StepID,
			Text:      input.Text,
			Visual:    input.Visual,
			Condition: input.Condition,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update step")
	}

	return &UpdateStepOutput{Step: out.Step}, nil
}

func (o *orchestrator) DeleteStep(ctx context.Context, input *DeleteStepInput) (*DeleteStepOutput, error) {
	if input.StepID == "" {
		return nil, errors.InvalidArgument("step ID is required")
	}

	if _, err := o.stepRepo.Delete(ctx, step.DeleteInput{ID: input.StepID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete step")
	}

	return &DeleteStepOutput{}, nil
}

func (o *orchestrator) ListSteps(ctx context.Context, input *ListStepsInput) (*ListStepsOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	out, err := o.stepRepo.ListByGameID(ctx, step.ListByGameIDInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list steps")
	}

	return &ListStepsOutput{Steps: out.Steps}, nil
}

func (o *orchestrator) ReorderStep(ctx context.Context, input *ReorderStepInput) (*ReorderStepOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	listOut, err := o.stepRepo.ListByGameID(ctx, step.ListByGameIDInput{GameID: input.GameID})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load step catalog").
			WithMeta("phase", "load")
	}
	steps := listOut.Steps

	// Dropping a step on itself is a no-op, not a reorder.
	if input.FromIndex == input.ToIndex {
		if input.FromIndex < 0 || input.FromIndex >= len(steps) {
			return nil, errors.InvalidArgumentf("index %d out of range [0,%d)", input.FromIndex, len(steps))
		}
		return &ReorderStepOutput{Steps: steps}, nil
	}

	reordered, err := o.engine.ReorderSteps(steps, input.FromIndex, input.ToIndex)
	if err != nil {
		return nil, err
	}

	// One write per step whose order actually changed, issued
	// concurrently. All must succeed; a single failure fails the batch
	// and the caller re-fetches the authoritative catalog.
	prior := make(map[string]int32, len(steps))
	for _, s := range steps {
		prior[s.ID] = s.Order
	}

	g, gctx := errgroup.WithContext(ctx)
	changed := 0
	for _, s := range reordered {
		if prior[s.ID] == s.Order {
			continue
		}
		changed++
		update := step.UpdateOrderInput{ID: s.ID, Order: s.Order}
		g.Go(func() error {
			_, err := o.stepRepo.UpdateOrder(gctx, update)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "reorder persistence failed",
			"game_id", input.GameID,
			"from", input.FromIndex,
			"to", input.ToIndex,
			"error", err.Error())
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable,
			"failed to persist reordered steps").
			WithMeta("phase", "persist").
			WithMeta("game_id", input.GameID)
	}

	slog.InfoContext(ctx, "steps reordered",
		"game_id", input.GameID,
		"from", input.FromIndex,
		"to", input.ToIndex,
		"writes", changed)

	return &ReorderStepOutput{Steps: reordered}, nil
}

// validateCondition rejects malformed condition fields before anything
// is written. A nil condition is always valid.
func validateCondition(cond *boardgame.StepCondition, vb *errors.ValidationBuilder) {
	if cond == nil {
		return
	}
	for _, c := range cond.PlayerCounts {
		if c < 1 {
			vb.InvalidField("Condition.PlayerCounts", "player counts must be positive")
			break
		}
	}
	checkIDs := func(field string, ids []string) {
		for _, id := range ids {
			if id == "" {
				vb.InvalidField(field, "ids cannot be empty")
				return
			}
		}
	}
	checkIDs("Condition.IncludeExpansions", cond.IncludeExpansions)
	checkIDs("Condition.ExcludeExpansions", cond.ExcludeExpansions)
	checkIDs("Condition.IncludeModules", cond.IncludeModules)
	checkIDs("Condition.ExcludeModules", cond.ExcludeModules)
}
