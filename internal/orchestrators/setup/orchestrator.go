// Package setup implements the player-facing orchestrator: it loads a
// game's catalog, keeps the per-session selection consistent, and runs
// a fresh resolver pass after every change.
package setup

//go:generate mockgen -destination=mock/mock_service.go -package=setupmock github.com/tablewise/setup-api/internal/orchestrators/setup Service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tablewise/setup-api/internal/engine"
	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
	"github.com/tablewise/setup-api/internal/repositories/expansion"
	"github.com/tablewise/setup-api/internal/repositories/game"
	gamemodule "github.com/tablewise/setup-api/internal/repositories/game_module"
	"github.com/tablewise/setup-api/internal/repositories/step"
	setupsession "github.com/tablewise/setup-api/internal/repositories/setup_session"
)

// DefaultSessionTTL bounds how long an untouched setup session lives.
const DefaultSessionTTL = 4 * time.Hour

// Service defines the interface for setup guide operations
type Service interface {
	// StartSession loads a game's catalog and creates a fresh session
	// with the default selection. An unknown game ID falls back to the
	// first catalog game; the fallback is surfaced as a warning.
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// GetSetupGuide resolves the session's visible steps from a fresh
	// catalog load.
	GetSetupGuide(ctx context.Context, input *GetSetupGuideInput) (*GetSetupGuideOutput, error)

	// SetPlayerCount updates the session's player count. Out-of-domain
	// values are rejected and the stored session is untouched.
	SetPlayerCount(ctx context.Context, input *SetPlayerCountInput) (*SetPlayerCountOutput, error)

	// ToggleExpansion flips an expansion selection, cascading the
	// removal of orphaned module selections in the same update.
	ToggleExpansion(ctx context.Context, input *ToggleExpansionInput) (*ToggleExpansionOutput, error)

	// ToggleModule flips a module selection. Selecting a module whose
	// owning expansion is not selected is rejected.
	ToggleModule(ctx context.Context, input *ToggleModuleInput) (*ToggleModuleOutput, error)

	// SwitchGame points the session at another game, resetting the
	// selection to that game's defaults.
	SwitchGame(ctx context.Context, input *SwitchGameInput) (*SwitchGameOutput, error)

	// ListAvailableModules lists the modules selectable under the
	// session's current expansion selection.
	ListAvailableModules(ctx context.Context, input *ListAvailableModulesInput) (*ListAvailableModulesOutput, error)
}

// Config holds the dependencies for the setup orchestrator
type Config struct {
	GameRepo      game.Repository
	ExpansionRepo expansion.Repository
	ModuleRepo    gamemodule.Repository
	StepRepo      step.Repository
	SessionRepo   setupsession.Repository
	Engine        engine.Engine
	SessionTTL    time.Duration
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
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
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
	sessionRepo   setupsession.Repository
	engine        engine.Engine
	sessionTTL    time.Duration
}

// NewOrchestrator creates a new setup orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		gameRepo:      cfg.GameRepo,
		expansionRepo: cfg.ExpansionRepo,
		moduleRepo:    cfg.ModuleRepo,
		stepRepo:      cfg.StepRepo,
		sessionRepo:   cfg.SessionRepo,
		engine:        cfg.Engine,
		sessionTTL:    ttl,
	}, nil
}

// loadCatalog fetches the four catalog parts concurrently. All four
// must succeed; a partial catalog is never handed to the resolver.
func (o *orchestrator) loadCatalog(ctx context.Context, gameID string) (*catalog, error) {
	cat := &catalog{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := o.gameRepo.Get(gctx, game.GetInput{ID: gameID})
		if err != nil {
			return err
		}
		cat.game = out.Game
		return nil
	})
	g.Go(func() error {
		out, err := o.expansionRepo.ListByGameID(gctx, expansion.ListByGameIDInput{GameID: gameID})
		if err != nil {
			return err
		}
		cat.expansions = out.Expansions
		return nil
	})
	g.Go(func() error {
		out, err := o.moduleRepo.ListByGameID(gctx, gamemodule.ListByGameIDInput{GameID: gameID})
		if err != nil {
			return err
		}
		cat.modules = out.Modules
		return nil
	})
	g.Go(func() error {
		out, err := o.stepRepo.ListByGameID(gctx, step.ListByGameIDInput{GameID: gameID})
		if err != nil {
			return err
		}
		cat.steps = out.Steps
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable,
			"failed to load catalog for game %s", gameID).
			WithMeta("phase", "load").
			WithMeta("game_id", gameID)
	}

	return cat, nil
}

func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	warning := ""
	cat, err := o.loadCatalog(ctx, input.GameID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}

		// Unknown game: fall back to the first catalog game rather than
		// failing the whole view, but say so.
		listOut, listErr := o.gameRepo.List(ctx, game.ListInput{})
		if listErr != nil {
			return nil, errors.WrapWithCode(listErr, errors.CodeUnavailable,
				"failed to list games for fallback").
				WithMeta("phase", "load")
		}
		if len(listOut.Games) == 0 {
			return nil, errors.NotFoundf("game %s not found and no games exist", input.GameID)
		}

		fallback := listOut.Games[0]
		slog.WarnContext(ctx, "unknown game, falling back to first catalog entry",
			"requested_game_id", input.GameID,
			"fallback_game_id", fallback.ID)
		warning = "game " + input.GameID + " not found; showing " + fallback.Title

		cat, err = o.loadCatalog(ctx, fallback.ID)
		if err != nil {
			return nil, err
		}
	}

	selection := o.engine.NewSelection(cat.game)
	createOut, err := o.sessionRepo.Create(ctx, setupsession.CreateInput{
		GameID:    cat.game.ID,
		Selection: selection,
		TTL:       o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create setup session")
	}

	slog.InfoContext(ctx, "setup session started",
		"session_id", createOut.Session.ID,
		"game_id", cat.game.ID,
		"step_count", len(cat.steps))

	return &StartSessionOutput{
		Session:          createOut.Session,
		Game:             cat.game,
		Expansions:       cat.expansions,
		AvailableModules: o.engine.AvailableModules(cat.modules, selection),
		Steps:            o.engine.ResolveSteps(cat.steps, selection),
		Warning:          warning,
	}, nil
}

func (o *orchestrator) GetSetupGuide(ctx context.Context, input *GetSetupGuideInput) (*GetSetupGuideOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	sess, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	cat, err := o.loadCatalog(ctx, sess.GameID)
	if err != nil {
		return nil, err
	}

	return &GetSetupGuideOutput{
		Session: sess,
		Game:    cat.game,
		Steps:   o.engine.ResolveSteps(cat.steps, sess.Selection),
	}, nil
}

func (o *orchestrator) SetPlayerCount(ctx context.Context, input *SetPlayerCountInput) (*SetPlayerCountOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	sess, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	cat, err := o.loadCatalog(ctx, sess.GameID)
	if err != nil {
		return nil, err
	}

	next, err := o.engine.ApplyPlayerCount(cat.game, sess.Selection, input.PlayerCount)
	if err != nil {
		// Rejected, prior selection retained.
		return nil, err
	}

	updated, err := o.saveSelection(ctx, sess, next)
	if err != nil {
		return nil, err
	}

	return &SetPlayerCountOutput{
		Session: updated,
		Steps:   o.engine.ResolveSteps(cat.steps, updated.Selection),
	}, nil
}

func (o *orchestrator) ToggleExpansion(ctx context.Context, input *ToggleExpansionInput) (*ToggleExpansionOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.ExpansionID == "" {
		return nil, errors.InvalidArgument("expansion ID is required")
	}

	sess, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	expOut, err := o.expansionRepo.Get(ctx, expansion.GetInput{ID: input.ExpansionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get expansion")
	}
	if expOut.Expansion.GameID != sess.GameID {
		return nil, errors.InvalidArgumentf(
			"expansion %s does not belong to game %s", input.ExpansionID, sess.GameID)
	}

	cat, err := o.loadCatalog(ctx, sess.GameID)
	if err != nil {
		return nil, err
	}

	next := o.engine.ToggleExpansion(sess.Selection, input.ExpansionID, cat.modules)
	updated, err := o.saveSelection(ctx, sess, next)
	if err != nil {
		return nil, err
	}

	return &ToggleExpansionOutput{
		Session:          updated,
		AvailableModules: o.engine.AvailableModules(cat.modules, updated.Selection),
		Steps:            o.engine.ResolveSteps(cat.steps, updated.Selection),
	}, nil
}

func (o *orchestrator) ToggleModule(ctx context.Context, input *ToggleModuleInput) (*ToggleModuleOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.ModuleID == "" {
		return nil, errors.InvalidArgument("module ID is required")
	}

	sess, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	modOut, err := o.moduleRepo.Get(ctx, gamemodule.GetInput{ID: input.ModuleID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get module")
	}
	if modOut.Module.GameID != sess.GameID {
		return nil, errors.InvalidArgumentf(
			"module %s does not belong to game %s", input.ModuleID, sess.GameID)
	}

	next, err := o.engine.ToggleModule(sess.Selection, modOut.Module)
	if err != nil {
		return nil, err
	}

	cat, err := o.loadCatalog(ctx, sess.GameID)
	if err != nil {
		return nil, err
	}

	updated, err := o.saveSelection(ctx, sess, next)
	if err != nil {
		return nil, err
	}

	return &ToggleModuleOutput{
		Session: updated,
		Steps:   o.engine.ResolveSteps(cat.steps, updated.Selection),
	}, nil
}

func (o *orchestrator) SwitchGame(ctx context.Context, input *SwitchGameInput) (*SwitchGameOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	sess, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	cat, err := o.loadCatalog(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	// Selection starts over: player count at the new game's minimum,
	// nothing selected.
	selection := o.engine.NewSelection(cat.game)
	updateOut, err := o.sessionRepo.Update(ctx, setupsession.UpdateInput{
		ID:               sess.ID,
		GameID:           cat.game.ID,
		Selection:        selection,
		ExpectedRevision: sess.Revision,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to switch session game")
	}

	slog.InfoContext(ctx, "session switched game",
		"session_id", sess.ID,
		"game_id", cat.game.ID)

	return &SwitchGameOutput{
		Session:          updateOut.Session,
		Game:             cat.game,
		Expansions:       cat.expansions,
		AvailableModules: o.engine.AvailableModules(cat.modules, selection),
		Steps:            o.engine.ResolveSteps(cat.steps, selection),
	}, nil
}

func (o *orchestrator) ListAvailableModules(ctx context.Context, input *ListAvailableModulesInput) (*ListAvailableModulesOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	sess, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	modOut, err := o.moduleRepo.ListByGameID(ctx, gamemodule.ListByGameIDInput{GameID: sess.GameID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list modules")
	}

	return &ListAvailableModulesOutput{
		Modules: o.engine.AvailableModules(modOut.Modules, sess.Selection),
	}, nil
}

func (o *orchestrator) getSession(ctx context.Context, sessionID string) (*setupsession.Session, error) {
	out, err := o.sessionRepo.Get(ctx, setupsession.GetInput{ID: sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get setup session")
	}
	return out.Session, nil
}

// saveSelection writes a mutated selection back with the revision the
// mutation was based on. A revision race surfaces as Aborted and the
// caller's optimistic state is discarded.
func (o *orchestrator) saveSelection(
	ctx context.Context,
	sess *setupsession.Session,
	next *boardgame.Selection,
) (*setupsession.Session, error) {
	out, err := o.sessionRepo.Update(ctx, setupsession.UpdateInput{
		ID:               sess.ID,
		GameID:           sess.GameID,
		Selection:        next,
		ExpectedRevision: sess.Revision,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update setup session")
	}
	return out.Session, nil
}
