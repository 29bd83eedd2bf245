package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/orchestrators/admin"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo game catalog",
	Long:  `Seed the configured Redis instance with a demo game, expansions, modules, and conditional setup steps. Useful for local development.`,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, adminSvc, err := buildServices(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	gameOut, err := adminSvc.CreateGame(ctx, &admin.CreateGameInput{
		Title:        "Harbors of Valdheim",
		Description:  "A worker placement game of trade and tides.",
		RulesURL:     "https://example.com/valdheim/rules.pdf",
		PlayerCounts: []int32{2, 3, 4},
	})
	if err != nil {
		return err
	}
	gameID := gameOut.Game.ID
	log.Printf("created game %s (%s)", gameOut.Game.Title, gameID)

	expOut, err := adminSvc.CreateExpansion(ctx, &admin.CreateExpansionInput{
		GameID:      gameID,
		Name:        "Frozen Straits",
		Description: "Adds ice floes and the winter trade routes.",
	})
	if err != nil {
		return err
	}
	expansionID := expOut.Expansion.ID
	log.Printf("created expansion %s (%s)", expOut.Expansion.Name, expansionID)

	modOut, err := adminSvc.CreateModule(ctx, &admin.CreateModuleInput{
		GameID:      gameID,
		ExpansionID: expansionID,
		Name:        "Icebreaker Ships",
		Description: "Optional ship upgrades for the Frozen Straits.",
	})
	if err != nil {
		return err
	}
	log.Printf("created module %s (%s)", modOut.Module.Name, modOut.Module.ID)

	baseModOut, err := adminSvc.CreateModule(ctx, &admin.CreateModuleInput{
		GameID:      gameID,
		Name:        "Harbor Master Variant",
		Description: "Advanced scoring for experienced groups.",
	})
	if err != nil {
		return err
	}
	log.Printf("created module %s (%s)", baseModOut.Module.Name, baseModOut.Module.ID)

	steps := []*admin.CreateStepInput{
		{
			GameID: gameID,
			Text:   "Place the main board in the center of the table.",
			Visual: "board.png",
		},
		{
			GameID: gameID,
			Text:   "Shuffle the trade deck and deal 3 cards to each player.",
		},
		{
			GameID: gameID,
			Text:   "Remove all 4-player harbor tiles from the supply.",
			Condition: &boardgame.StepCondition{
				PlayerCounts: []int32{2, 3},
			},
		},
		{
			GameID: gameID,
			Text:   "Set aside the winter route cards.",
			Condition: &boardgame.StepCondition{
				RequireNoExpansions: true,
			},
		},
		{
			GameID: gameID,
			Text:   "Place the ice floe tiles on the northern sea spaces.",
			Visual: "ice-floes.png",
			Condition: &boardgame.StepCondition{
				IncludeExpansions: []string{expansionID},
			},
		},
		{
			GameID: gameID,
			Text:   "Give each player one icebreaker upgrade token.",
			Condition: &boardgame.StepCondition{
				IncludeModules: []string{modOut.Module.ID},
			},
		},
		{
			GameID: gameID,
			Text:   "Place the harbor master pawn on the lighthouse space.",
			Condition: &boardgame.StepCondition{
				IncludeModules: []string{baseModOut.Module.ID},
			},
		},
	}

	for _, input := range steps {
		stepOut, err := adminSvc.CreateStep(ctx, input)
		if err != nil {
			return err
		}
		log.Printf("created step %d: %s", stepOut.Step.Order, stepOut.Step.Text)
	}

	log.Printf("seed complete: game %s ready", gameID)
	return nil
}
