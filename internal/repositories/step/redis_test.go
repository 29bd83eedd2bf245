package step_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
	"github.com/tablewise/setup-api/internal/pkg/clock"
	"github.com/tablewise/setup-api/internal/pkg/idgen"
	"github.com/tablewise/setup-api/internal/repositories/step"
	"github.com/tablewise/setup-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    step.Repository
	clock   *clock.Fixed
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.clock = clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	repo, err := step.NewRedis(&step.RedisConfig{
		Client:      client,
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("step"),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) createStep(gameID string, order int32, text string) *boardgame.Step {
	out, err := s.repo.Create(s.ctx, step.CreateInput{
		Step: &boardgame.Step{
			GameID: gameID,
			Order:  order,
			Text:   text,
		},
	})
	s.Require().NoError(err)
	return out.Step
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, step.CreateInput{
		Step: &boardgame.Step{
			GameID: "game-1",
			Order:  1,
			Text:   "Place the board.",
			Visual: "board.png",
			Condition: &boardgame.StepCondition{
				PlayerCounts: []int32{2, 3},
			},
		},
	})
	s.Require().NoError(err)
	s.NotEmpty(created.Step.ID)
	s.Equal(s.clock.Time.Unix(), created.Step.CreatedAt)

	got, err := s.repo.Get(s.ctx, step.GetInput{ID: created.Step.ID})
	s.Require().NoError(err)
	s.Equal("Place the board.", got.Step.Text)
	s.Equal([]int32{2, 3}, got.Step.Condition.PlayerCounts)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, step.CreateInput{Step: nil})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, step.CreateInput{
		Step: &boardgame.Step{GameID: "game-1", Order: 1},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, step.CreateInput{
		Step: &boardgame.Step{GameID: "game-1", Order: 0, Text: "No order yet."},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, step.GetInput{ID: "step_999"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListByGameID_SortedByOrder() {
	// Create out of order; listing sorts by order value.
	s.createStep("game-1", 3, "Third.")
	s.createStep("game-1", 1, "First.")
	s.createStep("game-1", 2, "Second.")
	s.createStep("game-2", 1, "Other game.")

	out, err := s.repo.ListByGameID(s.ctx, step.ListByGameIDInput{GameID: "game-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Steps, 3)
	s.Equal("First.", out.Steps[0].Text)
	s.Equal("Second.", out.Steps[1].Text)
	s.Equal("Third.", out.Steps[2].Text)
}

func (s *RedisRepositoryTestSuite) TestListByGameID_Empty() {
	out, err := s.repo.ListByGameID(s.ctx, step.ListByGameIDInput{GameID: "game-none"})
	s.Require().NoError(err)
	s.Empty(out.Steps)
}

func (s *RedisRepositoryTestSuite) TestUpdate_ContentOnly() {
	created := s.createStep("game-1", 1, "Old text.")
	s.clock.Time = s.clock.Time.Add(time.Minute)

	out, err := s.repo.Update(s.ctx, step.UpdateInput{
		Step: &boardgame.Step{
			ID:   created.ID,
			Text: "New text.",
			Condition: &boardgame.StepCondition{
				RequireNoExpansions: true,
			},
		},
	})
	s.Require().NoError(err)
	s.Equal("New text.", out.Step.Text)
	s.True(out.Step.Condition.RequireNoExpansions)
	// Order and game survive a content update.
	s.Equal(int32(1), out.Step.Order)
	s.Equal("game-1", out.Step.GameID)
	s.Greater(out.Step.UpdatedAt, out.Step.CreatedAt)
}

func (s *RedisRepositoryTestSuite) TestUpdateOrder() {
	created := s.createStep("game-1", 2, "Movable.")

	out, err := s.repo.UpdateOrder(s.ctx, step.UpdateOrderInput{
		ID:    created.ID,
		Order: 5,
	})
	s.Require().NoError(err)
	s.Equal(int32(5), out.Step.Order)
	// Content untouched.
	s.Equal("Movable.", out.Step.Text)

	got, err := s.repo.Get(s.ctx, step.GetInput{ID: created.ID})
	s.Require().NoError(err)
	s.Equal(int32(5), got.Step.Order)
}

func (s *RedisRepositoryTestSuite) TestUpdateOrder_Validation() {
	_, err := s.repo.UpdateOrder(s.ctx, step.UpdateOrderInput{ID: "", Order: 1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.UpdateOrder(s.ctx, step.UpdateOrderInput{ID: "step_1", Order: 0})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.UpdateOrder(s.ctx, step.UpdateOrderInput{ID: "step_999", Order: 1})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	created := s.createStep("game-1", 1, "Doomed.")

	_, err := s.repo.Delete(s.ctx, step.DeleteInput{ID: created.ID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, step.GetInput{ID: created.ID})
	s.True(errors.IsNotFound(err))

	// The index entry goes with the step.
	out, err := s.repo.ListByGameID(s.ctx, step.ListByGameIDInput{GameID: "game-1"})
	s.Require().NoError(err)
	s.Empty(out.Steps)
}

func (s *RedisRepositoryTestSuite) TestDelete_NotFound() {
	_, err := s.repo.Delete(s.ctx, step.DeleteInput{ID: "step_999"})
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
