package step

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
	"github.com/tablewise/setup-api/internal/pkg/clock"
	"github.com/tablewise/setup-api/internal/pkg/idgen"
	redisclient "github.com/tablewise/setup-api/internal/redis"
)

const (
	stepKeyPrefix   = "step:"
	gameIndexPrefix = "step:game:"

	// Error messages
	errStepNil      = "step cannot be nil"
	errStepIDEmpty  = "step ID cannot be empty"
	errGameIDEmpty  = "game ID cannot be empty"
	errTextEmpty    = "step text cannot be empty"
	errOrderInvalid = "step order must be positive"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// RedisConfig contains configuration for the Redis step repository.
type RedisConfig struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.IDGenerator == nil {
		return errors.InvalidArgument("ID generator cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed step repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		idGen:  cfg.IDGenerator,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Step == nil {
		return nil, errors.InvalidArgument(errStepNil)
	}
	if input.Step.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}
	if input.Step.Text == "" {
		return nil, errors.InvalidArgument(errTextEmpty)
	}
	if input.Step.Order < 1 {
		return nil, errors.InvalidArgument(errOrderInvalid)
	}

	now := r.clock.Now().Unix()
	stored := *input.Step
	stored.ID = r.idGen.Generate()
	stored.Condition = input.Step.Condition.Clone()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal step")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, stepKeyPrefix+stored.ID, data, 0)
	pipe.SAdd(ctx, gameIndexPrefix+stored.GameID, stored.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create step")
	}

	return &CreateOutput{Step: &stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStepIDEmpty)
	}

	result, err := r.client.Get(ctx, stepKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("step with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get step")
	}

	var s boardgame.Step
	if err := json.Unmarshal([]byte(result), &s); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal step")
	}

	return &GetOutput{Step: &s}, nil
}

func (r *redisRepository) ListByGameID(ctx context.Context, input ListByGameIDInput) (*ListByGameIDOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	indexKey := gameIndexPrefix + input.GameID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list steps from index %s", indexKey)
	}

	steps := make([]*boardgame.Step, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "step missing, cleaning up index",
					"step_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get step %s", id)
		}
		steps = append(steps, out.Step)
	}

	// Order first; creation time breaks ties so a catalog with
	// transiently duplicated orders still lists deterministically.
	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Order != steps[j].Order {
			return steps[i].Order < steps[j].Order
		}
		if steps[i].CreatedAt != steps[j].CreatedAt {
			return steps[i].CreatedAt < steps[j].CreatedAt
		}
		return steps[i].ID < steps[j].ID
	})

	return &ListByGameIDOutput{Steps: steps}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Step == nil {
		return nil, errors.InvalidArgument(errStepNil)
	}
	if input.Step.ID == "" {
		return nil, errors.InvalidArgument(errStepIDEmpty)
	}
	if input.Step.Text == "" {
		return nil, errors.InvalidArgument(errTextEmpty)
	}

	existingOut, err := r.Get(ctx, GetInput{ID: input.Step.ID})
	if err != nil {
		return nil, err
	}
	existing := existingOut.Step

	stored := *existing
	stored.Text = input.Step.Text
	stored.Visual = input.Step.Visual
	stored.Condition = input.Step.Condition.Clone()
	stored.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal step")
	}

	if err := r.client.Set(ctx, stepKeyPrefix+stored.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update step")
	}

	return &UpdateOutput{Step: &stored}, nil
}

func (r *redisRepository) UpdateOrder(ctx context.Context, input UpdateOrderInput) (*UpdateOrderOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStepIDEmpty)
	}
	if input.Order < 1 {
		return nil, errors.InvalidArgument(errOrderInvalid)
	}

	existingOut, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	stored := *existingOut.Step
	stored.Order = input.Order
	stored.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal step")
	}

	if err := r.client.Set(ctx, stepKeyPrefix+stored.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update step order")
	}

	return &UpdateOrderOutput{Step: &stored}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStepIDEmpty)
	}

	out, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, stepKeyPrefix+input.ID)
	pipe.SRem(ctx, gameIndexPrefix+out.Step.GameID, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete step")
	}

	return &DeleteOutput{}, nil
}
