package game

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
	"github.com/tablewise/setup-api/internal/errors"
	"github.com/tablewise/setup-api/internal/pkg/clock"
	"github.com/tablewise/setup-api/internal/pkg/idgen"
	redisclient "github.com/tablewise/setup-api/internal/redis"
)

const (
	gameKeyPrefix = "game:"
	gameIndexKey  = "game:all"

	// Error messages
	errGameNil     = "game cannot be nil"
	errGameIDEmpty = "game ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// RedisConfig contains configuration for the Redis game repository.
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

// NewRedis creates a new Redis-backed game repository
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
	if input.Game == nil {
		return nil, errors.InvalidArgument(errGameNil)
	}
	if input.Game.Title == "" {
		return nil, errors.InvalidArgument("game title cannot be empty")
	}

	now := r.clock.Now().Unix()
	stored := *input.Game
	stored.ID = r.idGen.Generate()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, gameKeyPrefix+stored.ID, data, 0)
	pipe.SAdd(ctx, gameIndexKey, stored.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create game")
	}

	return &CreateOutput{Game: &stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	result, err := r.client.Get(ctx, gameKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("game with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get game")
	}

	var g boardgame.Game
	if err := json.Unmarshal([]byte(result), &g); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal game")
	}

	return &GetOutput{Game: &g}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, gameIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list game IDs")
	}

	games := make([]*boardgame.Game, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				// Stale index entry, clean it up.
				r.client.SRem(ctx, gameIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get game %s", id)
		}
		games = append(games, out.Game)
	}

	// SMembers order is arbitrary; callers (and the unknown-game
	// fallback in particular) need a deterministic first entry.
	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt != games[j].CreatedAt {
			return games[i].CreatedAt < games[j].CreatedAt
		}
		return games[i].ID < games[j].ID
	})

	return &ListOutput{Games: games}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	if _, err := r.Get(ctx, GetInput(input)); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, gameKeyPrefix+input.ID)
	pipe.SRem(ctx, gameIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete game")
	}

	return &DeleteOutput{}, nil
}
