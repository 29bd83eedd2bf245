package expansion

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
	expansionKeyPrefix = "expansion:"
	gameIndexPrefix    = "expansion:game:"

	// Error messages
	errExpansionNil     = "expansion cannot be nil"
	errExpansionIDEmpty = "expansion ID cannot be empty"
	errGameIDEmpty      = "game ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// RedisConfig contains configuration for the Redis expansion repository.
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

// NewRedis creates a new Redis-backed expansion repository
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
	if input.Expansion == nil {
		return nil, errors.InvalidArgument(errExpansionNil)
	}
	if input.Expansion.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}
	if input.Expansion.Name == "" {
		return nil, errors.InvalidArgument("expansion name cannot be empty")
	}

	now := r.clock.Now().Unix()
	stored := *input.Expansion
	stored.ID = r.idGen.Generate()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal expansion")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, expansionKeyPrefix+stored.ID, data, 0)
	pipe.SAdd(ctx, gameIndexPrefix+stored.GameID, stored.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create expansion")
	}

	return &CreateOutput{Expansion: &stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errExpansionIDEmpty)
	}

	result, err := r.client.Get(ctx, expansionKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("expansion with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get expansion")
	}

	var e boardgame.Expansion
	if err := json.Unmarshal([]byte(result), &e); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal expansion")
	}

	return &GetOutput{Expansion: &e}, nil
}

func (r *redisRepository) ListByGameID(ctx context.Context, input ListByGameIDInput) (*ListByGameIDOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	indexKey := gameIndexPrefix + input.GameID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list expansions from index %s", indexKey)
	}

	expansions := make([]*boardgame.Expansion, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get expansion %s", id)
		}
		expansions = append(expansions, out.Expansion)
	}

	sort.Slice(expansions, func(i, j int) bool {
		if expansions[i].CreatedAt != expansions[j].CreatedAt {
			return expansions[i].CreatedAt < expansions[j].CreatedAt
		}
		return expansions[i].ID < expansions[j].ID
	})

	return &ListByGameIDOutput{Expansions: expansions}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errExpansionIDEmpty)
	}

	out, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, expansionKeyPrefix+input.ID)
	pipe.SRem(ctx, gameIndexPrefix+out.Expansion.GameID, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete expansion")
	}

	return &DeleteOutput{}, nil
}
