package gamemodule

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
	moduleKeyPrefix  = "module:"
	gameIndexPrefix  = "module:game:"
	ownerIndexPrefix = "module:owner:"
	baseOwnerSegment = "base"

	// Error messages
	errModuleNil     = "module cannot be nil"
	errModuleIDEmpty = "module ID cannot be empty"
	errGameIDEmpty   = "game ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// RedisConfig contains configuration for the Redis module repository.
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

// NewRedis creates a new Redis-backed module repository
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

func ownerIndexKey(gameID, expansionID string) string {
	if expansionID == "" {
		return ownerIndexPrefix + gameID + ":" + baseOwnerSegment
	}
	return ownerIndexPrefix + gameID + ":" + expansionID
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Module == nil {
		return nil, errors.InvalidArgument(errModuleNil)
	}
	if input.Module.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}
	if input.Module.Name == "" {
		return nil, errors.InvalidArgument("module name cannot be empty")
	}

	now := r.clock.Now().Unix()
	stored := *input.Module
	stored.ID = r.idGen.Generate()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal module")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, moduleKeyPrefix+stored.ID, data, 0)
	pipe.SAdd(ctx, gameIndexPrefix+stored.GameID, stored.ID)
	pipe.SAdd(ctx, ownerIndexKey(stored.GameID, stored.ExpansionID), stored.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create module")
	}

	return &CreateOutput{Module: &stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errModuleIDEmpty)
	}

	result, err := r.client.Get(ctx, moduleKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("module with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get module")
	}

	var m boardgame.Module
	if err := json.Unmarshal([]byte(result), &m); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal module")
	}

	return &GetOutput{Module: &m}, nil
}

func (r *redisRepository) ListByGameID(ctx context.Context, input ListByGameIDInput) (*ListByGameIDOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	modules, err := r.listByIndex(ctx, gameIndexPrefix+input.GameID)
	if err != nil {
		return nil, err
	}

	return &ListByGameIDOutput{Modules: modules}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	modules, err := r.listByIndex(ctx, ownerIndexKey(input.GameID, input.ExpansionID))
	if err != nil {
		return nil, err
	}

	return &ListByOwnerOutput{Modules: modules}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errModuleIDEmpty)
	}

	out, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	m := out.Module

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, moduleKeyPrefix+input.ID)
	pipe.SRem(ctx, gameIndexPrefix+m.GameID, input.ID)
	pipe.SRem(ctx, ownerIndexKey(m.GameID, m.ExpansionID), input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete module")
	}

	return &DeleteOutput{}, nil
}

// listByIndex is a helper to collect the modules referenced by an index
// set, dropping stale entries as it goes.
func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*boardgame.Module, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list modules from index %s", indexKey)
	}

	modules := make([]*boardgame.Module, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get module %s", id)
		}
		modules = append(modules, out.Module)
	}

	sort.Slice(modules, func(i, j int) bool {
		if modules[i].CreatedAt != modules[j].CreatedAt {
			return modules[i].CreatedAt < modules[j].CreatedAt
		}
		return modules[i].ID < modules[j].ID
	})

	return modules, nil
}
