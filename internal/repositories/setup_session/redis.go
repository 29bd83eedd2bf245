package setupsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tablewise/setup-api/internal/errors"
	"github.com/tablewise/setup-api/internal/pkg/clock"
	"github.com/tablewise/setup-api/internal/pkg/idgen"
	redisclient "github.com/tablewise/setup-api/internal/redis"
)

const (
	sessionKeyPrefix = "setup_session:"
	defaultTTL       = 4 * time.Hour

	// Error messages
	errSessionIDEmpty = "session ID cannot be empty"
	errGameIDEmpty    = "game ID cannot be empty"
	errSelectionNil   = "selection cannot be nil"
)

// Config holds the configuration for the Redis session repository
type Config struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.IDGenerator == nil {
		return errors.InvalidArgument("ID generator is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// NewRedisRepository creates a new Redis repository for setup sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		idGen:  cfg.IDGenerator,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}
	if input.Selection == nil {
		return nil, errors.InvalidArgument(errSelectionNil)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	session := &Session{
		ID:        r.idGen.Generate(),
		GameID:    input.GameID,
		Selection: input.Selection.Clone(),
		Revision:  1,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(session.ID)
	if err := r.client.Set(ctx, key, sessionJSON, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}

	return &CreateOutput{Session: session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	session, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: session}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}
	if input.Selection == nil {
		return nil, errors.InvalidArgument(errSelectionNil)
	}

	existing, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Optimistic concurrency: a write based on a superseded read is
	// discarded, never merged.
	if existing.Revision != input.ExpectedRevision {
		return nil, errors.Abortedf(
			"session %s was modified: expected revision %d, found %d",
			input.ID, input.ExpectedRevision, existing.Revision,
		)
	}

	updated := &Session{
		ID:        existing.ID,
		GameID:    input.GameID,
		Selection: input.Selection.Clone(),
		Revision:  existing.Revision + 1,
		CreatedAt: existing.CreatedAt,
		ExpiresAt: existing.ExpiresAt,
	}

	sessionJSON, err := json.Marshal(updated)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	ttl := updated.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return nil, errors.NotFound("setup session has expired")
	}

	if err := r.client.Set(ctx, r.buildKey(updated.ID), sessionJSON, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}

	return &UpdateOutput{Session: updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	deleted, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session")
	}
	if deleted == 0 {
		return nil, errors.NotFound("setup session not found")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*Session, error) {
	sessionJSON, err := r.client.Get(ctx, r.buildKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("setup session not found")
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	if r.clock.Now().After(session.ExpiresAt) {
		// Expired but not yet evicted, clean it up.
		_ = r.client.Del(ctx, r.buildKey(id))
		return nil, errors.NotFound("setup session has expired")
	}

	return &session, nil
}

func (r *redisRepository) buildKey(id string) string {
	return sessionKeyPrefix + id
}
