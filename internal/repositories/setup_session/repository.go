// Package setupsession provides repository interface and types for
// per-player setup sessions: the transient selection state built while
// preparing one game.
package setupsession

import (
	"context"
	"time"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=setupsessionmock github.com/tablewise/setup-api/internal/repositories/setup_session Repository

// Session holds one player's selection for one game. Sessions are
// transient: they expire, and they are replaced wholesale when the
// active game changes.
type Session struct {
	// Unique session identifier
	ID string

	// Game this session sets up
	GameID string

	// Current selection state
	Selection *boardgame.Selection

	// Revision increments on every successful mutation. Writes carry
	// the revision they were based on; a mismatch means the session
	// changed underneath the caller and the write is discarded.
	Revision int64

	// When this session was created
	CreatedAt time.Time

	// When this session expires
	ExpiresAt time.Time
}

// Repository defines the interface for setup session persistence
type Repository interface {
	// Create stores a new session with the given TTL, assigning its ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the session doesn't exist or expired
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a session's game and selection if the stored
	// revision still equals ExpectedRevision, bumping the revision
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the session doesn't exist or expired
	// Returns errors.Aborted when the revision check fails
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the session doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	GameID    string
	Selection *boardgame.Selection
	TTL       time.Duration
}

// CreateOutput contains the result of creating a session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a session
type GetOutput struct {
	Session *Session
}

// UpdateInput contains parameters for updating a session
type UpdateInput struct {
	ID string
	// GameID and Selection replace the stored values
	GameID    string
	Selection *boardgame.Selection
	// ExpectedRevision is the revision the caller read before mutating
	ExpectedRevision int64
}

// UpdateOutput contains the result of updating a session
type UpdateOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a session
type DeleteOutput struct {
}
