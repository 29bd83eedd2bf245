// Package game provides the interface for game persistence
package game

//go:generate mockgen -destination=mock/mock_repository.go -package=gamemock github.com/tablewise/setup-api/internal/repositories/game Repository

import (
	"context"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

// Repository defines the interface for game persistence
type Repository interface {
	// Create stores a new game, assigning its ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a game by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the game doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves all games ordered by creation time
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete deletes a game by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the game doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a game
type CreateInput struct {
	Game *boardgame.Game
}

// CreateOutput defines the output for creating a game
type CreateOutput struct {
	Game *boardgame.Game
}

// GetInput defines the input for getting a game
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a game
type GetOutput struct {
	Game *boardgame.Game
}

// ListInput defines the input for listing games
type ListInput struct {
}

// ListOutput defines the output for listing games
type ListOutput struct {
	Games []*boardgame.Game
}

// DeleteInput defines the input for deleting a game
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a game
type DeleteOutput struct {
}
