// Package expansion provides the interface for expansion persistence
package expansion

//go:generate mockgen -destination=mock/mock_repository.go -package=expansionmock github.com/tablewise/setup-api/internal/repositories/expansion Repository

import (
	"context"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

// Repository defines the interface for expansion persistence
type Repository interface {
	// Create stores a new expansion, assigning its ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an expansion by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the expansion doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByGameID retrieves all expansions owned by a game
	// Returns errors.InvalidArgument for empty game IDs
	// Returns errors.Internal for storage failures
	ListByGameID(ctx context.Context, input ListByGameIDInput) (*ListByGameIDOutput, error)

	// Delete deletes an expansion by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the expansion doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating an expansion
type CreateInput struct {
	Expansion *boardgame.Expansion
}

// CreateOutput defines the output for creating an expansion
type CreateOutput struct {
	Expansion *boardgame.Expansion
}

// GetInput defines the input for getting an expansion
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an expansion
type GetOutput struct {
	Expansion *boardgame.Expansion
}

// ListByGameIDInput defines the input for listing a game's expansions
type ListByGameIDInput struct {
	GameID string
}

// ListByGameIDOutput defines the output for listing a game's expansions
type ListByGameIDOutput struct {
	Expansions []*boardgame.Expansion
}

// DeleteInput defines the input for deleting an expansion
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an expansion
type DeleteOutput struct {
}
