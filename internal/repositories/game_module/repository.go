// Package gamemodule provides the interface for module persistence.
// Modules are owned by an expansion or, with an empty expansion ID, by
// the base game.
package gamemodule

//go:generate mockgen -destination=mock/mock_repository.go -package=gamemodulemock github.com/tablewise/setup-api/internal/repositories/game_module Repository

import (
	"context"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

// Repository defines the interface for module persistence
type Repository interface {
	// Create stores a new module, assigning its ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a module by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the module doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByGameID retrieves every module of a game, base-game and
	// expansion-owned alike
	// Returns errors.InvalidArgument for empty game IDs
	// Returns errors.Internal for storage failures
	ListByGameID(ctx context.Context, input ListByGameIDInput) (*ListByGameIDOutput, error)

	// ListByOwner retrieves the modules owned by one expansion, or the
	// base-game modules when ExpansionID is empty
	// Returns errors.InvalidArgument for empty game IDs
	// Returns errors.Internal for storage failures
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)

	// Delete deletes a module by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the module doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a module
type CreateInput struct {
	Module *boardgame.Module
}

// CreateOutput defines the output for creating a module
type CreateOutput struct {
	Module *boardgame.Module
}

// GetInput defines the input for getting a module
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a module
type GetOutput struct {
	Module *boardgame.Module
}

// ListByGameIDInput defines the input for listing a game's modules
type ListByGameIDInput struct {
	GameID string
}

// ListByGameIDOutput defines the output for listing a game's modules
type ListByGameIDOutput struct {
	Modules []*boardgame.Module
}

// ListByOwnerInput defines the input for listing modules by owner.
// An empty ExpansionID selects the base-game modules.
type ListByOwnerInput struct {
	GameID      string
	ExpansionID string
}

// ListByOwnerOutput defines the output for listing modules by owner
type ListByOwnerOutput struct {
	Modules []*boardgame.Module
}

// DeleteInput defines the input for deleting a module
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a module
type DeleteOutput struct {
}
