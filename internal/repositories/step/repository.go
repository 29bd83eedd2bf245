// Package step provides the interface for setup step persistence
package step

//go:generate mockgen -destination=mock/mock_repository.go -package=stepmock github.com/tablewise/setup-api/internal/repositories/step Repository

import (
	"context"

	"github.com/tablewise/setup-api/internal/entities/boardgame"
)

// Repository defines the interface for setup step persistence
type Repository interface {
	// Create stores a new step, assigning its ID. The caller decides
	// the order value (creation uses max+1, never a list position)
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a step by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the step doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByGameID retrieves a game's step catalog sorted ascending by
	// order
	// Returns errors.InvalidArgument for empty game IDs
	// Returns errors.Internal for storage failures
	ListByGameID(ctx context.Context, input ListByGameIDInput) (*ListByGameIDOutput, error)

	// Update replaces a step's text, visual, and condition. Order is
	// not touched here; use UpdateOrder
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the step doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// UpdateOrder sets a single step's order value. This is the unit
	// write reorder persistence fans out over
	// Returns errors.InvalidArgument for empty IDs or orders < 1
	// Returns errors.NotFound if the step doesn't exist
	// Returns errors.Internal for storage failures
	UpdateOrder(ctx context.Context, input UpdateOrderInput) (*UpdateOrderOutput, error)

	// Delete deletes a step by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the step doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a step
type CreateInput struct {
	Step *boardgame.Step
}

// CreateOutput defines the output for creating a step
type CreateOutput struct {
	Step *boardgame.Step
}

// GetInput defines the input for getting a step
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a step
type GetOutput struct {
	Step *boardgame.Step
}

// ListByGameIDInput defines the input for listing a game's steps
type ListByGameIDInput struct {
	GameID string
}

// ListByGameIDOutput defines the output for listing a game's steps
type ListByGameIDOutput struct {
	Steps []*boardgame.Step
}

// UpdateInput defines the input for updating a step
type UpdateInput struct {
	Step *boardgame.Step
}

// UpdateOutput defines the output for updating a step
type UpdateOutput struct {
	Step *boardgame.Step
}

// UpdateOrderInput defines the input for updating a step's order
type UpdateOrderInput struct {
	ID    string
	Order int32
}

// UpdateOrderOutput defines the output for updating a step's order
type UpdateOrderOutput struct {
	Step *boardgame.Step
}

// DeleteInput defines the input for deleting a step
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a step
type DeleteOutput struct {
}
