// Package errors provides the structured errors used across the
// setup-api service: coded errors with metadata, wrapping that
// preserves codes, and a builder for field-level validation failures.
//
// Creating errors:
//
//	err := errors.NotFoundf("game %s not found", gameID)
//	err := errors.InvalidArgument("step text cannot be empty")
//
// Adding metadata:
//
//	err := errors.Unavailable("catalog load failed").
//	    WithMeta("phase", "load").
//	    WithMeta("game_id", gameID)
//
// Wrapping keeps the original code:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to load steps")
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) { ... }
//	code := errors.GetCode(err)
//
// Validation failures collect per-field messages and surface as a
// single InvalidArgument error before any write is attempted:
//
//	vb := errors.NewValidationBuilder()
//	if input.Text == "" {
//	    vb.RequiredField("Text")
//	}
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// Conventions by layer: repositories return NotFound/AlreadyExists/
// Internal with the relevant ids in metadata; orchestrators return
// InvalidArgument for bad input, FailedPrecondition for operations the
// current state forbids, Unavailable with "phase" metadata for storage
// boundary failures, and Aborted for lost revision races.
package errors
