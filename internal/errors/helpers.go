package errors

import (
	"errors"
)

// As is a wrapper around errors.As for the package's Error type.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code, defaulting to Internal for foreign
// errors and OK for nil.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured.Code
	}

	return CodeInternal
}

// GetMeta extracts the metadata from an error, if any.
func GetMeta(err error) map[string]interface{} {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.Meta
	}
	return nil
}

// IsNotFound reports whether the error carries CodeNotFound.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument reports whether the error carries
// CodeInvalidArgument.
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists reports whether the error carries CodeAlreadyExists.
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsFailedPrecondition reports whether the error carries
// CodeFailedPrecondition.
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsAborted reports whether the error carries CodeAborted.
func IsAborted(err error) bool {
	return GetCode(err) == CodeAborted
}

// IsUnavailable reports whether the error carries CodeUnavailable.
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsInternal reports whether the error carries CodeInternal.
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}
