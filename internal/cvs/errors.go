package cvs

import "errors"

var (
	// ErrNotFound indicates the CV does not exist or is not visible to the user.
	ErrNotFound = errors.New("cv not found")
	// ErrInvalidInput indicates missing or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")
)

// Validation error codes.
const (
	CodeUnsupportedType = "unsupported-type"
	CodeTooLarge        = "too-large"
)

// ValidationError is a typed rejection from the file validator.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
