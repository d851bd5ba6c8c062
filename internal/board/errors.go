package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors
var (
	ErrNotFound   = errors.New("task not found")
	ErrValidation = errors.New("invalid task")
)

// NotFoundError reports an operation on an id the board does not hold.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError reports input rejected before it reaches the board.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid task: " + e.Reason
	}
	return fmt.Sprintf("invalid task: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Reason: "is required"}
	case "oneof":
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be one of %s", fe.Param())}
	case "max":
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %s characters", fe.Param())}
	}
	return &ValidationError{Field: field, Reason: "failed " + fe.Tag()}
}
