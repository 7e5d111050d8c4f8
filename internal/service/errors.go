package service

import (
	"errors"
	"fmt"

	"movie-streaming-service/internal/repository"
	"movie-streaming-service/internal/validation"
)

// Error kinds returned by the services. Callers match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidState}, args...)...)
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// validate runs struct validation and tags failures as ErrInvalidArgument,
// keeping the *validation.Error reachable through errors.As.
func validate(req any) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// storeErr translates repository errors into service error kinds. what names
// the entity for the message.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound("%s", what)
	case errors.Is(err, repository.ErrDuplicate):
		return conflict("%s already exists", what)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
