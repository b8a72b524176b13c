package cli

import (
	"errors"

	"github.com/thenoetrevino/corkboard/internal/backup"
	"github.com/thenoetrevino/corkboard/internal/commands"
	"github.com/thenoetrevino/corkboard/internal/database"
	"github.com/thenoetrevino/corkboard/internal/models"
)

// CommandError carries the process exit code for a failed command
type CommandError struct {
	Code int
	Err  error

	reported bool
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Usage wraps err as a usage error
func Usage(err error) error {
	return &CommandError{Code: ExitUsage, Err: err}
}

// Exit wraps an error the command has already shown to the user
func Exit(code int, err error) error {
	return &CommandError{Code: code, Err: err, reported: true}
}

// Reported reports whether err was already shown to the user
func Reported(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.reported
}

// ExitCode returns the exit code main should use for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}

var validationErrors = []error{
	commands.ErrEmptyName,
	commands.ErrNameTooLong,
	commands.ErrEmptyTitle,
	commands.ErrTitleTooLong,
	commands.ErrEmptyID,
	commands.ErrInvalidOrder,
	commands.ErrMissingOrder,
	commands.ErrInvalidKeep,
	backup.ErrInvalidLabel,
}

// Classify returns the error code string and exit code for err
func Classify(err error) (string, int) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, backup.ErrNoDatabase):
		return "NO_DATABASE", ExitNotFound
	case errors.Is(err, commands.ErrUnknownCommand):
		return "UNKNOWN_COMMAND", ExitUsage
	case errors.Is(err, commands.ErrInvalidInput):
		return "INVALID_INPUT", ExitDataErr
	case errors.Is(err, database.ErrConstraint):
		return "CONSTRAINT_VIOLATION", ExitDataErr
	case errors.Is(err, database.ErrContention):
		return "DATABASE_BUSY", ExitError
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return "VALIDATION_ERROR", ExitValidation
		}
	}

	var exitErr *CommandError
	if errors.As(err, &exitErr) && exitErr.Code == ExitUsage {
		return "USAGE_ERROR", ExitUsage
	}
	return "ERROR", ExitError
}
