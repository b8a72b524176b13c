package commands

import "errors"

// Validation errors
var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrNameTooLong  = errors.New("name cannot exceed 200 characters")
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrTitleTooLong = errors.New("title cannot exceed 200 characters")
	ErrEmptyID      = errors.New("id cannot be empty")
	ErrInvalidOrder = errors.New("order must be a finite number")
	ErrMissingOrder = errors.New("order is required")
	ErrInvalidKeep  = errors.New("keep count cannot be negative")
)

// Dispatch errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownCommand = errors.New("unknown command")
)
