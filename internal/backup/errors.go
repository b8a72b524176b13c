package backup

import "errors"

var (
	// ErrNoDatabase is returned by Snapshot when the store file does not exist yet
	ErrNoDatabase = errors.New("database file does not exist")

	// ErrInvalidLabel is returned for labels that cannot be embedded in a file name
	ErrInvalidLabel = errors.New("invalid backup label")
)
