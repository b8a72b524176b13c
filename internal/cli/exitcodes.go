package cli

// Process exit codes. Classify in errors.go picks one for every error a
// command can return; JSON output carries the matching string code.
const (
	ExitSuccess = 0

	// ExitError covers store failures, DATABASE_BUSY (the busy timeout ran
	// out), a failed remote call and anything unclassified.
	ExitError = 1

	// ExitUsage is for bad flags or arguments (USAGE_ERROR) and call names
	// the registry does not know (UNKNOWN_COMMAND).
	ExitUsage = 2

	// ExitNotFound is for a board, column or card id that does not exist
	// (NOT_FOUND) and for backing up before any store file exists (NO_DATABASE).
	ExitNotFound = 3

	// ExitDataErr is for input the store refuses: malformed call payloads
	// (INVALID_INPUT), constraint violations such as a column pointing at a
	// missing board (CONSTRAINT_VIOLATION), and a failed integrity check.
	ExitDataErr = 4

	// ExitValidation is for values rejected before touching the store:
	// blank or overlong names and titles, empty ids, non-finite orders,
	// a negative keep count, bad backup labels (VALIDATION_ERROR).
	ExitValidation = 5
)
