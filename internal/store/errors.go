package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrHistoryNotRecorded is returned when an INSERT of a history entry
	// completes without error but the number of affected rows is zero,
	// indicating that no data was actually persisted.
	ErrHistoryNotRecorded = errors.New("history entry was not recorded")

	// ErrDuplicateHistoryEntry is returned when a history entry for the same
	// request has already been recorded. A verification request reaches
	// exactly one terminal outcome, so a second insert is always a caller
	// bug or a replayed event.
	ErrDuplicateHistoryEntry = errors.New("history entry already recorded for request")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan history row")
)
