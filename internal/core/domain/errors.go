package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidLocator indicates the input cannot be parsed as a
	// reachable source. This is the extraction router's only
	// unrecoverable error; every provider branch is failure-proof.
	ErrInvalidLocator = errors.New("invalid locator")

	// ErrDuplicateDocument indicates an add was rejected because the
	// document's URL already exists in the user's collection.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrSyncInProgress indicates a recursive sync is already running.
	// A re-trigger is rejected rather than queued.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrSyncFailed indicates traversal or import aborted. Documents
	// imported before the failure stay committed; there is no rollback.
	ErrSyncFailed = errors.New("sync failed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDriveClient indicates a drive operation was requested but no
	// drive connection is configured.
	ErrNoDriveClient = errors.New("drive client not configured")
)
