package batch

import "errors"

var (
	ErrBatchNotFound       = errors.New("batch not found")
	ErrBatchCodeExists     = errors.New("batch with this code already exists")
	ErrBatchAlreadyDeleted = errors.New("batch not found or already deleted")
	ErrBatchHasEmployees   = errors.New("batch still has active employees assigned")

	// Schedule query errors
	ErrInvalidRange = errors.New("schedule range start must not be after end")

	// Concurrency errors
	ErrConcurrentBatchUpdate = errors.New("batch was modified concurrently, retry the operation")
)
