package shift

import "errors"

var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrShiftInactive       = errors.New("shift is inactive")
	ErrShiftNameExists     = errors.New("shift with this name already exists")
	ErrShiftAlreadyDeleted = errors.New("shift not found or already deleted")
	ErrShiftInUse          = errors.New("shift is referenced by batches or employees")

	// Default shift errors
	ErrDefaultShiftNotConfigured = errors.New("no default shift configured for this company")
)
