package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/history"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Malformed request bodies
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var unsupportedErr *json.UnsupportedValueError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &unsupportedErr) {
		BadRequest(w, "Invalid request body", nil)
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftAlreadyDeleted):
		NotFound(w, "Shift not found or already deleted")
	case errors.Is(err, shift.ErrShiftInactive):
		BadRequest(w, "Shift is inactive", nil)
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift with this name already exists")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is referenced by batches or employees")
	case errors.Is(err, shift.ErrDefaultShiftNotConfigured):
		NotFound(w, "No default shift configured for this company")

	// Batch domain errors
	case errors.Is(err, batch.ErrBatchNotFound):
		NotFound(w, "Batch not found")
	case errors.Is(err, batch.ErrBatchAlreadyDeleted):
		NotFound(w, "Batch not found or already deleted")
	case errors.Is(err, batch.ErrBatchCodeExists):
		Conflict(w, "Batch with this code already exists")
	case errors.Is(err, batch.ErrBatchHasEmployees):
		Conflict(w, "Batch still has active employees assigned")
	case errors.Is(err, batch.ErrInvalidRange):
		BadRequest(w, "Schedule range start must not be after end", nil)
	case errors.Is(err, batch.ErrConcurrentBatchUpdate):
		Conflict(w, "Batch was modified concurrently, retry the operation")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Assignment history errors
	case errors.Is(err, history.ErrHistoryEntryNotFound):
		NotFound(w, "Assignment history entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
