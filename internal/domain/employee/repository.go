package employee

import (
	"context"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
)

// ShiftAssignment is the projection the coverage reporter works over.
type ShiftAssignment struct {
	EmployeeID string
	ShiftID    *string
	BatchID    *string
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string, companyID string) ([]Employee, error)
	CountByBatchID(ctx context.Context, batchID string, companyID string) (int64, error)
	// AssignDefaultShift sets the shift on every employee in the company
	// that has none, in one statement. Returns the number of rows touched,
	// zero when everyone is already assigned.
	AssignDefaultShift(ctx context.Context, companyID string, shiftID string, effectiveDate time.Time) (int64, error)
	// BulkAssignShift writes the computed shift, effective date, and an
	// optional denormalized rotation descriptor onto the given employees in
	// chunks. Returns the number of rows touched; setting identical values
	// twice is a no-op, so retries are safe.
	BulkAssignShift(ctx context.Context, ids []string, companyID string, shiftID string, effectiveDate time.Time, rotation *batch.RotationPattern) (int64, error)
	// ListAssignments returns the shift/batch projection for every active
	// employee in the company, optionally restricted to one department.
	ListAssignments(ctx context.Context, companyID string, department *string) ([]ShiftAssignment, error)
}
