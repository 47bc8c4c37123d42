package batch

import (
	"context"
	"time"
)

type BatchRepository interface {
	Create(ctx context.Context, batch Batch) (Batch, error)
	GetByID(ctx context.Context, id string, companyID string) (Batch, error)
	GetByCompanyID(ctx context.Context, companyID string, filter BatchFilter) ([]Batch, int64, error)
	GetDefault(ctx context.Context, companyID string) (Batch, error)
	Update(ctx context.Context, req UpdateBatchFields) (Batch, error)
	// UpdateAssignment writes the shift reference and rotation pattern in
	// one statement, conditioned on the caller's observed version. Returns
	// pgx.ErrNoRows when the version no longer matches.
	UpdateAssignment(ctx context.Context, id, companyID, shiftID string, rotation *RotationPattern, version int64) (Batch, error)
	// SetDefault makes the given batch the company default and clears the
	// flag on every other batch in one statement.
	SetDefault(ctx context.Context, id string, companyID string) error
	SoftDelete(ctx context.Context, id string, companyID string) error
}

// UpdateBatchFields carries the plain metadata updates that do not touch the
// shift assignment and therefore bypass the version CAS.
type UpdateBatchFields struct {
	ID         string
	CompanyID  string
	Name       *string
	Code       *string
	Capacity   *int
	Department *string
	UpdatedAt  time.Time
}
