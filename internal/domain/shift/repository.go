package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	GetByIDs(ctx context.Context, ids []string, companyID string) ([]Shift, error)
	GetByCompanyID(ctx context.Context, companyID string, filter ShiftFilter) ([]Shift, int64, error)
	GetDefault(ctx context.Context, companyID string) (Shift, error)
	Update(ctx context.Context, req UpdateShiftRequest) (Shift, error)
	// SetDefault makes the given shift the company default and clears the
	// flag on every other shift in one statement.
	SetDefault(ctx context.Context, id string, companyID string) error
	SoftDelete(ctx context.Context, id string, companyID string) error
}
