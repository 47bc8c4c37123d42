package history

import (
	"context"
	"time"
)

type AssignmentHistoryRepository interface {
	Append(ctx context.Context, entry AssignmentHistoryEntry) (AssignmentHistoryEntry, error)
	// CloseOpen sets the end date on the batch's open entry. Closing a batch
	// with no open entry is a no-op, not an error (first-ever assignment).
	CloseOpen(ctx context.Context, batchID string, endDate time.Time) error
	GetOpenByBatchID(ctx context.Context, batchID string) (AssignmentHistoryEntry, error)
	GetByBatchID(ctx context.Context, batchID string, companyID string, page, limit int) ([]AssignmentHistoryEntry, int64, error)
}
