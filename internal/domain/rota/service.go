package rota

import (
	"context"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
)

// RotaService is the scheduling engine: batch lifecycle, schedule
// computation, auto assignment, and the assignment history ledger.
type RotaService interface {
	// Batch lifecycle
	CreateBatch(ctx context.Context, req batch.CreateBatchRequest) (batch.BatchResponse, error)
	GetBatch(ctx context.Context, id string) (batch.BatchResponse, error)
	ListBatches(ctx context.Context, filter batch.BatchFilter) (batch.ListBatchResponse, error)
	UpdateBatch(ctx context.Context, req batch.UpdateBatchRequest) (batch.BatchResponse, error)
	DeleteBatch(ctx context.Context, id string) error

	// Manual assignment
	UpdateBatchShift(ctx context.Context, req UpdateBatchShiftRequest) (batch.BatchResponse, error)

	// Schedule queries
	GetBatchCurrentShift(ctx context.Context, batchID string, date string) (CurrentShiftResponse, error)
	GetBatchSchedule(ctx context.Context, batchID string, start, end string) (BatchScheduleResponse, error)
	GetNextRotationDate(ctx context.Context, batchID string) (NextRotationResponse, error)

	// Ledger
	GetBatchHistory(ctx context.Context, batchID string, filter HistoryFilter) (BatchHistoryResponse, error)

	// Auto assignment
	AutoAssignDefaultShift(ctx context.Context) (AutoAssignResponse, error)
	ApplyRotationPattern(ctx context.Context, req ApplyRotationRequest) (ApplyRotationResponse, error)
	PreviewAutoSchedule(ctx context.Context, req PreviewAutoScheduleRequest) (PreviewAutoScheduleResponse, error)
}
