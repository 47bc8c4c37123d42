package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/history"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
)

type assignmentHistoryRepositoryImpl struct {
	db *database.DB
}

// Append implements history.AssignmentHistoryRepository. Entries are only
// ever inserted; corrections happen by appending a superseding entry.
func (r *assignmentHistoryRepositoryImpl) Append(ctx context.Context, entry history.AssignmentHistoryEntry) (history.AssignmentHistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	var snapshotJSON []byte
	if entry.RotationSnapshot != nil {
		var err error
		snapshotJSON, err = json.Marshal(entry.RotationSnapshot)
		if err != nil {
			return history.AssignmentHistoryEntry{}, fmt.Errorf("failed to marshal rotation snapshot: %w", err)
		}
	}

	query := `
		INSERT INTO assignment_histories (
			id, batch_id, shift_id, effective_start_date, effective_end_date,
			rotation_snapshot, assigned_by, change_type, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW()
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.BatchID, entry.ShiftID, entry.EffectiveStartDate, entry.EffectiveEndDate,
		snapshotJSON, entry.AssignedBy, entry.ChangeType,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return history.AssignmentHistoryEntry{}, err
	}

	return entry, nil
}

// CloseOpen implements history.AssignmentHistoryRepository. Zero rows
// touched is fine: a batch's very first assignment has nothing to close.
func (r *assignmentHistoryRepositoryImpl) CloseOpen(ctx context.Context, batchID string, endDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE assignment_histories
		SET effective_end_date = $2
		WHERE batch_id = $1 AND effective_end_date IS NULL
	`

	_, err := q.Exec(ctx, query, batchID, endDate)
	return err
}

// GetOpenByBatchID implements history.AssignmentHistoryRepository.
func (r *assignmentHistoryRepositoryImpl) GetOpenByBatchID(ctx context.Context, batchID string) (history.AssignmentHistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, batch_id, shift_id, effective_start_date, effective_end_date,
			rotation_snapshot, assigned_by, change_type, created_at
		FROM assignment_histories
		WHERE batch_id = $1 AND effective_end_date IS NULL
	`

	return scanHistoryEntry(q.QueryRow(ctx, query, batchID))
}

// GetByBatchID implements history.AssignmentHistoryRepository. Newest first;
// the join scopes the ledger to the caller's company.
func (r *assignmentHistoryRepositoryImpl) GetByBatchID(ctx context.Context, batchID string, companyID string, page, limit int) ([]history.AssignmentHistoryEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `
		SELECT COUNT(*)
		FROM assignment_histories ah
		JOIN batches b ON b.id = ah.batch_id
		WHERE ah.batch_id = $1 AND b.company_id = $2
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, batchID, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assignment history: %w", err)
	}

	query := `
		SELECT ah.id, ah.batch_id, ah.shift_id, ah.effective_start_date, ah.effective_end_date,
			ah.rotation_snapshot, ah.assigned_by, ah.change_type, ah.created_at
		FROM assignment_histories ah
		JOIN batches b ON b.id = ah.batch_id
		WHERE ah.batch_id = $1 AND b.company_id = $2
		ORDER BY ah.effective_start_date DESC, ah.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := q.Query(ctx, query, batchID, companyID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query assignment history: %w", err)
	}
	defer rows.Close()

	var entries []history.AssignmentHistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan assignment history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHistoryEntry(row rowScanner) (history.AssignmentHistoryEntry, error) {
	var entry history.AssignmentHistoryEntry
	var snapshotJSON []byte

	err := row.Scan(
		&entry.ID, &entry.BatchID, &entry.ShiftID, &entry.EffectiveStartDate, &entry.EffectiveEndDate,
		&snapshotJSON, &entry.AssignedBy, &entry.ChangeType, &entry.CreatedAt,
	)
	if err != nil {
		return history.AssignmentHistoryEntry{}, err
	}

	if len(snapshotJSON) > 0 {
		var snapshot batch.RotationPattern
		if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
			return history.AssignmentHistoryEntry{}, fmt.Errorf("failed to parse rotation snapshot: %w", err)
		}
		entry.RotationSnapshot = &snapshot
	}

	return entry, nil
}

func NewAssignmentHistoryRepository(db *database.DB) history.AssignmentHistoryRepository {
	return &assignmentHistoryRepositoryImpl{db: db}
}
