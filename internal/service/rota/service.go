package rota

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/history"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/rota"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/rota-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type rotaServiceImpl struct {
	db           *database.DB
	batchRepo    batch.BatchRepository
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	historyRepo  history.AssignmentHistoryRepository

	// runInTx wraps the multi-write operations; swapped out in tests
	runInTx func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error
}

func claimsFromContext(ctx context.Context) (companyID string, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	// user_id attributes ledger entries; tolerate its absence
	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// resolveActiveShift loads a shift and rejects inactive ones. Inactive
// shifts stay visible in history but can no longer be assigned.
func (s *rotaServiceImpl) resolveActiveShift(ctx context.Context, id, companyID string) (shift.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	if !sh.IsActive {
		return shift.Shift{}, shift.ErrShiftInactive
	}
	return sh, nil
}

// resolveSequence verifies every shift id in a rotation sequence exists and
// is active. Duplicates in the sequence are legal (e.g. A,B,A,C).
func (s *rotaServiceImpl) resolveSequence(ctx context.Context, ids []string, companyID string) error {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	shifts, err := s.shiftRepo.GetByIDs(ctx, unique, companyID)
	if err != nil {
		return fmt.Errorf("failed to get shifts: %w", err)
	}
	if len(shifts) != len(unique) {
		return shift.ErrShiftNotFound
	}
	for _, sh := range shifts {
		if !sh.IsActive {
			return shift.ErrShiftInactive
		}
	}
	return nil
}

// ==================== BATCH LIFECYCLE ====================

// CreateBatch implements rota.RotaService.
func (s *rotaServiceImpl) CreateBatch(ctx context.Context, req batch.CreateBatchRequest) (batch.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return batch.BatchResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return batch.BatchResponse{}, err
	}

	if _, err := s.resolveActiveShift(ctx, req.ShiftID, companyID); err != nil {
		return batch.BatchResponse{}, err
	}

	var pattern *batch.RotationPattern
	if req.Rotation != nil {
		pattern = req.Rotation.ToPattern()
		if err := s.resolveSequence(ctx, pattern.ShiftSequence, companyID); err != nil {
			return batch.BatchResponse{}, err
		}
	}

	now := time.Now().UTC()
	b := batch.Batch{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		Name:       req.Name,
		Code:       req.Code,
		Capacity:   req.Capacity,
		Department: req.Department,
		ShiftID:    req.ShiftID,
		Rotation:   pattern,
		IsDefault:  req.IsDefault,
	}

	var created batch.Batch
	err = s.runInTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.batchRepo.Create(txCtx, b)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return batch.ErrBatchCodeExists
			}
			return fmt.Errorf("failed to create batch: %w", err)
		}

		if req.IsDefault {
			if err := s.batchRepo.SetDefault(txCtx, created.ID, companyID); err != nil {
				return fmt.Errorf("failed to set default batch: %w", err)
			}
		}

		openShiftID, _, _ := created.CurrentShift(batch.TruncateToDay(now))
		_, err = s.historyRepo.Append(txCtx, history.AssignmentHistoryEntry{
			ID:                 uuid.NewString(),
			BatchID:            created.ID,
			ShiftID:            openShiftID,
			EffectiveStartDate: batch.TruncateToDay(now),
			RotationSnapshot:   created.Rotation.Clone(),
			AssignedBy:         userID,
			ChangeType:         history.ChangeTypeBatchCreated,
		})
		if err != nil {
			return fmt.Errorf("failed to append assignment history: %w", err)
		}

		return nil
	})
	if err != nil {
		return batch.BatchResponse{}, err
	}

	created.IsDefault = req.IsDefault
	return s.mapBatchToResponse(created, now), nil
}

// GetBatch implements rota.RotaService.
func (s *rotaServiceImpl) GetBatch(ctx context.Context, id string) (batch.BatchResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return batch.BatchResponse{}, err
	}

	b, err := s.batchRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return batch.BatchResponse{}, batch.ErrBatchNotFound
		}
		return batch.BatchResponse{}, fmt.Errorf("failed to get batch: %w", err)
	}

	return s.mapBatchToResponse(b, time.Now().UTC()), nil
}

// ListBatches implements rota.RotaService.
func (s *rotaServiceImpl) ListBatches(ctx context.Context, filter batch.BatchFilter) (batch.ListBatchResponse, error) {
	if err := filter.Validate(); err != nil {
		return batch.ListBatchResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return batch.ListBatchResponse{}, err
	}

	batches, total, err := s.batchRepo.GetByCompanyID(ctx, companyID, filter)
	if err != nil {
		return batch.ListBatchResponse{}, fmt.Errorf("failed to list batches: %w", err)
	}

	now := time.Now().UTC()
	responses := make([]batch.BatchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, s.mapBatchToResponse(b, now))
	}

	totalPages := 1
	if !filter.All && filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return batch.ListBatchResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Batches:    responses,
	}, nil
}

// UpdateBatch implements rota.RotaService. Plain metadata edits bypass the
// ledger; enabling, editing, or disabling the rotation pattern routes
// through it like any other assignment change.
func (s *rotaServiceImpl) UpdateBatch(ctx context.Context, req batch.UpdateBatchRequest) (batch.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return batch.BatchResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return batch.BatchResponse{}, err
	}
	req.CompanyID = companyID

	b, err := s.batchRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return batch.BatchResponse{}, batch.ErrBatchNotFound
		}
		return batch.BatchResponse{}, fmt.Errorf("failed to get batch: %w", err)
	}

	if req.Name != nil || req.Code != nil || req.Capacity != nil || req.Department != nil {
		b, err = s.batchRepo.Update(ctx, batch.UpdateBatchFields{
			ID:         req.ID,
			CompanyID:  companyID,
			Name:       req.Name,
			Code:       req.Code,
			Capacity:   req.Capacity,
			Department: req.Department,
			UpdatedAt:  time.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return batch.BatchResponse{}, batch.ErrBatchNotFound
			}
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return batch.BatchResponse{}, batch.ErrBatchCodeExists
			}
			return batch.BatchResponse{}, fmt.Errorf("failed to update batch: %w", err)
		}
	}

	now := time.Now().UTC()

	switch {
	case req.Rotation != nil:
		pattern := req.Rotation.ToPattern()
		if b.Rotation.Equal(pattern) {
			// Same schedule, nothing to record
			break
		}
		if err := s.resolveSequence(ctx, pattern.ShiftSequence, companyID); err != nil {
			return batch.BatchResponse{}, err
		}

		changeType := history.ChangeTypeRotationUpdated
		if !b.Rotating() {
			changeType = history.ChangeTypeRotationApplied
		}

		b, err = s.writeAssignment(ctx, b, b.ShiftID, pattern, changeType, userID, now)
		if err != nil {
			return batch.BatchResponse{}, err
		}

	case req.DisableRotation:
		if !b.Rotating() {
			break
		}
		b, err = s.writeAssignment(ctx, b, b.ShiftID, nil, history.ChangeTypeRotationDisabled, userID, now)
		if err != nil {
			return batch.BatchResponse{}, err
		}
	}

	return s.mapBatchToResponse(b, now), nil
}

// DeleteBatch implements rota.RotaService.
func (s *rotaServiceImpl) DeleteBatch(ctx context.Context, id string) error {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	count, err := s.employeeRepo.CountByBatchID(ctx, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to count batch employees: %w", err)
	}
	if count > 0 {
		return batch.ErrBatchHasEmployees
	}

	if err := s.batchRepo.SoftDelete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return batch.ErrBatchAlreadyDeleted
		}
		return fmt.Errorf("failed to delete batch: %w", err)
	}

	return nil
}

// ==================== MANUAL ASSIGNMENT ====================

// UpdateBatchShift implements rota.RotaService. Assigning the shift the
// batch already holds is a no-op and leaves the ledger untouched.
func (s *rotaServiceImpl) UpdateBatchShift(ctx context.Context, req rota.UpdateBatchShiftRequest) (batch.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return batch.BatchResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return batch.BatchResponse{}, err
	}

	b, err := s.batchRepo.GetByID(ctx, req.BatchID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return batch.BatchResponse{}, batch.ErrBatchNotFound
		}
		return batch.BatchResponse{}, fmt.Errorf("failed to get batch: %w", err)
	}

	now := time.Now().UTC()
	if b.ShiftID == req.ShiftID {
		return s.mapBatchToResponse(b, now), nil
	}

	if _, err := s.resolveActiveShift(ctx, req.ShiftID, companyID); err != nil {
		return batch.BatchResponse{}, err
	}

	b, err = s.writeAssignment(ctx, b, req.ShiftID, b.Rotation, history.ChangeTypeManual, userID, now)
	if err != nil {
		return batch.BatchResponse{}, err
	}

	return s.mapBatchToResponse(b, now), nil
}

// writeAssignment is the single funnel for every shift/rotation change on a
// batch: one transaction bumps the version (CAS on the observed one), closes
// the open ledger entry, and appends the new one. A version conflict is
// retried once against a fresh read; a second conflict surfaces as
// ErrConcurrentBatchUpdate.
func (s *rotaServiceImpl) writeAssignment(
	ctx context.Context,
	b batch.Batch,
	shiftID string,
	pattern *batch.RotationPattern,
	changeType history.ChangeType,
	userID string,
	now time.Time,
) (batch.Batch, error) {
	var updated batch.Batch

	attempt := func(observed batch.Batch) error {
		return s.runInTx(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			var err error
			updated, err = s.batchRepo.UpdateAssignment(txCtx, observed.ID, observed.CompanyID, shiftID, pattern, observed.Version)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return batch.ErrConcurrentBatchUpdate
				}
				return fmt.Errorf("failed to update batch assignment: %w", err)
			}

			day := batch.TruncateToDay(now)
			if err := s.historyRepo.CloseOpen(txCtx, observed.ID, day); err != nil {
				return fmt.Errorf("failed to close open assignment history: %w", err)
			}

			openShiftID, _, _ := updated.CurrentShift(day)
			_, err = s.historyRepo.Append(txCtx, history.AssignmentHistoryEntry{
				ID:                 uuid.NewString(),
				BatchID:            updated.ID,
				ShiftID:            openShiftID,
				EffectiveStartDate: day,
				RotationSnapshot:   updated.Rotation.Clone(),
				AssignedBy:         userID,
				ChangeType:         changeType,
			})
			if err != nil {
				return fmt.Errorf("failed to append assignment history: %w", err)
			}

			return nil
		})
	}

	err := attempt(b)
	if errors.Is(err, batch.ErrConcurrentBatchUpdate) {
		fresh, getErr := s.batchRepo.GetByID(ctx, b.ID, b.CompanyID)
		if getErr != nil {
			if errors.Is(getErr, pgx.ErrNoRows) {
				return batch.Batch{}, batch.ErrBatchNotFound
			}
			return batch.Batch{}, fmt.Errorf("failed to re-read batch: %w", getErr)
		}
		err = attempt(fresh)
	}
	if err != nil {
		return batch.Batch{}, err
	}

	return updated, nil
}

// ==================== SCHEDULE QUERIES ====================

// GetBatchCurrentShift implements rota.RotaService. An empty date means
// today.
func (s *rotaServiceImpl) GetBatchCurrentShift(ctx context.Context, batchID string, date string) (rota.CurrentShiftResponse, error) {
	ref, err := parseDateOrNow(date, "date")
	if err != nil {
		return rota.CurrentShiftResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return rota.CurrentShiftResponse{}, err
	}

	b, err := s.batchRepo.GetByID(ctx, batchID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rota.CurrentShiftResponse{}, batch.ErrBatchNotFound
		}
		return rota.CurrentShiftResponse{}, fmt.Errorf("failed to get batch: %w", err)
	}

	shiftID, idx, rotating := b.CurrentShift(ref)
	return rota.CurrentShiftResponse{
		BatchID:    b.ID,
		Date:       ref.Format("2006-01-02"),
		ShiftID:    shiftID,
		ShiftIndex: idx,
		IsRotation: rotating,
	}, nil
}

// GetBatchSchedule implements rota.RotaService.
func (s *rotaServiceImpl) GetBatchSchedule(ctx context.Context, batchID string, start, end string) (rota.BatchScheduleResponse, error) {
	startDate, err := parseDate(start, "start")
	if err != nil {
		return rota.BatchScheduleResponse{}, err
	}
	endDate, err := parseDate(end, "end")
	if err != nil {
		return rota.BatchScheduleResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return rota.BatchScheduleResponse{}, err
	}

	b, err := s.batchRepo.GetByID(ctx, batchID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rota.BatchScheduleResponse{}, batch.ErrBatchNotFound
		}
		return rota.BatchScheduleResponse{}, fmt.Errorf("failed to get batch: %w", err)
	}

	periods, err := b.ScheduleForRange(startDate, endDate)
	if err != nil {
		return rota.BatchScheduleResponse{}, err
	}

	resp := rota.BatchScheduleResponse{
		BatchID: b.ID,
		Start:   batch.TruncateToDay(startDate).Format("2006-01-02"),
		End:     batch.TruncateToDay(endDate).Format("2006-01-02"),
		Periods: make([]rota.SchedulePeriodResponse, 0, len(periods)),
	}
	for _, p := range periods {
		resp.Periods = append(resp.Periods, rota.SchedulePeriodResponse{
			ShiftID:     p.ShiftID,
			ShiftIndex:  p.ShiftIndex,
			PeriodStart: p.PeriodStart.Format("2006-01-02"),
			PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
			IsRotation:  p.IsRotation,
		})
	}

	if next := b.NextRotationDate(time.Now().UTC()); next != nil {
		formatted := next.Format("2006-01-02")
		resp.NextRotationDate = &formatted
	}

	return resp, nil
}

// GetNextRotationDate implements rota.RotaService.
func (s *rotaServiceImpl) GetNextRotationDate(ctx context.Context, batchID string) (rota.NextRotationResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return rota.NextRotationResponse{}, err
	}

	b, err := s.batchRepo.GetByID(ctx, batchID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rota.NextRotationResponse{}, batch.ErrBatchNotFound
		}
		return rota.NextRotationResponse{}, fmt.Errorf("failed to get batch: %w", err)
	}

	resp := rota.NextRotationResponse{BatchID: b.ID}
	if next := b.NextRotationDate(time.Now().UTC()); next != nil {
		formatted := next.Format("2006-01-02")
		resp.NextRotationDate = &formatted
	}

	return resp, nil
}

// ==================== LEDGER ====================

// GetBatchHistory implements rota.RotaService.
func (s *rotaServiceImpl) GetBatchHistory(ctx context.Context, batchID string, filter rota.HistoryFilter) (rota.BatchHistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return rota.BatchHistoryResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return rota.BatchHistoryResponse{}, err
	}

	if _, err := s.batchRepo.GetByID(ctx, batchID, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rota.BatchHistoryResponse{}, batch.ErrBatchNotFound
		}
		return rota.BatchHistoryResponse{}, fmt.Errorf("failed to get batch: %w", err)
	}

	entries, total, err := s.historyRepo.GetByBatchID(ctx, batchID, companyID, filter.Page, filter.Limit)
	if err != nil {
		return rota.BatchHistoryResponse{}, fmt.Errorf("failed to get assignment history: %w", err)
	}

	responses := make([]rota.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapHistoryEntryToResponse(e))
	}

	totalPages := 1
	if filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return rota.BatchHistoryResponse{
		BatchID:    batchID,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Entries:    responses,
	}, nil
}

// ==================== AUTO ASSIGNMENT ====================

// AutoAssignDefaultShift implements rota.RotaService. The write is a single
// statement over employees with no shift, so re-running it assigns nobody
// twice.
func (s *rotaServiceImpl) AutoAssignDefaultShift(ctx context.Context) (rota.AutoAssignResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return rota.AutoAssignResponse{}, err
	}

	def, err := s.shiftRepo.GetDefault(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rota.AutoAssignResponse{}, shift.ErrDefaultShiftNotConfigured
		}
		return rota.AutoAssignResponse{}, fmt.Errorf("failed to get default shift: %w", err)
	}

	assigned, err := s.employeeRepo.AssignDefaultShift(ctx, companyID, def.ID, batch.TruncateToDay(time.Now().UTC()))
	if err != nil {
		return rota.AutoAssignResponse{}, fmt.Errorf("failed to assign default shift: %w", err)
	}

	return rota.AutoAssignResponse{
		ShiftID:       def.ID,
		AssignedCount: assigned,
	}, nil
}

// ApplyRotationPattern implements rota.RotaService. Employees in the request
// that do not exist (or are deleted) are skipped and reported in FailedCount
// rather than failing the whole operation.
func (s *rotaServiceImpl) ApplyRotationPattern(ctx context.Context, req rota.ApplyRotationRequest) (rota.ApplyRotationResponse, error) {
	if err := req.Validate(); err != nil {
		return rota.ApplyRotationResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return rota.ApplyRotationResponse{}, err
	}

	if err := s.resolveSequence(ctx, req.ShiftIDs, companyID); err != nil {
		return rota.ApplyRotationResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	mode := batch.RotationModeCyclic
	if req.Mode != "" {
		mode = batch.RotationMode(req.Mode)
	}
	pattern := &batch.RotationPattern{
		Mode:          mode,
		ShiftSequence: append([]string(nil), req.ShiftIDs...),
		DaysPerShift:  *req.DaysPerShift,
		StartDate:     batch.TruncateToDay(startDate),
	}

	employees, err := s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs, companyID)
	if err != nil {
		return rota.ApplyRotationResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	initialShiftID, initialIdx := pattern.ShiftOn(pattern.StartDate)
	pattern.CurrentIndex = initialIdx

	foundIDs := make([]string, 0, len(employees))
	batchIDs := make(map[string]bool)
	for _, emp := range employees {
		foundIDs = append(foundIDs, emp.ID)
		if emp.BatchID != nil {
			batchIDs[*emp.BatchID] = true
		}
	}

	var assigned int64
	if len(foundIDs) > 0 {
		assigned, err = s.employeeRepo.BulkAssignShift(ctx, foundIDs, companyID, initialShiftID, pattern.StartDate, pattern)
		if err != nil {
			return rota.ApplyRotationResponse{}, fmt.Errorf("failed to bulk assign shift: %w", err)
		}

		// One ledger entry per batch the targeted employees belong to
		for batchID := range batchIDs {
			b, err := s.batchRepo.GetByID(ctx, batchID, companyID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					continue
				}
				return rota.ApplyRotationResponse{}, fmt.Errorf("failed to get batch: %w", err)
			}
			if _, err := s.writeAssignment(ctx, b, b.ShiftID, pattern, history.ChangeTypeRotationApplied, userID, time.Now().UTC()); err != nil {
				return rota.ApplyRotationResponse{}, err
			}
		}
	}

	return rota.ApplyRotationResponse{
		AssignedCount:     assigned,
		FailedCount:       int64(len(req.EmployeeIDs) - len(foundIDs)),
		InitialShiftID:    initialShiftID,
		InitialShiftIndex: initialIdx,
	}, nil
}

// PreviewAutoSchedule implements rota.RotaService. Read-only: computes what
// ApplyRotationPattern/manual assignment would write without persisting.
func (s *rotaServiceImpl) PreviewAutoSchedule(ctx context.Context, req rota.PreviewAutoScheduleRequest) (rota.PreviewAutoScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return rota.PreviewAutoScheduleResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return rota.PreviewAutoScheduleResponse{}, err
	}

	if _, err := s.resolveActiveShift(ctx, req.ShiftID, companyID); err != nil {
		return rota.PreviewAutoScheduleResponse{}, err
	}

	employees, err := s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs, companyID)
	if err != nil {
		return rota.PreviewAutoScheduleResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)
	formatted := batch.TruncateToDay(effectiveDate).Format("2006-01-02")

	assignments := make([]rota.PreviewAssignment, 0, len(employees))
	for _, emp := range employees {
		assignments = append(assignments, rota.PreviewAssignment{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.Name,
			CurrentShiftID: emp.ShiftID,
			NewShiftID:     req.ShiftID,
			EffectiveDate:  formatted,
		})
	}

	return rota.PreviewAutoScheduleResponse{Assignments: assignments}, nil
}

// ==================== MAPPERS ====================

func (s *rotaServiceImpl) mapBatchToResponse(b batch.Batch, now time.Time) batch.BatchResponse {
	currentShiftID, _, _ := b.CurrentShift(batch.TruncateToDay(now))

	resp := batch.BatchResponse{
		ID:             b.ID,
		CompanyID:      b.CompanyID,
		Name:           b.Name,
		Code:           b.Code,
		Capacity:       b.Capacity,
		Department:     b.Department,
		ShiftID:        b.ShiftID,
		CurrentShiftID: currentShiftID,
		IsDefault:      b.IsDefault,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
	if b.Rotating() {
		resp.Rotation = &batch.RotationPatternResponse{
			Mode:          string(b.Rotation.Mode),
			ShiftSequence: append([]string(nil), b.Rotation.ShiftSequence...),
			DaysPerShift:  b.Rotation.DaysPerShift,
			StartDate:     b.Rotation.StartDate.Format("2006-01-02"),
			CurrentIndex:  b.Rotation.IndexOn(batch.TruncateToDay(now)),
		}
	}
	return resp
}

func mapHistoryEntryToResponse(e history.AssignmentHistoryEntry) rota.HistoryEntryResponse {
	resp := rota.HistoryEntryResponse{
		ID:                 e.ID,
		BatchID:            e.BatchID,
		ShiftID:            e.ShiftID,
		EffectiveStartDate: e.EffectiveStartDate.Format("2006-01-02"),
		AssignedBy:         e.AssignedBy,
		ChangeType:         string(e.ChangeType),
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
	}
	if e.EffectiveEndDate != nil {
		formatted := e.EffectiveEndDate.Format("2006-01-02")
		resp.EffectiveEndDate = &formatted
	}
	if e.RotationSnapshot != nil {
		resp.RotationSnapshot = &rota.RotationSnapshotPayload{
			Mode:          string(e.RotationSnapshot.Mode),
			ShiftSequence: append([]string(nil), e.RotationSnapshot.ShiftSequence...),
			DaysPerShift:  e.RotationSnapshot.DaysPerShift,
			StartDate:     e.RotationSnapshot.StartDate.Format("2006-01-02"),
		}
	}
	return resp
}

func parseDate(value, field string) (time.Time, error) {
	if validator.IsEmpty(value) {
		return time.Time{}, validator.ValidationErrors{{
			Field:   field,
			Message: field + " is required",
		}}
	}
	parsed, valid := validator.IsValidDate(value)
	if !valid {
		return time.Time{}, validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be a valid date in YYYY-MM-DD format",
		}}
	}
	return parsed, nil
}

func parseDateOrNow(value, field string) (time.Time, error) {
	if validator.IsEmpty(value) {
		return batch.TruncateToDay(time.Now().UTC()), nil
	}
	parsed, valid := validator.IsValidDate(value)
	if !valid {
		return time.Time{}, validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be a valid date in YYYY-MM-DD format",
		}}
	}
	return batch.TruncateToDay(parsed), nil
}

func NewRotaService(
	db *database.DB,
	batchRepo batch.BatchRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	historyRepo history.AssignmentHistoryRepository,
) rota.RotaService {
	return &rotaServiceImpl{
		db:           db,
		batchRepo:    batchRepo,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		historyRepo:  historyRepo,
		runInTx:      postgresql.WithTransaction,
	}
}
