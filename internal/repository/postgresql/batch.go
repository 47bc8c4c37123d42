package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type batchRepositoryImpl struct {
	db *database.DB
}

const batchColumns = `
	id, company_id, name, code, capacity, department, shift_id,
	rotation_mode, rotation_shift_ids, rotation_days_per_shift, rotation_start_date, rotation_current_index,
	is_default, version, created_at, updated_at
`

// scanBatch reads one batch row including the flattened rotation columns.
// A row with NULL rotation columns maps to Rotation == nil (static batch).
func scanBatch(row pgx.Row) (batch.Batch, error) {
	var b batch.Batch
	var rotationMode *string
	var rotationShiftIDs []string
	var rotationDaysPerShift *int
	var rotationStartDate *time.Time
	var rotationCurrentIndex *int

	err := row.Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.Code, &b.Capacity, &b.Department, &b.ShiftID,
		&rotationMode, &rotationShiftIDs, &rotationDaysPerShift, &rotationStartDate, &rotationCurrentIndex,
		&b.IsDefault, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return batch.Batch{}, err
	}

	if len(rotationShiftIDs) > 0 && rotationDaysPerShift != nil && rotationStartDate != nil {
		pattern := &batch.RotationPattern{
			Mode:          batch.RotationModeCyclic,
			ShiftSequence: rotationShiftIDs,
			DaysPerShift:  *rotationDaysPerShift,
			StartDate:     batch.TruncateToDay(*rotationStartDate),
		}
		if rotationMode != nil {
			pattern.Mode = batch.RotationMode(*rotationMode)
		}
		if rotationCurrentIndex != nil {
			pattern.CurrentIndex = *rotationCurrentIndex
		}
		b.Rotation = pattern
	}

	return b, nil
}

// rotationArgs flattens a pattern into the rotation column values, all NULL
// for a static batch.
func rotationArgs(p *batch.RotationPattern) (mode *string, shiftIDs []string, daysPerShift *int, startDate *time.Time, currentIndex *int) {
	if p == nil {
		return nil, nil, nil, nil, nil
	}
	m := string(p.Mode)
	start := batch.TruncateToDay(p.StartDate)
	idx := p.CurrentIndex
	return &m, p.ShiftSequence, &p.DaysPerShift, &start, &idx
}

// Create implements batch.BatchRepository.
func (r *batchRepositoryImpl) Create(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO batches (
			id, company_id, name, code, capacity, department, shift_id,
			rotation_mode, rotation_shift_ids, rotation_days_per_shift, rotation_start_date, rotation_current_index,
			is_default, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, FALSE, 1, NOW(), NOW()
		) RETURNING version, created_at, updated_at
	`

	mode, shiftIDs, daysPerShift, startDate, currentIndex := rotationArgs(b.Rotation)
	err := q.QueryRow(ctx, query,
		b.ID, b.CompanyID, b.Name, b.Code, b.Capacity, b.Department, b.ShiftID,
		mode, shiftIDs, daysPerShift, startDate, currentIndex,
	).Scan(&b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return batch.Batch{}, err
	}

	return b, nil
}

// GetByID implements batch.BatchRepository.
func (r *batchRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	return scanBatch(q.QueryRow(ctx, query, id, companyID))
}

// GetByCompanyID implements batch.BatchRepository.
func (r *batchRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string, filter batch.BatchFilter) ([]batch.Batch, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "company_id = $1 AND deleted_at IS NULL"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Name != nil && *filter.Name != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		where += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM batches WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	selectQuery := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE ` + where + `
		ORDER BY name ASC`

	if !filter.All {
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var batches []batch.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, total, rows.Err()
}

// GetDefault implements batch.BatchRepository.
func (r *batchRepositoryImpl) GetDefault(ctx context.Context, companyID string) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE company_id = $1 AND is_default = TRUE AND deleted_at IS NULL
	`

	return scanBatch(q.QueryRow(ctx, query, companyID))
}

// Update implements batch.BatchRepository. Metadata only; the shift and
// rotation columns are owned by UpdateAssignment.
func (r *batchRepositoryImpl) Update(ctx context.Context, req batch.UpdateBatchFields) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Code != nil {
		updates = append(updates, fmt.Sprintf("code = $%d", argIdx))
		args = append(args, *req.Code)
		argIdx++
	}
	if req.Capacity != nil {
		updates = append(updates, fmt.Sprintf("capacity = $%d", argIdx))
		args = append(args, *req.Capacity)
		argIdx++
	}
	if req.Department != nil {
		updates = append(updates, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *req.Department)
		argIdx++
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, req.ID, req.CompanyID)
	}

	updates = append(updates, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE batches SET %s
		WHERE id = $%d AND company_id = $%d AND deleted_at IS NULL
		RETURNING `+batchColumns+`
	`, strings.Join(updates, ", "), argIdx, argIdx+1)
	args = append(args, req.ID, req.CompanyID)

	return scanBatch(q.QueryRow(ctx, query, args...))
}

// UpdateAssignment implements batch.BatchRepository. The version predicate
// makes this a compare-and-swap: a row modified since the caller's read no
// longer matches and the update returns pgx.ErrNoRows.
func (r *batchRepositoryImpl) UpdateAssignment(ctx context.Context, id, companyID, shiftID string, rotation *batch.RotationPattern, version int64) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE batches SET
			shift_id = $3,
			rotation_mode = $4,
			rotation_shift_ids = $5,
			rotation_days_per_shift = $6,
			rotation_start_date = $7,
			rotation_current_index = $8,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND version = $9 AND deleted_at IS NULL
		RETURNING ` + batchColumns + `
	`

	mode, shiftIDs, daysPerShift, startDate, currentIndex := rotationArgs(rotation)
	return scanBatch(q.QueryRow(ctx, query,
		id, companyID, shiftID,
		mode, shiftIDs, daysPerShift, startDate, currentIndex,
		version,
	))
}

// SetDefault implements batch.BatchRepository.
func (r *batchRepositoryImpl) SetDefault(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE batches
		SET is_default = (id = $1), updated_at = NOW()
		WHERE company_id = $2 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// SoftDelete implements batch.BatchRepository.
func (r *batchRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE batches
		SET deleted_at = NOW(), is_default = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return pgx.ErrNoRows
	}

	return nil
}

func NewBatchRepository(db *database.DB) batch.BatchRepository {
	return &batchRepositoryImpl{db: db}
}
