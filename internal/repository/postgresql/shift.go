package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, company_id, name, start_time, end_time, color, is_default, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, FALSE, $7, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sh.ID, sh.CompanyID, sh.Name, sh.StartTime, sh.EndTime, sh.Color, sh.IsActive,
	).Scan(&sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return shift.Shift{}, err
	}

	return sh, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, color, is_default, is_active, created_at, updated_at
		FROM shifts
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartTime, &sh.EndTime, &sh.Color,
		&sh.IsDefault, &sh.IsActive, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	return sh, nil
}

// GetByIDs implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByIDs(ctx context.Context, ids []string, companyID string) ([]shift.Shift, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, color, is_default, is_active, created_at, updated_at
		FROM shifts
		WHERE id = ANY($1) AND company_id = $2 AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var sh shift.Shift
		if err := rows.Scan(
			&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartTime, &sh.EndTime, &sh.Color,
			&sh.IsDefault, &sh.IsActive, &sh.CreatedAt, &sh.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, rows.Err()
}

// GetByCompanyID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "company_id = $1 AND deleted_at IS NULL"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Name != nil && *filter.Name != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}
	if filter.ActiveOnly {
		where += " AND is_active = TRUE"
	}

	countQuery := "SELECT COUNT(*) FROM shifts WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	selectQuery := `
		SELECT id, company_id, name, start_time, end_time, color, is_default, is_active, created_at, updated_at
		FROM shifts
		WHERE ` + where + `
		ORDER BY start_time ASC, name ASC`

	if !filter.All {
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var sh shift.Shift
		if err := rows.Scan(
			&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartTime, &sh.EndTime, &sh.Color,
			&sh.IsDefault, &sh.IsActive, &sh.CreatedAt, &sh.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}

	return shifts, total, rows.Err()
}

// GetDefault implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetDefault(ctx context.Context, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, color, is_default, is_active, created_at, updated_at
		FROM shifts
		WHERE company_id = $1 AND is_default = TRUE AND is_active = TRUE AND deleted_at IS NULL
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, companyID).Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartTime, &sh.EndTime, &sh.Color,
		&sh.IsDefault, &sh.IsActive, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	return sh, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.StartTime != nil {
		updates = append(updates, fmt.Sprintf("start_time = $%d", argIdx))
		args = append(args, *req.StartTime)
		argIdx++
	}
	if req.EndTime != nil {
		updates = append(updates, fmt.Sprintf("end_time = $%d", argIdx))
		args = append(args, *req.EndTime)
		argIdx++
	}
	if req.Color != nil {
		updates = append(updates, fmt.Sprintf("color = $%d", argIdx))
		args = append(args, *req.Color)
		argIdx++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, req.ID, req.CompanyID)
	}

	updates = append(updates, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE shifts SET %s
		WHERE id = $%d AND company_id = $%d AND deleted_at IS NULL
		RETURNING id, company_id, name, start_time, end_time, color, is_default, is_active, created_at, updated_at
	`, strings.Join(updates, ", "), argIdx, argIdx+1)
	args = append(args, req.ID, req.CompanyID)

	var sh shift.Shift
	err := q.QueryRow(ctx, query, args...).Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartTime, &sh.EndTime, &sh.Color,
		&sh.IsDefault, &sh.IsActive, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	return sh, nil
}

// SetDefault implements shift.ShiftRepository. One statement flips the flag
// on for the target row and off for every sibling, so two concurrent calls
// still leave exactly one default.
func (r *shiftRepositoryImpl) SetDefault(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
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

// SoftDelete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
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

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}
