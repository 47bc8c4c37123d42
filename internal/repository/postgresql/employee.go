package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
)

// bulkAssignChunkSize bounds the id array passed to a single UPDATE.
const bulkAssignChunkSize = 500

type employeeRepositoryImpl struct {
	db *database.DB
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, batch_id, shift_id, shift_effective_date, created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.Name, &emp.BatchID, &emp.ShiftID, &emp.ShiftEffectiveDate,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetByIDs implements employee.EmployeeRepository. Ids with no matching row
// are silently absent from the result.
func (r *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, batch_id, shift_id, shift_effective_date, created_at, updated_at
		FROM employees
		WHERE id = ANY($1) AND company_id = $2 AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.Name, &emp.BatchID, &emp.ShiftID, &emp.ShiftEffectiveDate,
			&emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// CountByBatchID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByBatchID(ctx context.Context, batchID string, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM employees
		WHERE batch_id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var count int64
	if err := q.QueryRow(ctx, query, batchID, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return count, nil
}

// AssignDefaultShift implements employee.EmployeeRepository. The shift_id IS
// NULL predicate makes the statement idempotent: a second run finds nothing
// left to assign.
func (r *employeeRepositoryImpl) AssignDefaultShift(ctx context.Context, companyID string, shiftID string, effectiveDate time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET shift_id = $2, shift_effective_date = $3, updated_at = NOW()
		WHERE company_id = $1 AND shift_id IS NULL AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, companyID, shiftID, effectiveDate)
	if err != nil {
		return 0, err
	}

	return commandTag.RowsAffected(), nil
}

// BulkAssignShift implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) BulkAssignShift(ctx context.Context, ids []string, companyID string, shiftID string, effectiveDate time.Time, rotation *batch.RotationPattern) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	var rotationJSON []byte
	if rotation != nil {
		var err error
		rotationJSON, err = json.Marshal(rotation)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal rotation pattern: %w", err)
		}
	}

	query := `
		UPDATE employees
		SET shift_id = $3, shift_effective_date = $4, rotation_pattern = $5, updated_at = NOW()
		WHERE id = ANY($1) AND company_id = $2 AND deleted_at IS NULL
	`

	var total int64
	for start := 0; start < len(ids); start += bulkAssignChunkSize {
		end := start + bulkAssignChunkSize
		if end > len(ids) {
			end = len(ids)
		}

		commandTag, err := q.Exec(ctx, query, ids[start:end], companyID, shiftID, effectiveDate, rotationJSON)
		if err != nil {
			return total, fmt.Errorf("failed to bulk assign shift: %w", err)
		}
		total += commandTag.RowsAffected()
	}

	return total, nil
}

// ListAssignments implements employee.EmployeeRepository. The department
// filter goes through the employee's batch since employees carry no
// department of their own.
func (r *employeeRepositoryImpl) ListAssignments(ctx context.Context, companyID string, department *string) ([]employee.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.shift_id, e.batch_id
		FROM employees e
		LEFT JOIN batches b ON b.id = e.batch_id AND b.deleted_at IS NULL
		WHERE e.company_id = $1 AND e.deleted_at IS NULL
			AND ($2::text IS NULL OR b.department = $2)
		ORDER BY e.id
	`

	rows, err := q.Query(ctx, query, companyID, department)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []employee.ShiftAssignment
	for rows.Next() {
		var a employee.ShiftAssignment
		if err := rows.Scan(&a.EmployeeID, &a.ShiftID, &a.BatchID); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}
