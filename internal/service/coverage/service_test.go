package coverage

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/coverage"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/shift"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": "company-1",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type stubShiftRepo struct {
	shifts []shift.Shift
}

func (s *stubShiftRepo) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	return sh, nil
}
func (s *stubShiftRepo) GetByID(ctx context.Context, id, companyID string) (shift.Shift, error) {
	return shift.Shift{}, pgx.ErrNoRows
}
func (s *stubShiftRepo) GetByIDs(ctx context.Context, ids []string, companyID string) ([]shift.Shift, error) {
	return nil, nil
}
func (s *stubShiftRepo) GetByCompanyID(ctx context.Context, companyID string, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	var out []shift.Shift
	for _, sh := range s.shifts {
		if !filter.ActiveOnly || sh.IsActive {
			out = append(out, sh)
		}
	}
	return out, int64(len(out)), nil
}
func (s *stubShiftRepo) GetDefault(ctx context.Context, companyID string) (shift.Shift, error) {
	return shift.Shift{}, pgx.ErrNoRows
}
func (s *stubShiftRepo) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.Shift, error) {
	return shift.Shift{}, pgx.ErrNoRows
}
func (s *stubShiftRepo) SetDefault(ctx context.Context, id, companyID string) error { return nil }
func (s *stubShiftRepo) SoftDelete(ctx context.Context, id, companyID string) error { return nil }

type stubBatchRepo struct {
	batches []batch.Batch
}

func (s *stubBatchRepo) Create(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	return b, nil
}
func (s *stubBatchRepo) GetByID(ctx context.Context, id, companyID string) (batch.Batch, error) {
	return batch.Batch{}, pgx.ErrNoRows
}
func (s *stubBatchRepo) GetByCompanyID(ctx context.Context, companyID string, filter batch.BatchFilter) ([]batch.Batch, int64, error) {
	return s.batches, int64(len(s.batches)), nil
}
func (s *stubBatchRepo) GetDefault(ctx context.Context, companyID string) (batch.Batch, error) {
	return batch.Batch{}, pgx.ErrNoRows
}
func (s *stubBatchRepo) Update(ctx context.Context, req batch.UpdateBatchFields) (batch.Batch, error) {
	return batch.Batch{}, pgx.ErrNoRows
}
func (s *stubBatchRepo) UpdateAssignment(ctx context.Context, id, companyID, shiftID string, rotation *batch.RotationPattern, version int64) (batch.Batch, error) {
	return batch.Batch{}, pgx.ErrNoRows
}
func (s *stubBatchRepo) SetDefault(ctx context.Context, id, companyID string) error { return nil }
func (s *stubBatchRepo) SoftDelete(ctx context.Context, id, companyID string) error { return nil }

type stubEmployeeRepo struct {
	assignments []employee.ShiftAssignment
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	return employee.Employee{}, pgx.ErrNoRows
}
func (s *stubEmployeeRepo) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	return nil, nil
}
func (s *stubEmployeeRepo) CountByBatchID(ctx context.Context, batchID, companyID string) (int64, error) {
	return 0, nil
}
func (s *stubEmployeeRepo) AssignDefaultShift(ctx context.Context, companyID, shiftID string, effectiveDate time.Time) (int64, error) {
	return 0, nil
}
func (s *stubEmployeeRepo) BulkAssignShift(ctx context.Context, ids []string, companyID, shiftID string, effectiveDate time.Time, rotation *batch.RotationPattern) (int64, error) {
	return 0, nil
}
func (s *stubEmployeeRepo) ListAssignments(ctx context.Context, companyID string, department *string) ([]employee.ShiftAssignment, error) {
	return s.assignments, nil
}

func strPtr(s string) *string { return &s }

func TestReport_CountsEmployeesPerEffectiveShift(t *testing.T) {
	ctx := authedContext(t)

	shifts := &stubShiftRepo{shifts: []shift.Shift{
		{ID: "shift-a", Name: "Morning", Color: "#33AAFF", IsActive: true, IsDefault: true},
		{ID: "shift-b", Name: "Night", Color: "#AA33FF", IsActive: true},
	}}
	// Rotating batch holds shift-b on 2024-01-08 (week two of an A/B weekly
	// rotation anchored at 2024-01-01)
	batches := &stubBatchRepo{batches: []batch.Batch{
		{ID: "batch-static", ShiftID: "shift-a"},
		{ID: "batch-rotating", ShiftID: "shift-a", Rotation: &batch.RotationPattern{
			Mode:          batch.RotationModeCyclic,
			ShiftSequence: []string{"shift-a", "shift-b"},
			DaysPerShift:  7,
			StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	}}
	employees := &stubEmployeeRepo{assignments: []employee.ShiftAssignment{
		{EmployeeID: "emp-1", BatchID: strPtr("batch-static")},
		{EmployeeID: "emp-2", BatchID: strPtr("batch-rotating")},
		{EmployeeID: "emp-3", ShiftID: strPtr("shift-b")},
		{EmployeeID: "emp-4"}, // unassigned
	}}

	svc := NewCoverageService(nil, shifts, batches, employees)

	report, err := svc.Report(ctx, coverage.CoverageFilter{Date: "2024-01-08"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-08", report.Date)
	assert.Equal(t, int64(4), report.Summary.TotalEmployees)
	assert.Equal(t, int64(3), report.Summary.AssignedCount)
	assert.Equal(t, int64(1), report.Summary.UnassignedCount)

	counts := make(map[string]int64)
	for _, sc := range report.PerShift {
		counts[sc.ShiftID] = sc.EmployeeCount
	}
	assert.Equal(t, int64(1), counts["shift-a"]) // static batch member
	assert.Equal(t, int64(2), counts["shift-b"]) // rotating batch member + direct assignment
}

func TestReport_InvalidDate(t *testing.T) {
	ctx := authedContext(t)
	svc := NewCoverageService(nil, &stubShiftRepo{}, &stubBatchRepo{}, &stubEmployeeRepo{})

	_, err := svc.Report(ctx, coverage.CoverageFilter{Date: "not-a-date"})
	assert.Error(t, err)
}

func TestReport_EmptyCompany(t *testing.T) {
	ctx := authedContext(t)
	svc := NewCoverageService(nil, &stubShiftRepo{}, &stubBatchRepo{}, &stubEmployeeRepo{})

	report, err := svc.Report(ctx, coverage.CoverageFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.Summary.TotalEmployees)
	assert.Empty(t, report.PerShift)
}
