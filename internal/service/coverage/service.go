package coverage

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/coverage"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/rota-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type coverageServiceImpl struct {
	db           *database.DB
	shiftRepo    shift.ShiftRepository
	batchRepo    batch.BatchRepository
	employeeRepo employee.EmployeeRepository
}

// Report implements coverage.CoverageService. The effective shift of an
// employee in a rotating batch is whatever the batch's pattern computes for
// the report date, not the stored shift_id column.
func (s *coverageServiceImpl) Report(ctx context.Context, filter coverage.CoverageFilter) (coverage.CoverageResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return coverage.CoverageResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return coverage.CoverageResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	day := batch.TruncateToDay(time.Now().UTC())
	if !validator.IsEmpty(filter.Date) {
		parsed, valid := validator.IsValidDate(filter.Date)
		if !valid {
			return coverage.CoverageResponse{}, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be a valid date in YYYY-MM-DD format",
			}}
		}
		day = batch.TruncateToDay(parsed)
	}

	shifts, _, err := s.shiftRepo.GetByCompanyID(ctx, companyID, shift.ShiftFilter{ActiveOnly: true, All: true, Page: 1, Limit: 1})
	if err != nil {
		return coverage.CoverageResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	assignments, err := s.employeeRepo.ListAssignments(ctx, companyID, filter.Department)
	if err != nil {
		return coverage.CoverageResponse{}, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	batches, _, err := s.batchRepo.GetByCompanyID(ctx, companyID, batch.BatchFilter{All: true, Page: 1, Limit: 1})
	if err != nil {
		return coverage.CoverageResponse{}, fmt.Errorf("failed to list batches: %w", err)
	}
	batchByID := make(map[string]batch.Batch, len(batches))
	for _, b := range batches {
		batchByID[b.ID] = b
	}

	counts := make(map[string]int64, len(shifts))
	var assigned int64
	for _, a := range assignments {
		effectiveShiftID := ""
		if a.BatchID != nil {
			if b, ok := batchByID[*a.BatchID]; ok {
				effectiveShiftID, _, _ = b.CurrentShift(day)
			}
		}
		if effectiveShiftID == "" && a.ShiftID != nil {
			effectiveShiftID = *a.ShiftID
		}
		if effectiveShiftID == "" {
			continue
		}
		assigned++
		counts[effectiveShiftID]++
	}

	perShift := make([]coverage.ShiftCoverage, 0, len(shifts))
	for _, sh := range shifts {
		perShift = append(perShift, coverage.ShiftCoverage{
			ShiftID:       sh.ID,
			ShiftName:     sh.Name,
			Color:         sh.Color,
			IsDefault:     sh.IsDefault,
			EmployeeCount: counts[sh.ID],
		})
	}

	total := int64(len(assignments))
	return coverage.CoverageResponse{
		Date: day.Format("2006-01-02"),
		Summary: coverage.CoverageSummary{
			TotalEmployees:  total,
			AssignedCount:   assigned,
			UnassignedCount: total - assigned,
		},
		PerShift: perShift,
	}, nil
}

func NewCoverageService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	batchRepo batch.BatchRepository,
	employeeRepo employee.EmployeeRepository,
) coverage.CoverageService {
	return &coverageServiceImpl{
		db:           db,
		shiftRepo:    shiftRepo,
		batchRepo:    batchRepo,
		employeeRepo: employeeRepo,
	}
}
