package rota

import (
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/validator"
)

// ==================== SCHEDULE QUERIES ====================

type CurrentShiftResponse struct {
	BatchID    string `json:"batch_id"`
	Date       string `json:"date"`
	ShiftID    string `json:"shift_id"`
	ShiftIndex int    `json:"shift_index"`
	IsRotation bool   `json:"is_rotation"`
}

type SchedulePeriodResponse struct {
	ShiftID     string `json:"shift_id"`
	ShiftIndex  int    `json:"shift_index"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	IsRotation  bool   `json:"is_rotation"`
}

type BatchScheduleResponse struct {
	BatchID          string                   `json:"batch_id"`
	Start            string                   `json:"start"`
	End              string                   `json:"end"`
	Periods          []SchedulePeriodResponse `json:"periods"`
	NextRotationDate *string                  `json:"next_rotation_date,omitempty"`
}

type NextRotationResponse struct {
	BatchID          string  `json:"batch_id"`
	NextRotationDate *string `json:"next_rotation_date"`
}

// ==================== AUTO ASSIGNMENT ====================

type AutoAssignResponse struct {
	ShiftID       string `json:"shift_id"`
	AssignedCount int64  `json:"assigned_count"`
}

type ApplyRotationRequest struct {
	EmployeeIDs  []string `json:"employee_ids"`
	ShiftIDs     []string `json:"shift_ids"`
	DaysPerShift *int     `json:"days_per_shift"`
	StartDate    string   `json:"start_date"` // YYYY-MM-DD format
	Mode         string   `json:"mode,omitempty"`
}

func (r *ApplyRotationRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must contain at least one id",
		})
	}
	if len(r.ShiftIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_ids",
			Message: "shift_ids must contain at least one id",
		})
	}
	if r.DaysPerShift == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "days_per_shift",
			Message: "days_per_shift is required",
		})
	} else if *r.DaysPerShift < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "days_per_shift",
			Message: "days_per_shift must be at least 1",
		})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApplyRotationResponse struct {
	AssignedCount     int64  `json:"assigned_count"`
	FailedCount       int64  `json:"failed_count"`
	InitialShiftID    string `json:"initial_shift_id"`
	InitialShiftIndex int    `json:"initial_shift_index"`
}

type UpdateBatchShiftRequest struct {
	BatchID string `json:"-"`
	ShiftID string `json:"shift_id"`
}

func (r *UpdateBatchShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "batch_id",
			Message: "batch_id is required",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PreviewAutoScheduleRequest struct {
	ShiftID       string   `json:"shift_id"`
	EmployeeIDs   []string `json:"employee_ids"`
	EffectiveDate string   `json:"effective_date"` // YYYY-MM-DD format
}

func (r *PreviewAutoScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must contain at least one id",
		})
	}
	if validator.IsEmpty(r.EffectiveDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date is required",
		})
	} else if _, valid := validator.IsValidDate(r.EffectiveDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PreviewAssignment struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	CurrentShiftID *string `json:"current_shift_id"`
	NewShiftID     string  `json:"new_shift_id"`
	EffectiveDate  string  `json:"effective_date"`
}

type PreviewAutoScheduleResponse struct {
	Assignments []PreviewAssignment `json:"assignments"`
}

// ==================== ASSIGNMENT HISTORY ====================

type HistoryFilter struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 10 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryEntryResponse struct {
	ID                 string                   `json:"id"`
	BatchID            string                   `json:"batch_id"`
	ShiftID            string                   `json:"shift_id"`
	EffectiveStartDate string                   `json:"effective_start_date"`
	EffectiveEndDate   *string                  `json:"effective_end_date"`
	RotationSnapshot   *RotationSnapshotPayload `json:"rotation_snapshot,omitempty"`
	AssignedBy         string                   `json:"assigned_by"`
	ChangeType         string                   `json:"change_type"`
	CreatedAt          string                   `json:"created_at"`
}

type RotationSnapshotPayload struct {
	Mode          string   `json:"mode"`
	ShiftSequence []string `json:"shift_sequence"`
	DaysPerShift  int      `json:"days_per_shift"`
	StartDate     string   `json:"start_date"`
}

type BatchHistoryResponse struct {
	BatchID    string                 `json:"batch_id"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Entries    []HistoryEntryResponse `json:"entries"`
}
