package batch

import (
	"strings"

	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/validator"
)

// RotationPatternRequest is the wire form of a rotation pattern. Catalog
// existence/activeness of the sequence ids is the service's job; this only
// checks shape.
type RotationPatternRequest struct {
	Mode          string   `json:"mode"`
	ShiftSequence []string `json:"shift_sequence"`
	DaysPerShift  *int     `json:"days_per_shift"`
	StartDate     string   `json:"start_date"` // YYYY-MM-DD format
}

func (r *RotationPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Mode) {
		r.Mode = string(RotationModeCyclic) // Default mode
	} else if !validator.IsInSlice(r.Mode, RotationModeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: " + strings.Join(RotationModeValues, ", "),
		})
	}
	if len(r.ShiftSequence) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_sequence",
			Message: "shift_sequence must contain at least one shift id",
		})
	}
	for _, id := range r.ShiftSequence {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "shift_sequence",
				Message: "shift_sequence must not contain empty ids",
			})
			break
		}
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

// ToPattern converts a validated request into the domain pattern,
// day-truncating the anchor date.
func (r *RotationPatternRequest) ToPattern() *RotationPattern {
	start, _ := validator.IsValidDate(r.StartDate)
	return &RotationPattern{
		Mode:          RotationMode(r.Mode),
		ShiftSequence: append([]string(nil), r.ShiftSequence...),
		DaysPerShift:  *r.DaysPerShift,
		StartDate:     TruncateToDay(start),
	}
}

type CreateBatchRequest struct {
	Name       string                  `json:"name"`
	Code       string                  `json:"code"`
	Capacity   *int                    `json:"capacity,omitempty"`
	Department *string                 `json:"department,omitempty"`
	ShiftID    string                  `json:"shift_id"`
	Rotation   *RotationPatternRequest `json:"rotation,omitempty"`
	IsDefault  bool                    `json:"is_default"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}
	if r.Capacity != nil && *r.Capacity < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "capacity",
			Message: "capacity must be at least 1",
		})
	}
	if r.Rotation != nil {
		if err := r.Rotation.Validate(); err != nil {
			if rotationErrs, ok := err.(validator.ValidationErrors); ok {
				for _, e := range rotationErrs {
					errs = append(errs, validator.ValidationError{
						Field:   "rotation." + e.Field,
						Message: e.Message,
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBatchRequest struct {
	ID         string                  `json:"-"`
	CompanyID  string                  `json:"-"`
	Name       *string                 `json:"name,omitempty"`
	Code       *string                 `json:"code,omitempty"`
	Capacity   *int                    `json:"capacity,omitempty"`
	Department *string                 `json:"department,omitempty"`
	Rotation   *RotationPatternRequest `json:"rotation,omitempty"`
	// DisableRotation switches the batch back to its static shift.
	DisableRotation bool `json:"disable_rotation,omitempty"`
}

func (r *UpdateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Code != nil && validator.IsEmpty(*r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must not be empty",
		})
	}
	if r.Capacity != nil && *r.Capacity < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "capacity",
			Message: "capacity must be at least 1",
		})
	}
	if r.Rotation != nil && r.DisableRotation {
		errs = append(errs, validator.ValidationError{
			Field:   "rotation",
			Message: "rotation and disable_rotation are mutually exclusive",
		})
	}
	if r.Rotation != nil {
		if err := r.Rotation.Validate(); err != nil {
			if rotationErrs, ok := err.(validator.ValidationErrors); ok {
				for _, e := range rotationErrs {
					errs = append(errs, validator.ValidationError{
						Field:   "rotation." + e.Field,
						Message: e.Message,
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RotationPatternResponse struct {
	Mode          string   `json:"mode"`
	ShiftSequence []string `json:"shift_sequence"`
	DaysPerShift  int      `json:"days_per_shift"`
	StartDate     string   `json:"start_date"`
	CurrentIndex  int      `json:"current_index"`
}

type BatchResponse struct {
	ID             string                   `json:"id"`
	CompanyID      string                   `json:"company_id"`
	Name           string                   `json:"name"`
	Code           string                   `json:"code"`
	Capacity       *int                     `json:"capacity,omitempty"`
	Department     *string                  `json:"department,omitempty"`
	ShiftID        string                   `json:"shift_id"`
	Rotation       *RotationPatternResponse `json:"rotation,omitempty"`
	CurrentShiftID string                   `json:"current_shift_id"`
	IsDefault      bool                     `json:"is_default"`
	CreatedAt      string                   `json:"created_at"`
	UpdatedAt      string                   `json:"updated_at"`
}

type BatchFilter struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`

	// Pagination
	Page  int  `json:"page"`
	Limit int  `json:"limit"`
	All   bool `json:"all"`
}

func (f *BatchFilter) Validate() error {
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
		f.Limit = 20 // Default limit
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

type ListBatchResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Batches    []BatchResponse `json:"batches"`
}
