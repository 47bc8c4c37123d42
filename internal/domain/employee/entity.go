package employee

import "time"

// Employee is the referenced collaborator entity: the engine reads identity
// and writes shift assignment fields, everything else about an employee is
// owned elsewhere.
type Employee struct {
	ID                 string
	CompanyID          string
	Name               string
	BatchID            *string
	ShiftID            *string
	ShiftEffectiveDate *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}
