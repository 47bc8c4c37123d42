package shift

import "time"

// Shift is a named work-time window employees are assigned to. Rows are
// immutable per version from the rotation engine's point of view: a catalog
// deactivation never rewrites history already written against the shift.
type Shift struct {
	ID        string
	CompanyID string
	Name      string
	StartTime time.Time // wall time, date part unused
	EndTime   time.Time // wall time, date part unused
	Color     string
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
