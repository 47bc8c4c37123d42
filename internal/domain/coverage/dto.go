package coverage

type CoverageFilter struct {
	// Department restricts the report to one department when set.
	Department *string `json:"department,omitempty"`
	// Date is the day to report on, YYYY-MM-DD; empty means today.
	Date string `json:"date,omitempty"`
}

type CoverageSummary struct {
	TotalEmployees  int64 `json:"total_employees"`
	AssignedCount   int64 `json:"assigned_count"`
	UnassignedCount int64 `json:"unassigned_count"`
}

type ShiftCoverage struct {
	ShiftID       string `json:"shift_id"`
	ShiftName     string `json:"shift_name"`
	Color         string `json:"color"`
	IsDefault     bool   `json:"is_default"`
	EmployeeCount int64  `json:"employee_count"`
}

type CoverageResponse struct {
	Date     string          `json:"date"`
	Summary  CoverageSummary `json:"summary"`
	PerShift []ShiftCoverage `json:"per_shift"`
}
