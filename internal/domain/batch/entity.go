package batch

import "time"

// Batch is a named group of employees sharing one shift-assignment policy.
// Rotation == nil means the batch holds its static ShiftID; a non-nil
// pattern means the occupying shift is computed from the pattern on read.
type Batch struct {
	ID         string
	CompanyID  string
	Name       string
	Code       string
	Capacity   *int
	Department *string
	ShiftID    string
	Rotation   *RotationPattern
	IsDefault  bool
	Version    int64 // bumped on every shift/rotation write, backs the CAS
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// Rotating reports whether the batch's occupying shift is derived from a
// rotation pattern rather than the static ShiftID.
func (b *Batch) Rotating() bool {
	return b.Rotation != nil && len(b.Rotation.ShiftSequence) > 0
}

type RotationMode string

const (
	RotationModeCyclic     RotationMode = "cyclic"     // wraps indefinitely
	RotationModeSequential RotationMode = "sequential" // advisory: one pass, same indexing
)

var RotationModeValues = []string{
	string(RotationModeCyclic),
	string(RotationModeSequential),
}

// RotationPattern describes how a batch's occupying shift evolves over time.
// It is the single source of truth for schedule computation: CurrentIndex is
// a denormalized cache and is always recomputed from StartDate on read.
//
// The json tags are the wire shape of the frozen snapshot stored on
// assignment history entries.
type RotationPattern struct {
	Mode          RotationMode `json:"mode"`
	ShiftSequence []string     `json:"shift_sequence"`
	DaysPerShift  int          `json:"days_per_shift"`
	StartDate     time.Time    `json:"start_date"`
	CurrentIndex  int          `json:"current_index"`
}

// Clone returns a deep copy, used to freeze snapshots onto history entries.
func (p *RotationPattern) Clone() *RotationPattern {
	if p == nil {
		return nil
	}
	cp := *p
	cp.ShiftSequence = append([]string(nil), p.ShiftSequence...)
	return &cp
}

// Equal reports whether two patterns describe the same schedule. Mode is
// advisory and CurrentIndex is derived, so neither participates.
func (p *RotationPattern) Equal(other *RotationPattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.DaysPerShift != other.DaysPerShift || !TruncateToDay(p.StartDate).Equal(TruncateToDay(other.StartDate)) {
		return false
	}
	if len(p.ShiftSequence) != len(other.ShiftSequence) {
		return false
	}
	for i := range p.ShiftSequence {
		if p.ShiftSequence[i] != other.ShiftSequence[i] {
			return false
		}
	}
	return true
}
