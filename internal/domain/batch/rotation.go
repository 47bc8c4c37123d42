package batch

import "time"

// Pure date math converting a rotation pattern into shift assignments.
// All arithmetic is in whole UTC calendar days over day-truncated dates;
// the pattern is never advanced by a job, every read recomputes from
// StartDate.

// TruncateToDay normalizes a timestamp to 00:00 UTC of its calendar day.
// Every date entering the cycle arithmetic must pass through here first.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// floorMod is floored modulo. Go's native % truncates toward zero, which
// yields negative results for dates before the rotation start; the
// double-modulo keeps the cycle position in [0, n) for any day delta.
func floorMod(a, n int) int {
	return ((a % n) + n) % n
}

// daysBetween returns the whole-day delta from one calendar day to another,
// negative when to precedes from.
func daysBetween(from, to time.Time) int {
	return int(TruncateToDay(to).Sub(TruncateToDay(from)).Hours() / 24)
}

// CycleDays is the length of one full pass through the sequence.
func (p *RotationPattern) CycleDays() int {
	return len(p.ShiftSequence) * p.DaysPerShift
}

// positionInCycle maps a reference date to its day offset within the cycle.
func (p *RotationPattern) positionInCycle(ref time.Time) int {
	return floorMod(daysBetween(p.StartDate, ref), p.CycleDays())
}

// IndexOn returns the sequence index occupying the given date.
func (p *RotationPattern) IndexOn(ref time.Time) int {
	return (p.positionInCycle(ref) / p.DaysPerShift) % len(p.ShiftSequence)
}

// ShiftOn returns the shift id and sequence index occupying the given date.
func (p *RotationPattern) ShiftOn(ref time.Time) (string, int) {
	idx := p.IndexOn(ref)
	return p.ShiftSequence[idx], idx
}

// CurrentShift resolves the batch's occupying shift for the given date.
// A batch without a usable rotation pattern falls back to its static
// ShiftID unconditionally; this never fails.
func (b *Batch) CurrentShift(ref time.Time) (shiftID string, shiftIndex int, rotating bool) {
	if !b.Rotating() {
		return b.ShiftID, 0, false
	}
	shiftID, shiftIndex = b.Rotation.ShiftOn(ref)
	return shiftID, shiftIndex, true
}

// SchedulePeriod is one contiguous run of days held by a single shift.
// PeriodStart and PeriodEnd are both inclusive calendar days.
type SchedulePeriod struct {
	ShiftID     string
	ShiftIndex  int
	PeriodStart time.Time
	PeriodEnd   time.Time
	IsRotation  bool
}

// ScheduleForRange expands the batch's assignment over [start, end] into
// contiguous, non-overlapping periods covering the range exactly. For a
// static batch the whole range is a single period.
func (b *Batch) ScheduleForRange(start, end time.Time) ([]SchedulePeriod, error) {
	start = TruncateToDay(start)
	end = TruncateToDay(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	if !b.Rotating() {
		return []SchedulePeriod{{
			ShiftID:     b.ShiftID,
			PeriodStart: start,
			PeriodEnd:   end,
		}}, nil
	}

	p := b.Rotation
	var periods []SchedulePeriod
	cursor := start
	for !cursor.After(end) {
		pos := p.positionInCycle(cursor)
		// days left until the occupying shift hands over
		remaining := p.DaysPerShift - pos%p.DaysPerShift

		periodEnd := cursor.AddDate(0, 0, remaining-1)
		if periodEnd.After(end) {
			periodEnd = end
		}

		shiftID, idx := p.ShiftOn(cursor)
		periods = append(periods, SchedulePeriod{
			ShiftID:     shiftID,
			ShiftIndex:  idx,
			PeriodStart: cursor,
			PeriodEnd:   periodEnd,
			IsRotation:  true,
		})

		cursor = periodEnd.AddDate(0, 0, 1)
	}

	return periods, nil
}

// NextRotationDate returns the next day on which the occupying shift
// changes, or nil when the batch does not rotate.
func (b *Batch) NextRotationDate(now time.Time) *time.Time {
	if !b.Rotating() {
		return nil
	}
	p := b.Rotation
	now = TruncateToDay(now)
	remaining := p.DaysPerShift - p.positionInCycle(now)%p.DaysPerShift
	next := now.AddDate(0, 0, remaining)
	return &next
}
