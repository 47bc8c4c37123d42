package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weeklyABC() *Batch {
	return &Batch{
		ID:      "batch-1",
		ShiftID: "static",
		Rotation: &RotationPattern{
			Mode:          RotationModeCyclic,
			ShiftSequence: []string{"A", "B", "C"},
			DaysPerShift:  7,
			StartDate:     day(2024, time.January, 1),
		},
	}
}

func TestCurrentShift_WeeklyCycle(t *testing.T) {
	b := weeklyABC()

	cases := []struct {
		name      string
		ref       time.Time
		wantShift string
		wantIndex int
	}{
		{"cycle start", day(2024, time.January, 1), "A", 0},
		{"last day of first shift", day(2024, time.January, 7), "A", 0},
		{"second shift starts", day(2024, time.January, 8), "B", 1},
		{"third shift", day(2024, time.January, 15), "C", 2},
		{"second cycle wraps to first shift", day(2024, time.January, 22), "A", 0},
		{"deep into later cycles", day(2024, time.March, 4), "A", 0}, // 63 days = 3 full cycles
		{"one shift before the anchor", day(2023, time.December, 25), "C", 2},
		{"two shifts before the anchor", day(2023, time.December, 18), "B", 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			shiftID, idx, rotating := b.CurrentShift(c.ref)
			assert.True(t, rotating)
			assert.Equal(t, c.wantShift, shiftID)
			assert.Equal(t, c.wantIndex, idx)
		})
	}
}

func TestCurrentShift_IgnoresTimeOfDay(t *testing.T) {
	b := weeklyABC()

	midday := time.Date(2024, time.January, 8, 15, 30, 45, 0, time.UTC)
	gotMidday, _, _ := b.CurrentShift(midday)
	gotMidnight, _, _ := b.CurrentShift(day(2024, time.January, 8))

	assert.Equal(t, gotMidnight, gotMidday)
}

func TestCurrentShift_Periodicity(t *testing.T) {
	b := weeklyABC()
	cycle := b.Rotation.CycleDays()
	require.Equal(t, 21, cycle)

	ref := day(2023, time.November, 3)
	for i := 0; i < 90; i++ {
		d := ref.AddDate(0, 0, i)
		got, _, _ := b.CurrentShift(d)
		shifted, _, _ := b.CurrentShift(d.AddDate(0, 0, cycle))
		assert.Equal(t, got, shifted, "period mismatch at %s", d.Format("2006-01-02"))
	}
}

func TestCurrentShift_NegativeOffsets(t *testing.T) {
	b := weeklyABC()
	cycle := b.Rotation.CycleDays()
	start := b.Rotation.StartDate

	for n := 1; n <= 60; n++ {
		before := start.AddDate(0, 0, -n)
		got, _, _ := b.CurrentShift(before)
		wrapped, _, _ := b.CurrentShift(before.AddDate(0, 0, cycle))
		assert.Equal(t, wrapped, got, "negative offset mismatch at -%d days", n)
	}
}

func TestCurrentShift_StaticFallback(t *testing.T) {
	cases := []struct {
		name  string
		batch Batch
	}{
		{"no rotation pattern", Batch{ShiftID: "day-shift"}},
		{"empty sequence", Batch{ShiftID: "day-shift", Rotation: &RotationPattern{DaysPerShift: 7}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			shiftID, idx, rotating := c.batch.CurrentShift(day(2024, time.June, 1))
			assert.False(t, rotating)
			assert.Equal(t, "day-shift", shiftID)
			assert.Equal(t, 0, idx)
		})
	}
}

func TestScheduleForRange_MidCycleRange(t *testing.T) {
	b := weeklyABC()

	periods, err := b.ScheduleForRange(day(2024, time.January, 5), day(2024, time.January, 10))
	require.NoError(t, err)
	require.Len(t, periods, 2)

	assert.Equal(t, "A", periods[0].ShiftID)
	assert.Equal(t, day(2024, time.January, 5), periods[0].PeriodStart)
	assert.Equal(t, day(2024, time.January, 7), periods[0].PeriodEnd)

	assert.Equal(t, "B", periods[1].ShiftID)
	assert.Equal(t, day(2024, time.January, 8), periods[1].PeriodStart)
	assert.Equal(t, day(2024, time.January, 10), periods[1].PeriodEnd)
}

func TestScheduleForRange_CoversRangeExactly(t *testing.T) {
	b := weeklyABC()
	start := day(2023, time.December, 20) // straddles the anchor date
	end := day(2024, time.February, 14)

	periods, err := b.ScheduleForRange(start, end)
	require.NoError(t, err)
	require.NotEmpty(t, periods)

	assert.Equal(t, start, periods[0].PeriodStart)
	assert.Equal(t, end, periods[len(periods)-1].PeriodEnd)

	for i, p := range periods {
		assert.False(t, p.PeriodEnd.Before(p.PeriodStart), "inverted period %d", i)
		if i > 0 {
			// contiguous, no gap and no overlap
			assert.Equal(t, periods[i-1].PeriodEnd.AddDate(0, 0, 1), p.PeriodStart, "gap before period %d", i)
		}
	}
}

func TestScheduleForRange_ConsistentWithCurrentShift(t *testing.T) {
	b := weeklyABC()
	start := day(2023, time.December, 1)
	end := day(2024, time.February, 29)

	periods, err := b.ScheduleForRange(start, end)
	require.NoError(t, err)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		var containing *SchedulePeriod
		for i := range periods {
			if !d.Before(periods[i].PeriodStart) && !d.After(periods[i].PeriodEnd) {
				containing = &periods[i]
				break
			}
		}
		require.NotNil(t, containing, "no period contains %s", d.Format("2006-01-02"))

		shiftID, idx, _ := b.CurrentShift(d)
		assert.Equal(t, containing.ShiftID, shiftID, "shift mismatch on %s", d.Format("2006-01-02"))
		assert.Equal(t, containing.ShiftIndex, idx, "index mismatch on %s", d.Format("2006-01-02"))
	}
}

func TestScheduleForRange_SingleDay(t *testing.T) {
	b := weeklyABC()

	periods, err := b.ScheduleForRange(day(2024, time.January, 9), day(2024, time.January, 9))
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "B", periods[0].ShiftID)
	assert.Equal(t, periods[0].PeriodStart, periods[0].PeriodEnd)
}

func TestScheduleForRange_DailyRotation(t *testing.T) {
	b := &Batch{
		ShiftID: "static",
		Rotation: &RotationPattern{
			Mode:          RotationModeCyclic,
			ShiftSequence: []string{"morning", "evening"},
			DaysPerShift:  1,
			StartDate:     day(2024, time.May, 1),
		},
	}

	periods, err := b.ScheduleForRange(day(2024, time.May, 1), day(2024, time.May, 4))
	require.NoError(t, err)
	require.Len(t, periods, 4)
	assert.Equal(t, "morning", periods[0].ShiftID)
	assert.Equal(t, "evening", periods[1].ShiftID)
	assert.Equal(t, "morning", periods[2].ShiftID)
	assert.Equal(t, "evening", periods[3].ShiftID)
}

func TestScheduleForRange_StaticBatch(t *testing.T) {
	b := &Batch{ShiftID: "day-shift"}

	periods, err := b.ScheduleForRange(day(2024, time.January, 5), day(2024, time.January, 25))
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "day-shift", periods[0].ShiftID)
	assert.False(t, periods[0].IsRotation)
	assert.Equal(t, day(2024, time.January, 5), periods[0].PeriodStart)
	assert.Equal(t, day(2024, time.January, 25), periods[0].PeriodEnd)
}

func TestScheduleForRange_InvalidRange(t *testing.T) {
	b := weeklyABC()

	_, err := b.ScheduleForRange(day(2024, time.January, 10), day(2024, time.January, 5))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNextRotationDate(t *testing.T) {
	b := weeklyABC()

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"start of shift", day(2024, time.January, 1), day(2024, time.January, 8)},
		{"mid shift", day(2024, time.January, 5), day(2024, time.January, 8)},
		{"day before handover", day(2024, time.January, 7), day(2024, time.January, 8)},
		{"before the anchor", day(2023, time.December, 30), day(2024, time.January, 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := b.NextRotationDate(c.now)
			require.NotNil(t, got)
			assert.Equal(t, c.want, *got)
		})
	}
}

func TestNextRotationDate_StaticBatch(t *testing.T) {
	b := &Batch{ShiftID: "day-shift"}
	assert.Nil(t, b.NextRotationDate(day(2024, time.January, 1)))
}

func TestRotationPattern_Equal(t *testing.T) {
	base := &RotationPattern{
		ShiftSequence: []string{"A", "B"},
		DaysPerShift:  7,
		StartDate:     day(2024, time.January, 1),
	}

	same := base.Clone()
	same.Mode = RotationModeSequential // advisory, must not matter
	assert.True(t, base.Equal(same))

	reordered := base.Clone()
	reordered.ShiftSequence = []string{"B", "A"}
	assert.False(t, base.Equal(reordered))

	differentCadence := base.Clone()
	differentCadence.DaysPerShift = 14
	assert.False(t, base.Equal(differentCadence))

	differentAnchor := base.Clone()
	differentAnchor.StartDate = day(2024, time.January, 2)
	assert.False(t, base.Equal(differentAnchor))

	assert.False(t, base.Equal(nil))
	var nilPattern *RotationPattern
	assert.True(t, nilPattern.Equal(nil))
}

func TestClone_IsDeep(t *testing.T) {
	p := &RotationPattern{ShiftSequence: []string{"A", "B"}, DaysPerShift: 7, StartDate: day(2024, time.January, 1)}
	cp := p.Clone()
	cp.ShiftSequence[0] = "Z"
	assert.Equal(t, "A", p.ShiftSequence[0])
}
