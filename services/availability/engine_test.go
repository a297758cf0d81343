package availability

import (
	"testing"
	"time"

	"wellnest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday.
var (
	monday  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	// Well before any test slot, so the past-time check stays out of the way
	// unless a test opts in.
	earlyNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func mondayAvailability(ranges ...models.TimeRange) models.Availability {
	schedule := make([]models.DaySchedule, 0, len(models.WeekdayNames))
	for _, day := range models.WeekdayNames {
		ds := models.DaySchedule{Day: day, TimeRanges: []models.TimeRange{}}
		if day == "Mon" {
			ds.Active = true
			ds.TimeRanges = ranges
		}
		schedule = append(schedule, ds)
	}
	days, hours := SummarizeSchedule(schedule)
	return models.Availability{Days: days, Hours: hours, Schedule: schedule, BlockedDates: []string{}}
}

func confirmedAppt(start time.Time, minutes int) models.Appointment {
	return models.Appointment{
		ID:              "appt-1",
		ProviderID:      "prov-1",
		DateTime:        start,
		DurationMinutes: minutes,
		Status:          models.AppointmentConfirmed,
	}
}

func TestComputeDaySlots_BasicMorningRange(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})

	slots := ComputeDaySlots(avail, monday, 60, nil, earlyNow)

	require.Len(t, slots, 3)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(10*time.Hour), slots[0].End)
	assert.Equal(t, monday.Add(10*time.Hour), slots[1].Start)
	assert.Equal(t, monday.Add(11*time.Hour), slots[2].Start)
	assert.Equal(t, monday.Add(12*time.Hour), slots[2].End)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestComputeDaySlots_ExistingAppointmentRemovesSlot(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})
	appts := []models.Appointment{confirmedAppt(monday.Add(10*time.Hour), 60)}

	slots := ComputeDaySlots(avail, monday, 60, appts, earlyNow)

	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(11*time.Hour), slots[1].Start)
}

func TestComputeDaySlots_CancelledAppointmentFreesSlot(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})
	appt := confirmedAppt(monday.Add(10*time.Hour), 60)
	appt.Status = models.AppointmentCancelled

	slots := ComputeDaySlots(avail, monday, 60, []models.Appointment{appt}, earlyNow)

	assert.Len(t, slots, 3)
}

func TestComputeDaySlots_BlockedDateShortCircuits(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})
	avail.BlockedDates = []string{"2025-06-02"}

	slots := ComputeDaySlots(avail, monday, 60, nil, earlyNow)

	assert.Empty(t, slots)
}

func TestComputeDaySlots_InactiveDayIsEmpty(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})

	// Tuesday exists in the schedule but is inactive.
	slots := ComputeDaySlots(avail, tuesday, 60, nil, earlyNow)

	assert.Empty(t, slots)
}

func TestComputeDaySlots_ActiveDayWithNoRangesIsEmpty(t *testing.T) {
	avail := mondayAvailability()

	slots := ComputeDaySlots(avail, monday, 60, nil, earlyNow)

	assert.Empty(t, slots)
}

func TestComputeDaySlots_PastSlotsExcluded(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})
	now := monday.Add(10*time.Hour + 30*time.Minute)

	slots := ComputeDaySlots(avail, monday, 60, nil, now)

	// 09:00 and 10:00 start before now; only 11:00 survives.
	require.Len(t, slots, 1)
	assert.Equal(t, monday.Add(11*time.Hour), slots[0].Start)
}

func TestComputeDaySlots_DurationDefaultsToSixtyMinutes(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "11:00"})

	slots := ComputeDaySlots(avail, monday, 0, nil, earlyNow)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Hour, slots[0].End.Sub(slots[0].Start))
}

func TestComputeDaySlots_SlotsAreExactlyRequestedDuration(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})

	slots := ComputeDaySlots(avail, monday, 45, nil, earlyNow)

	// 09:00, 09:45, 10:30, 11:15 all fit before 12:00.
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.Equal(t, 45*time.Minute, s.End.Sub(s.Start))
	}
	assert.Equal(t, monday.Add(12*time.Hour), slots[3].End)
}

func TestComputeDaySlots_MalformedRangesYieldNothing(t *testing.T) {
	avail := mondayAvailability(
		models.TimeRange{Start: "9am", End: "noon"},
		models.TimeRange{Start: "17:00", End: "09:00"}, // inverted
		models.TimeRange{Start: "25:00", End: "26:00"}, // out of range
	)

	slots := ComputeDaySlots(avail, monday, 60, nil, earlyNow)

	assert.Empty(t, slots)
}

func TestComputeDaySlots_MalformedRangeSkippedValidRangeKept(t *testing.T) {
	avail := mondayAvailability(
		models.TimeRange{Start: "bogus", End: "10:00"},
		models.TimeRange{Start: "14:00", End: "16:00"},
	)

	slots := ComputeDaySlots(avail, monday, 60, nil, earlyNow)

	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(14*time.Hour), slots[0].Start)
}

func TestComputeDaySlots_RejectedCandidateSwallowsFullStep(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})
	// A 15-minute appointment inside the 09:00 candidate; the cursor still
	// advances a full hour, so 09:45 is never offered.
	appts := []models.Appointment{confirmedAppt(monday.Add(9*time.Hour+30*time.Minute), 15)}

	slots := ComputeDaySlots(avail, monday, 60, appts, earlyNow)

	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(10*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(11*time.Hour), slots[1].Start)
}

func TestComputeDaySlots_BoundaryTouchingAppointmentsDoNotCollide(t *testing.T) {
	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "12:00"})
	// Occupies exactly 10:00-11:00; 09:00-10:00 and 11:00-12:00 touch but
	// do not overlap under half-open semantics.
	appts := []models.Appointment{confirmedAppt(monday.Add(10*time.Hour), 60)}

	slots := ComputeDaySlots(avail, monday, 60, appts, earlyNow)

	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(10*time.Hour), slots[0].End)
	assert.Equal(t, monday.Add(11*time.Hour), slots[1].Start)
}

func TestComputeDaySlots_RangesProcessedInStoredOrder(t *testing.T) {
	avail := mondayAvailability(
		models.TimeRange{Start: "13:00", End: "15:00"},
		models.TimeRange{Start: "09:00", End: "11:00"},
	)

	slots := ComputeDaySlots(avail, monday, 60, nil, earlyNow)

	require.Len(t, slots, 4)
	assert.Equal(t, monday.Add(13*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(14*time.Hour), slots[1].Start)
	assert.Equal(t, monday.Add(9*time.Hour), slots[2].Start)
	assert.Equal(t, monday.Add(10*time.Hour), slots[3].Start)
}

func TestComputeDaySlots_WeekdayResolvedInProviderTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	avail := mondayAvailability(models.TimeRange{Start: "09:00", End: "10:00"})
	avail.Timezone = "America/New_York"

	// 01:00 UTC on Tuesday June 3 is still Monday evening in New York.
	target := time.Date(2025, 6, 3, 1, 0, 0, 0, time.UTC)

	slots := ComputeDaySlots(avail, target, 60, nil, earlyNow)

	require.Len(t, slots, 1)
	local := slots[0].Start.In(ny)
	assert.Equal(t, "2025-06-02 09:00", local.Format("2006-01-02 15:04"))
}

func TestDayWindow(t *testing.T) {
	avail := models.Availability{Timezone: "America/New_York"}
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start, end, err := DayWindow(avail, "2025-06-02")
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, ny)))
	assert.True(t, end.Equal(time.Date(2025, 6, 3, 0, 0, 0, 0, ny)))

	_, _, err = DayWindow(avail, "06/02/2025")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tc := range cases {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
		} else {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
