package schedule

import (
	"fmt"
	"sort"

	"wellnest/models"
	"wellnest/services/availability"
)

// Default windows seeded by the editor.
var (
	defaultDayRange   = models.TimeRange{Start: "09:00", End: "17:00"}
	defaultAddedRange = models.TimeRange{Start: "12:00", End: "13:00"}
)

// The editor applies a provider's direct schedule edits in memory and keeps
// the derived Days/Hours summaries consistent. It deliberately performs no
// overlap or ordering validation on ranges; the availability engine treats
// malformed ranges as contributing zero slots.

// ToggleDayActive flips the active flag for the day at dayIndex. Activating a
// day that has no ranges seeds it with the default 09:00-17:00 window so the
// day is not active-but-empty. Deactivating leaves existing ranges in place,
// so an accidental toggle loses nothing.
func ToggleDayActive(avail *models.Availability, dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(avail.Schedule) {
		return fmt.Errorf("day index %d out of range", dayIndex)
	}
	day := &avail.Schedule[dayIndex]
	day.Active = !day.Active
	if day.Active && len(day.TimeRanges) == 0 {
		day.TimeRanges = []models.TimeRange{defaultDayRange}
	}
	refreshSummaries(avail)
	return nil
}

// AddTimeRange appends a default 12:00-13:00 range to the day at dayIndex.
func AddTimeRange(avail *models.Availability, dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(avail.Schedule) {
		return fmt.Errorf("day index %d out of range", dayIndex)
	}
	day := &avail.Schedule[dayIndex]
	day.TimeRanges = append(day.TimeRanges, defaultAddedRange)
	refreshSummaries(avail)
	return nil
}

// UpdateTimeRange sets the start or end clock value of one range in place.
func UpdateTimeRange(avail *models.Availability, dayIndex, rangeIndex int, field, value string) error {
	if dayIndex < 0 || dayIndex >= len(avail.Schedule) {
		return fmt.Errorf("day index %d out of range", dayIndex)
	}
	day := &avail.Schedule[dayIndex]
	if rangeIndex < 0 || rangeIndex >= len(day.TimeRanges) {
		return fmt.Errorf("range index %d out of range for %s", rangeIndex, day.Day)
	}
	switch field {
	case "start":
		day.TimeRanges[rangeIndex].Start = value
	case "end":
		day.TimeRanges[rangeIndex].End = value
	default:
		return fmt.Errorf("unknown time range field %q", field)
	}
	refreshSummaries(avail)
	return nil
}

// RemoveTimeRange deletes one range. Emptying an active day keeps it active
// with no ranges, which reads as temporarily unavailable rather than off.
func RemoveTimeRange(avail *models.Availability, dayIndex, rangeIndex int) error {
	if dayIndex < 0 || dayIndex >= len(avail.Schedule) {
		return fmt.Errorf("day index %d out of range", dayIndex)
	}
	day := &avail.Schedule[dayIndex]
	if rangeIndex < 0 || rangeIndex >= len(day.TimeRanges) {
		return fmt.Errorf("range index %d out of range for %s", rangeIndex, day.Day)
	}
	day.TimeRanges = append(day.TimeRanges[:rangeIndex], day.TimeRanges[rangeIndex+1:]...)
	refreshSummaries(avail)
	return nil
}

// AddBlockedDate inserts a "YYYY-MM-DD" date if not already present and keeps
// the list sorted ascending. Adding a duplicate is a no-op.
func AddBlockedDate(avail *models.Availability, date string) {
	for _, d := range avail.BlockedDates {
		if d == date {
			return
		}
	}
	avail.BlockedDates = append(avail.BlockedDates, date)
	sort.Strings(avail.BlockedDates)
}

// RemoveBlockedDate removes a blocked date by exact string match.
func RemoveBlockedDate(avail *models.Availability, date string) {
	for i, d := range avail.BlockedDates {
		if d == date {
			avail.BlockedDates = append(avail.BlockedDates[:i], avail.BlockedDates[i+1:]...)
			return
		}
	}
}

func refreshSummaries(avail *models.Availability) {
	avail.Days, avail.Hours = availability.SummarizeSchedule(avail.Schedule)
}
