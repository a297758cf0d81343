package availability

import (
	"strconv"
	"strings"
	"time"

	"wellnest/models"
)

// DefaultSlotDurationMinutes is used when a caller does not request a duration.
const DefaultSlotDurationMinutes = 60

// ComputeDaySlots expands a provider's recurring schedule into the concrete
// bookable slots of the requested duration for one calendar day.
//
// The computation is pure and advisory: the authoritative conflict check
// happens in the reservation transaction, not here. Callers pass the current
// instant so results are reproducible in tests.
//
// Policy, in order:
//  1. The weekday is resolved in the provider's timezone (UTC when unset).
//  2. A blocked date short-circuits to no slots, whatever the weekday says.
//  3. An inactive or missing day schedule yields no slots.
//  4. Within each range the cursor steps by the slot duration itself; a
//     candidate rejected for overlap or for being in the past still consumes
//     its step. Finer-grained retry would change observable slot counts.
//
// Malformed ranges (bad clock strings, start >= end) contribute zero slots
// rather than failing; schedule data comes from user input the editor does
// not strictly validate.
func ComputeDaySlots(
	avail models.Availability,
	targetDate time.Time,
	durationMinutes int,
	appointments []models.Appointment,
	now time.Time,
) []models.AvailabilitySlot {
	if durationMinutes <= 0 {
		durationMinutes = DefaultSlotDurationMinutes
	}

	loc := resolveLocation(avail.Timezone)
	local := targetDate.In(loc)

	if avail.IsBlocked(local.Format("2006-01-02")) {
		return nil
	}

	day := avail.DayScheduleFor(weekdayName(local.Weekday()))
	if day == nil || !day.Active {
		return nil
	}

	dur := time.Duration(durationMinutes) * time.Minute
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var slots []models.AvailabilitySlot
	for _, tr := range day.TimeRanges {
		startMin, err := parseClock(tr.Start)
		if err != nil {
			continue
		}
		endMin, err := parseClock(tr.End)
		if err != nil {
			continue
		}

		rangeStart := midnight.Add(time.Duration(startMin) * time.Minute)
		rangeEnd := midnight.Add(time.Duration(endMin) * time.Minute)

		for cursor := rangeStart; !cursor.Add(dur).After(rangeEnd); cursor = cursor.Add(dur) {
			if cursor.Before(now) {
				continue
			}
			slotEnd := cursor.Add(dur)
			if overlapsAny(cursor, slotEnd, appointments) {
				continue
			}
			slots = append(slots, models.AvailabilitySlot{
				Start:     cursor,
				End:       slotEnd,
				Available: true,
			})
		}
	}
	return slots
}

// DayWindow resolves a "YYYY-MM-DD" date to the [midnight, next midnight)
// window in the provider's timezone. The window bounds the appointment fetch
// that feeds ComputeDaySlots.
func DayWindow(avail models.Availability, date string) (time.Time, time.Time, error) {
	loc := resolveLocation(avail.Timezone)
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.AddDate(0, 0, 1), nil
}

// overlapsAny reports whether [start, end) overlaps any appointment that still
// occupies provider time. Half-open intervals: [start,end) overlaps
// [a.Start,a.End) iff start < a.End && a.Start < end.
func overlapsAny(start, end time.Time, appointments []models.Appointment) bool {
	for _, a := range appointments {
		if !a.OccupiesTime() {
			continue
		}
		if start.Before(a.End()) && a.DateTime.Before(end) {
			return true
		}
	}
	return false
}

// parseClock converts a 24-hour "HH:MM" string to minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &clockError{s}
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &clockError{s}
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &clockError{s}
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, &clockError{s}
	}
	return hours*60 + minutes, nil
}

type clockError struct {
	value string
}

func (e *clockError) Error() string {
	return "invalid clock time: " + e.value
}

// weekdayName maps a time.Weekday to the schedule day key ("Mon".."Sun").
func weekdayName(d time.Weekday) string {
	return d.String()[:3]
}

func resolveLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
