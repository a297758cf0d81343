package models

// WeekdayNames lists the schedule day keys in display order, Monday first.
// These match time.Weekday abbreviations (time.Monday.String()[:3] == "Mon").
var WeekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TimeRange is a half-open clock window within a single day.
// Start and End hold 24-hour "HH:MM" wall-clock strings with no date or zone.
type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// DaySchedule is the recurring weekly template for one weekday. A day with
// Active false contributes no slots regardless of its ranges; an active day
// with zero ranges is "temporarily unavailable" rather than off.
type DaySchedule struct {
	Day        string      `bson:"day" json:"day"` // "Mon".."Sun", unique per Availability
	Active     bool        `bson:"active" json:"active"`
	TimeRanges []TimeRange `bson:"timeRanges" json:"timeRanges"`
}

// Availability is a provider's complete scheduling configuration.
// Schedule is the single source of truth; Days and Hours are display
// summaries recomputed alongside every schedule mutation and never edited
// independently.
type Availability struct {
	Days         []string      `bson:"days" json:"days"`
	Hours        []string      `bson:"hours" json:"hours"`
	Schedule     []DaySchedule `bson:"schedule" json:"schedule"`
	BlockedDates []string      `bson:"blockedDates" json:"blockedDates"` // "YYYY-MM-DD", kept sorted ascending
	Timezone     string        `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

// DayScheduleFor returns the schedule entry for the given weekday name, or nil.
func (a *Availability) DayScheduleFor(day string) *DaySchedule {
	for i := range a.Schedule {
		if a.Schedule[i].Day == day {
			return &a.Schedule[i]
		}
	}
	return nil
}

// IsBlocked reports whether the given "YYYY-MM-DD" date is a blocked date.
func (a *Availability) IsBlocked(date string) bool {
	for _, d := range a.BlockedDates {
		if d == date {
			return true
		}
	}
	return false
}
