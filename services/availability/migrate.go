package availability

import "wellnest/models"

// MigrateLegacyAvailability upgrades an availability document whose schedule
// predates the per-day editor. Older provider records only carried the flat
// Days list; each listed day becomes active with one default 09:00-17:00
// range and the remaining weekdays stay inactive and empty. Documents that
// already have a schedule are returned unchanged.
//
// This runs once at the data-access boundary (the provider repository), never
// as a side effect of serving a request.
func MigrateLegacyAvailability(raw models.Availability) models.Availability {
	if len(raw.Schedule) > 0 {
		return raw
	}

	active := make(map[string]bool, len(raw.Days))
	for _, d := range raw.Days {
		active[d] = true
	}

	schedule := make([]models.DaySchedule, 0, len(models.WeekdayNames))
	for _, day := range models.WeekdayNames {
		ds := models.DaySchedule{Day: day, Active: false, TimeRanges: []models.TimeRange{}}
		if active[day] {
			ds.Active = true
			ds.TimeRanges = []models.TimeRange{{Start: "09:00", End: "17:00"}}
		}
		schedule = append(schedule, ds)
	}

	raw.Schedule = schedule
	raw.Days, raw.Hours = SummarizeSchedule(schedule)
	return raw
}

// SummarizeSchedule recomputes the derived Days and Hours display summaries
// from a schedule. Days lists the active day names in weekly order; Hours
// renders the ranges of the first active day that has at least one range.
// These two fields must never be written independently of the schedule.
func SummarizeSchedule(schedule []models.DaySchedule) (days []string, hours []string) {
	days = []string{}
	hours = []string{}
	for _, ds := range schedule {
		if ds.Active {
			days = append(days, ds.Day)
		}
	}
	for _, ds := range schedule {
		if ds.Active && len(ds.TimeRanges) > 0 {
			for _, tr := range ds.TimeRanges {
				hours = append(hours, tr.Start+" - "+tr.End)
			}
			break
		}
	}
	return days, hours
}
