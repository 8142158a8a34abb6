package aggregation

import (
	"meetsync/internal/models"
	"sort"
)

// DayFor returns the counts shown on a single calendar cell. In time-slot
// mode Available is the better of the two slots.
func DayFor(mode models.AvailabilityMode, members []*models.Member, availability []*models.Availability, date string) models.DayAvailability {
	known := memberSet(members)
	day := models.DayAvailability{Date: date, Total: len(members)}
	var morning, evening int

	for _, av := range availability {
		if !isKnown(known, av) {
			continue
		}
		if mode == models.ModeTimeSlots {
			if av.HasSlot(date, models.SlotMorning) {
				morning++
			}
			if av.HasSlot(date, models.SlotEvening) {
				evening++
			}
			continue
		}
		for _, d := range av.SelectedDates {
			if d == date {
				day.Available++
				break
			}
		}
	}

	if mode == models.ModeTimeSlots {
		day.Available = max(morning, evening)
		day.MorningCount, day.EveningCount = &morning, &evening
	}
	return day
}

// Calendar returns a cell for every date any member touched, in date order.
func Calendar(mode models.AvailabilityMode, members []*models.Member, availability []*models.Availability) []models.DayAvailability {
	dates := make(map[string]struct{})
	for _, av := range availability {
		if av == nil {
			continue
		}
		if mode == models.ModeTimeSlots {
			for date := range av.TimeSlots {
				dates[date] = struct{}{}
			}
			continue
		}
		for _, date := range av.SelectedDates {
			dates[date] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(dates))
	for date := range dates {
		sorted = append(sorted, date)
	}
	sort.Strings(sorted)

	days := make([]models.DayAvailability, 0, len(sorted))
	for _, date := range sorted {
		day := DayFor(mode, members, availability, date)
		if day.Available == 0 {
			continue
		}
		days = append(days, day)
	}
	return days
}
