package aggregation

import (
	"meetsync/internal/models"
	"sort"
)

const (
	FullDayLimit   = 8
	TimeSlotsLimit = 12
)

type slotCounts struct {
	morning map[string]struct{}
	evening map[string]struct{}
}

// BestDates ranks the dates of a group by how many members can make them.
// Only records of listed members are counted, so an entry never reports more
// available members than the group has.
func BestDates(mode models.AvailabilityMode, members []*models.Member, availability []*models.Availability) []models.BestDateEntry {
	total := len(members)
	known := memberSet(members)

	var entries []models.BestDateEntry
	limit := FullDayLimit
	if mode == models.ModeTimeSlots {
		entries = timeSlotEntries(total, known, availability)
		limit = TimeSlotsLimit
	} else {
		entries = fullDayEntries(total, known, availability)
	}

	sortEntries(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func fullDayEntries(total int, known map[string]struct{}, availability []*models.Availability) []models.BestDateEntry {
	byDate := make(map[string]map[string]struct{})
	for _, av := range availability {
		if !isKnown(known, av) {
			continue
		}
		for _, date := range av.SelectedDates {
			set, ok := byDate[date]
			if !ok {
				set = make(map[string]struct{})
				byDate[date] = set
			}
			set[av.MemberID] = struct{}{}
		}
	}

	entries := make([]models.BestDateEntry, 0, len(byDate))
	for date, set := range byDate {
		if len(set) == 0 {
			continue
		}
		entries = append(entries, newEntry(date, "", len(set), total))
	}
	return entries
}

func timeSlotEntries(total int, known map[string]struct{}, availability []*models.Availability) []models.BestDateEntry {
	byDate := make(map[string]*slotCounts)
	for _, av := range availability {
		if !isKnown(known, av) {
			continue
		}
		for date, slots := range av.TimeSlots {
			counts, ok := byDate[date]
			if !ok {
				counts = &slotCounts{
					morning: make(map[string]struct{}),
					evening: make(map[string]struct{}),
				}
				byDate[date] = counts
			}
			for _, slot := range slots {
				switch slot {
				case models.SlotMorning:
					counts.morning[av.MemberID] = struct{}{}
				case models.SlotEvening:
					counts.evening[av.MemberID] = struct{}{}
				}
			}
		}
	}

	entries := make([]models.BestDateEntry, 0, 2*len(byDate))
	for date, counts := range byDate {
		morning, evening := len(counts.morning), len(counts.evening)
		if morning > 0 {
			e := newEntry(date, models.SlotMorning, morning, total)
			e.MorningCount, e.EveningCount = &morning, &evening
			entries = append(entries, e)
		}
		if evening > 0 {
			e := newEntry(date, models.SlotEvening, evening, total)
			e.MorningCount, e.EveningCount = &morning, &evening
			entries = append(entries, e)
		}
	}
	return entries
}

func newEntry(date string, slot models.TimeSlot, available, total int) models.BestDateEntry {
	pct := Percentage(available, total)
	status := StatusFor(pct)
	return models.BestDateEntry{
		Date:       date,
		TimeSlot:   slot,
		Available:  available,
		Total:      total,
		Percentage: pct,
		Status:     status,
		Color:      status.Color(),
	}
}

// Percentage is available/total*100, or 0 for an empty group.
func Percentage(available, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(available) / float64(total) * 100
}

// sortEntries orders by percentage, then count, both descending. Date and
// slot break the remaining ties so the output is reproducible.
func sortEntries(entries []models.BestDateEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.Available != b.Available {
			return a.Available > b.Available
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return slotRank(a.TimeSlot) < slotRank(b.TimeSlot)
	})
}

func slotRank(s models.TimeSlot) int {
	switch s {
	case models.SlotMorning:
		return 1
	case models.SlotEvening:
		return 2
	default:
		return 0
	}
}

func memberSet(members []*models.Member) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m.ID] = struct{}{}
	}
	return set
}

func isKnown(known map[string]struct{}, av *models.Availability) bool {
	if av == nil {
		return false
	}
	_, ok := known[av.MemberID]
	return ok
}
