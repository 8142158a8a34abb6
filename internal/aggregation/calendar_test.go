package aggregation

import (
	"meetsync/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayFor_FullDay(t *testing.T) {
	ms := members("a", "b", "c")
	av := []*models.Availability{
		fullDay("a", "2025-06-10"),
		fullDay("b", "2025-06-11"),
	}

	day := DayFor(models.ModeFullDay, ms, av, "2025-06-10")
	assert.Equal(t, 1, day.Available)
	assert.Equal(t, 3, day.Total)
}

func TestDayFor_TimeSlotsTakesBetterSlot(t *testing.T) {
	ms := members("a", "b", "c")
	av := []*models.Availability{
		slots("a", map[string][]models.TimeSlot{"2025-07-01": {models.SlotMorning, models.SlotEvening}}),
		slots("b", map[string][]models.TimeSlot{"2025-07-01": {models.SlotEvening}}),
	}

	day := DayFor(models.ModeTimeSlots, ms, av, "2025-07-01")
	require.NotNil(t, day.MorningCount)
	require.NotNil(t, day.EveningCount)
	assert.Equal(t, 1, *day.MorningCount)
	assert.Equal(t, 2, *day.EveningCount)
	assert.Equal(t, 2, day.Available)
}

func TestCalendar_SortedAndNonEmpty(t *testing.T) {
	ms := members("a", "b")
	av := []*models.Availability{
		fullDay("a", "2025-06-12", "2025-06-10"),
		fullDay("b", "2025-06-10"),
		fullDay("stranger", "2025-06-30"),
	}

	days := Calendar(models.ModeFullDay, ms, av)

	require.Len(t, days, 2)
	assert.Equal(t, "2025-06-10", days[0].Date)
	assert.Equal(t, 2, days[0].Available)
	assert.Equal(t, "2025-06-12", days[1].Date)
}
