package services

import (
	"meetsync/internal/models"
	"meetsync/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestDates_ComputesAndCaches(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeFullDay)
	ann := f.member(t, g.ID, "ann")
	bob := f.member(t, g.ID, "bob")
	f.member(t, g.ID, "cat")
	f.member(t, g.ID, "dan")
	avail := f.availability()

	for _, m := range []*models.Member{ann, bob} {
		_, err := avail.Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID, SelectedDates: []string{"2025-03-05"}})
		require.NoError(t, err)
	}

	entries, err := f.insights().BestDates(t.Context(), g.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Available)
	assert.Equal(t, 4, entries[0].Total)
	assert.Equal(t, 50.0, entries[0].Percentage)
	assert.Equal(t, models.StatusFair, entries[0].Status)

	_, cached := f.cache.Get(BestDatesCacheKey(g.ID))
	assert.True(t, cached)
}

func TestBestDates_InvalidatedByUpsert(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeFullDay)
	ann := f.member(t, g.ID, "ann")
	insights := f.insights()

	entries, err := insights.BestDates(t.Context(), g.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = f.availability().Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: ann.ID, SelectedDates: []string{"2025-03-05"}})
	require.NoError(t, err)

	entries, err = insights.BestDates(t.Context(), g.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusPerfect, entries[0].Status)
}

func TestBestDates_CorruptCacheEntryRecomputed(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeFullDay)
	f.cache.Set(BestDatesCacheKey(g.ID), []byte("not json"))

	entries, err := f.insights().BestDates(t.Context(), g.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, f.cache.Deleted, BestDatesCacheKey(g.ID))
}

func TestInsights_UnknownGroup(t *testing.T) {
	f := newFixture()
	insights := f.insights()

	_, err := insights.BestDates(t.Context(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = insights.Calendar(t.Context(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = insights.Responses(t.Context(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCalendarAndResponses(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeTimeSlots)
	ann := f.member(t, g.ID, "ann")
	f.member(t, g.ID, "bob")

	_, err := f.availability().Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{
		MemberID:  ann.ID,
		TimeSlots: map[string][]models.TimeSlot{"2025-03-05": {models.SlotMorning, models.SlotEvening}},
	})
	require.NoError(t, err)

	days, err := f.insights().Calendar(t.Context(), g.ID)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-05", days[0].Date)
	assert.Equal(t, 1, days[0].Available)
	assert.Equal(t, 2, days[0].Total)

	summary, err := f.insights().Responses(t.Context(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
}
