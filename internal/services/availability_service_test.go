package services

import (
	"errors"
	"meetsync/internal/models"
	"meetsync/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_CreatesAndPublishes(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeFullDay)
	m := f.member(t, g.ID, "ann")

	record, err := f.availability().Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{
		MemberID:      m.ID,
		SelectedDates: []string{"2025-03-05", "2025-03-06"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-05", "2025-03-06"}, record.SelectedDates)
	assert.NotNil(t, record.TimeSlots)

	require.Equal(t, 1, f.publisher.CallCount())
	call := f.publisher.Calls[0]
	assert.Equal(t, g.ID, call.GroupID)
	assert.Equal(t, models.MessageAvailabilityUpdated, call.Envelope.Type)
	assert.Equal(t, record, call.Envelope.Data)
	assert.Equal(t, 1, f.metrics.Upserts)
	assert.Contains(t, f.cache.Deleted, BestDatesCacheKey(g.ID))
}

func TestUpsert_OverwritesSameRecord(t *testing.T) {
	f := newFixture()
	svc := f.availability()
	g := f.group(t, models.ModeFullDay)
	m := f.member(t, g.ID, "ann")

	first, err := svc.Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID, SelectedDates: []string{"2025-03-05"}})
	require.NoError(t, err)
	second, err := svc.Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID, SelectedDates: []string{"2025-03-07"}})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	list, err := svc.List(t.Context(), g.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"2025-03-07"}, list[0].SelectedDates)
	assert.Equal(t, 2, f.publisher.CallCount())
}

func TestUpsert_ClearingDatesStillPublishes(t *testing.T) {
	f := newFixture()
	svc := f.availability()
	g := f.group(t, models.ModeFullDay)
	m := f.member(t, g.ID, "ann")

	_, err := svc.Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID, SelectedDates: []string{"2025-03-05"}})
	require.NoError(t, err)
	record, err := svc.Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID})
	require.NoError(t, err)

	assert.Empty(t, record.SelectedDates)
	assert.Equal(t, 2, f.publisher.CallCount())
}

func TestUpsert_ValidationErrors(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeTimeSlots)
	other := f.group(t, models.ModeTimeSlots)
	m := f.member(t, g.ID, "ann")
	stranger := f.member(t, other.ID, "bob")

	cases := map[string]*models.UpsertAvailabilityInput{
		"missing member":    {},
		"bad date":          {MemberID: m.ID, SelectedDates: []string{"2025-3-5"}},
		"impossible date":   {MemberID: m.ID, SelectedDates: []string{"2025-02-30"}},
		"bad slot date":     {MemberID: m.ID, TimeSlots: map[string][]models.TimeSlot{"tomorrow": {models.SlotMorning}}},
		"bad slot":          {MemberID: m.ID, TimeSlots: map[string][]models.TimeSlot{"2025-03-05": {"noon"}}},
		"member of another": {MemberID: stranger.ID, SelectedDates: []string{"2025-03-05"}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.availability().Upsert(t.Context(), g.ID, input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Equal(t, 0, f.publisher.CallCount())
}

func TestUpsert_UnknownMember(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeFullDay)

	_, err := f.availability().Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: "ghost"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, 0, f.publisher.CallCount())
}

func TestUpsert_WriteFailureDoesNotPublish(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeFullDay)
	m := f.member(t, g.ID, "ann")
	writeErr := errors.New("disk full")

	svc := NewAvailabilityService(&failingStore{Store: f.store, err: writeErr}, f.publisher, f.cache, f.metrics, f.logger)
	_, err := svc.Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID, SelectedDates: []string{"2025-03-05"}})

	assert.ErrorIs(t, err, writeErr)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, f.publisher.CallCount())
	assert.Equal(t, 0, f.metrics.Upserts)
}

func TestUpsert_PublishFailureIsLoggedOnly(t *testing.T) {
	f := newFixture()
	f.publisher.Err = errors.New("redis down")
	g := f.group(t, models.ModeFullDay)
	m := f.member(t, g.ID, "ann")

	record, err := f.availability().Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID, SelectedDates: []string{"2025-03-05"}})
	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestUpsert_SlotDatesNeedNotBeSelected(t *testing.T) {
	f := newFixture()
	g := f.group(t, models.ModeTimeSlots)
	m := f.member(t, g.ID, "ann")

	record, err := f.availability().Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{
		MemberID:  m.ID,
		TimeSlots: map[string][]models.TimeSlot{"2025-03-05": {models.SlotEvening}},
	})
	require.NoError(t, err)
	assert.True(t, record.HasSlot("2025-03-05", models.SlotEvening))
}

func TestGetForMember(t *testing.T) {
	f := newFixture()
	svc := f.availability()
	g := f.group(t, models.ModeFullDay)
	m := f.member(t, g.ID, "ann")

	_, found, err := svc.GetForMember(t.Context(), g.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.Upsert(t.Context(), g.ID, &models.UpsertAvailabilityInput{MemberID: m.ID, SelectedDates: []string{"2025-03-05"}})
	require.NoError(t, err)

	record, found, err := svc.GetForMember(t.Context(), g.ID, m.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"2025-03-05"}, record.SelectedDates)
}

func TestList_UnknownGroup(t *testing.T) {
	f := newFixture()
	_, err := f.availability().List(t.Context(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
