package storage

import (
	"context"
	"meetsync/internal/models"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*MemoryStore, *models.Group) {
	t.Helper()
	s := NewMemoryStore()
	g := &models.Group{Name: "Trip", CreatedBy: "u1", AvailabilityMode: models.ModeFullDay}
	require.NoError(t, s.CreateGroup(context.Background(), g))
	return s, g
}

func TestMemoryStore_CreateAndGetGroup(t *testing.T) {
	s, g := newTestStore(t)

	assert.NotEmpty(t, g.ID)
	assert.False(t, g.CreatedAt.IsZero())

	got, err := s.GetGroup(context.Background(), g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trip", got.Name)
	assert.Equal(t, models.ModeFullDay, got.AvailabilityMode)
}

func TestMemoryStore_GetGroupNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetGroup(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DuplicateGroupRejected(t *testing.T) {
	s, g := newTestStore(t)
	err := s.CreateGroup(context.Background(), &models.Group{ID: g.ID, Name: "Other"})
	assert.Error(t, err)
}

func TestMemoryStore_ListMembersOrderedByJoinTime(t *testing.T) {
	s, g := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateMember(ctx, &models.Member{ID: "late", GroupID: g.ID, Name: "Late", JoinedAt: base.Add(time.Hour)}))
	require.NoError(t, s.CreateMember(ctx, &models.Member{ID: "early", GroupID: g.ID, Name: "Early", JoinedAt: base}))
	require.NoError(t, s.CreateMember(ctx, &models.Member{ID: "other", GroupID: "another-group", Name: "Other"}))

	list, err := s.ListMembers(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "late", list[1].ID)
}

func TestMemoryStore_GetMemberNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetMember(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpsertCreatesThenOverwrites(t *testing.T) {
	s, g := newTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertAvailability(ctx, g.ID, "m1", []string{"2025-06-10", "2025-06-11"}, map[string][]models.TimeSlot{
		"2025-06-10": {models.SlotMorning},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := s.UpsertAvailability(ctx, g.ID, "m1", []string{"2025-06-12"}, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"2025-06-12"}, second.SelectedDates)
	assert.Empty(t, second.TimeSlots)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

	list, err := s.ListAvailability(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStore_UpsertIdempotent(t *testing.T) {
	s, g := newTestStore(t)
	ctx := context.Background()
	dates := []string{"2025-07-01"}
	slots := map[string][]models.TimeSlot{"2025-07-01": {models.SlotEvening}}

	first, err := s.UpsertAvailability(ctx, g.ID, "m1", dates, slots)
	require.NoError(t, err)
	second, err := s.UpsertAvailability(ctx, g.ID, "m1", dates, slots)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.SelectedDates, second.SelectedDates)
	assert.Equal(t, first.TimeSlots, second.TimeSlots)
}

func TestMemoryStore_UpsertDoesNotAliasCallerSlices(t *testing.T) {
	s, g := newTestStore(t)
	ctx := context.Background()
	dates := []string{"2025-07-01"}

	_, err := s.UpsertAvailability(ctx, g.ID, "m1", dates, nil)
	require.NoError(t, err)
	dates[0] = "1999-01-01"

	got, err := s.GetAvailability(ctx, g.ID, "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-01"}, got.SelectedDates)
}

func TestMemoryStore_GetAvailabilityNotFound(t *testing.T) {
	s, g := newTestStore(t)
	_, err := s.GetAvailability(context.Background(), g.ID, "m1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentUpsertsKeepOneRecord(t *testing.T) {
	s, g := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.UpsertAvailability(ctx, g.ID, "m1", []string{"2025-06-10"}, nil)
		}()
	}
	wg.Wait()

	list, err := s.ListAvailability(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStore_SnapshotRestore(t *testing.T) {
	s, g := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMember(ctx, &models.Member{ID: "m1", GroupID: g.ID, Name: "Ann", Email: "ann@example.com"}))
	require.NoError(t, s.CreateMember(ctx, &models.Member{ID: "m2", GroupID: g.ID, Name: "Bob", Email: "bob@example.com"}))
	_, err := s.UpsertAvailability(ctx, g.ID, "m2", []string{"2025-06-10"}, nil)
	require.NoError(t, err)
	_, err = s.UpsertAvailability(ctx, g.ID, "m1", []string{"2025-06-11"}, nil)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, models.SnapshotVersion, snap.Version)

	restored := NewMemoryStore()
	restored.Restore(snap)

	got, err := restored.GetGroup(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Name, got.Name)

	members, err := restored.ListMembers(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	list, err := restored.ListAvailability(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m2", list[0].MemberID)
	assert.Equal(t, "m1", list[1].MemberID)
}

func TestMemoryStore_RestoreNilClears(t *testing.T) {
	s, g := newTestStore(t)
	s.Restore(nil)

	_, err := s.GetGroup(context.Background(), g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ImplementsInterfaces(t *testing.T) {
	var _ Store = NewMemoryStore()
	var _ Snapshotter = NewMemoryStore()
	var _ Store = &GormStore{}
}
