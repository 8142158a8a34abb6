package services

import (
	"context"
	"meetsync/internal/models"
	"meetsync/internal/storage"
	"meetsync/internal/testutil"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *storage.MemoryStore
	publisher *testutil.MockPublisher
	cache     *testutil.MockCache
	metrics   *testutil.MockMetrics
	logger    *testutil.MockLogger
}

func newFixture() *fixture {
	return &fixture{
		store:     storage.NewMemoryStore(),
		publisher: &testutil.MockPublisher{},
		cache:     testutil.NewMockCache(),
		metrics:   &testutil.MockMetrics{},
		logger:    &testutil.MockLogger{},
	}
}

func (f *fixture) availability() AvailabilityServiceInterface {
	return NewAvailabilityService(f.store, f.publisher, f.cache, f.metrics, f.logger)
}

func (f *fixture) groups() GroupServiceInterface {
	return NewGroupService(f.store, f.logger)
}

func (f *fixture) insights() InsightServiceInterface {
	return NewInsightService(f.store, f.cache, f.logger)
}

func (f *fixture) group(t *testing.T, mode models.AvailabilityMode) *models.Group {
	t.Helper()
	g := &models.Group{Name: "Offsite", CreatedBy: "u1", AvailabilityMode: mode}
	require.NoError(t, f.store.CreateGroup(context.Background(), g))
	return g
}

func (f *fixture) member(t *testing.T, groupID, name string) *models.Member {
	t.Helper()
	m := &models.Member{GroupID: groupID, Name: name, Email: name + "@example.com"}
	require.NoError(t, f.store.CreateMember(context.Background(), m))
	return m
}

// failingStore fails every availability write.
type failingStore struct {
	storage.Store
	err error
}

func (s *failingStore) UpsertAvailability(_ context.Context, _, _ string, _ []string, _ map[string][]models.TimeSlot) (*models.Availability, error) {
	return nil, s.err
}
