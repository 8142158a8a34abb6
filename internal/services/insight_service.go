package services

import (
	"context"
	"meetsync/internal/aggregation"
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/storage"

	json "github.com/goccy/go-json"
)

func BestDatesCacheKey(groupID string) string {
	return "best:" + groupID
}

type InsightServiceInterface interface {
	BestDates(ctx context.Context, groupID string) ([]models.BestDateEntry, error)
	Calendar(ctx context.Context, groupID string) ([]models.DayAvailability, error)
	Responses(ctx context.Context, groupID string) (*models.ResponseSummary, error)
}

type InsightService struct {
	store  storage.Store
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewInsightService(store storage.Store, cache providers.CacheProviderInterface, logger providers.Logger) InsightServiceInterface {
	return &InsightService{store: store, cache: cache, logger: logger}
}

type groupState struct {
	group        *models.Group
	members      []*models.Member
	availability []*models.Availability
}

func (s *InsightService) load(ctx context.Context, groupID string) (*groupState, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	availability, err := s.store.ListAvailability(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &groupState{group: group, members: members, availability: availability}, nil
}

// BestDates serves the ranked list from cache when possible. Writes to the
// group drop the cached entry.
func (s *InsightService) BestDates(ctx context.Context, groupID string) ([]models.BestDateEntry, error) {
	key := BestDatesCacheKey(groupID)
	if cached, ok := s.cache.Get(key); ok {
		var entries []models.BestDateEntry
		if err := json.Unmarshal(cached, &entries); err == nil {
			return entries, nil
		}
		s.cache.Del(key)
	}

	state, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	entries := aggregation.BestDates(state.group.AvailabilityMode, state.members, state.availability)

	if data, err := json.Marshal(entries); err == nil {
		s.cache.Set(key, data)
	} else {
		s.logger.Warnf(providers.TypeGet, "Unable to cache best dates for %s: %s", groupID, err)
	}
	return entries, nil
}

func (s *InsightService) Calendar(ctx context.Context, groupID string) ([]models.DayAvailability, error) {
	state, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return aggregation.Calendar(state.group.AvailabilityMode, state.members, state.availability), nil
}

func (s *InsightService) Responses(ctx context.Context, groupID string) (*models.ResponseSummary, error) {
	state, err := s.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	summary := aggregation.Responses(state.members, state.availability)
	return &summary, nil
}
