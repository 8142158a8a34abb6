package services

import (
	"context"
	"fmt"
	"meetsync/internal/broadcast"
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/storage"
	"time"
)

const dateLayout = "2006-01-02"

type AvailabilityServiceInterface interface {
	Upsert(ctx context.Context, groupID string, input *models.UpsertAvailabilityInput) (*models.Availability, error)
	List(ctx context.Context, groupID string) ([]*models.Availability, error)
	// GetForMember reports found=false when the member has not responded yet.
	GetForMember(ctx context.Context, groupID, memberID string) (*models.Availability, bool, error)
}

type AvailabilityService struct {
	store     storage.Store
	publisher broadcast.Publisher
	cache     providers.CacheProviderInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
}

func NewAvailabilityService(
	store storage.Store,
	publisher broadcast.Publisher,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		store:     store,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// Upsert replaces the member's availability and then notifies the group.
// Nothing is published when the write fails, and a failed publish does not
// fail the write.
func (s *AvailabilityService) Upsert(ctx context.Context, groupID string, input *models.UpsertAvailabilityInput) (*models.Availability, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := validateDates(input.SelectedDates, input.TimeSlots); err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if member.GroupID != groupID {
		return nil, validationErrorf("member %s does not belong to group %s", input.MemberID, groupID)
	}

	record, err := s.store.UpsertAvailability(ctx, groupID, input.MemberID, input.SelectedDates, input.TimeSlots)
	if err != nil {
		return nil, fmt.Errorf("save availability: %w", err)
	}
	s.metrics.IncUpserts()
	s.cache.Del(BestDatesCacheKey(groupID))

	if err := s.publisher.Publish(ctx, groupID, models.NewAvailabilityUpdated(record)); err != nil {
		s.logger.Errorf(providers.TypeWs, "Failed to notify group %s: %s", groupID, err)
	}
	return record, nil
}

func (s *AvailabilityService) List(ctx context.Context, groupID string) ([]*models.Availability, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListAvailability(ctx, groupID)
}

func (s *AvailabilityService) GetForMember(ctx context.Context, groupID, memberID string) (*models.Availability, bool, error) {
	record, err := s.store.GetAvailability(ctx, groupID, memberID)
	if err == nil {
		return record, true, nil
	}
	if isNotFound(err) {
		return nil, false, nil
	}
	return nil, false, err
}

func validateDates(dates []string, slots map[string][]models.TimeSlot) error {
	for _, d := range dates {
		if !validDate(d) {
			return validationErrorf("invalid date %q, expected YYYY-MM-DD", d)
		}
	}
	for d, tags := range slots {
		if !validDate(d) {
			return validationErrorf("invalid time slot date %q, expected YYYY-MM-DD", d)
		}
		for _, tag := range tags {
			if !tag.Valid() {
				return validationErrorf("invalid time slot %q on %s", tag, d)
			}
		}
	}
	return nil
}

func validDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
