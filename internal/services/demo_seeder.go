package services

import (
	"context"
	"errors"
	"fmt"
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"meetsync/internal/storage"
	"time"

	"github.com/google/uuid"
)

const DemoGroupID = "550e8400-e29b-41d4-a716-446655440000"

type demoMember struct {
	name    string
	email   string
	creator bool
	days    []int
	slots   []models.TimeSlot
}

var demoMembers = []demoMember{
	{name: "John Doe", email: "john@example.com", creator: true, days: []int{5, 16}, slots: []models.TimeSlot{models.SlotMorning}},
	{name: "Sarah Miller", email: "sarah@example.com", days: []int{2, 9, 10, 14, 21, 28}, slots: []models.TimeSlot{models.SlotMorning, models.SlotEvening}},
	{name: "Mike Johnson", email: "mike@example.com", days: []int{3, 11}, slots: []models.TimeSlot{models.SlotEvening}},
	{name: "Anna Lee", email: "anna@example.com"},
}

// DemoSeeder creates a sample time-slot group so a fresh instance has
// something to look at.
type DemoSeeder struct {
	store  storage.Store
	logger providers.Logger
	now    func() time.Time
}

func NewDemoSeeder(store storage.Store, logger providers.Logger) *DemoSeeder {
	return &DemoSeeder{store: store, logger: logger, now: time.Now}
}

// Seed is a no-op when the demo group already exists.
func (d *DemoSeeder) Seed(ctx context.Context) error {
	_, err := d.store.GetGroup(ctx, DemoGroupID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	description := "Find the best dates for our upcoming team building event"
	group := &models.Group{
		ID:               DemoGroupID,
		Name:             "Team Building Weekend",
		Description:      &description,
		AvailabilityMode: models.ModeTimeSlots,
	}

	now := d.now()
	members := make([]*models.Member, 0, len(demoMembers))
	for _, dm := range demoMembers {
		members = append(members, &models.Member{
			GroupID:   DemoGroupID,
			Name:      dm.name,
			Email:     dm.email,
			IsCreator: dm.creator,
		})
	}

	members[0].ID = uuid.NewString()
	group.CreatedBy = members[0].ID
	if err := d.store.CreateGroup(ctx, group); err != nil {
		return fmt.Errorf("seed group: %w", err)
	}

	for i, m := range members {
		if err := d.store.CreateMember(ctx, m); err != nil {
			return fmt.Errorf("seed member %s: %w", m.Name, err)
		}
		dm := demoMembers[i]
		if len(dm.days) == 0 {
			continue
		}
		dates := make([]string, 0, len(dm.days))
		slots := make(map[string][]models.TimeSlot, len(dm.days))
		for _, day := range dm.days {
			date := fmt.Sprintf("%04d-%02d-%02d", now.Year(), int(now.Month()), day)
			dates = append(dates, date)
			slots[date] = append([]models.TimeSlot(nil), dm.slots...)
		}
		if _, err := d.store.UpsertAvailability(ctx, DemoGroupID, m.ID, dates, slots); err != nil {
			return fmt.Errorf("seed availability %s: %w", m.Name, err)
		}
	}

	d.logger.Infof(providers.TypeApp, "Demo group %s seeded with %d members", DemoGroupID, len(members))
	return nil
}
