package storage

import (
	"context"
	"errors"
	"meetsync/internal/models"
)

var ErrNotFound = errors.New("not found")

// Store persists groups, members and the one availability record each
// member keeps per group.
type Store interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	CreateMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, id string) (*models.Member, error)
	// ListMembers returns the group's members ordered by join time.
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)

	// UpsertAvailability looks the record up by (groupID, memberID) and either
	// overwrites its dates and slots or inserts a new record.
	UpsertAvailability(ctx context.Context, groupID, memberID string, dates []string, slots map[string][]models.TimeSlot) (*models.Availability, error)
	ListAvailability(ctx context.Context, groupID string) ([]*models.Availability, error)
	GetAvailability(ctx context.Context, groupID, memberID string) (*models.Availability, error)

	Close() error
}

// Snapshotter is implemented by stores whose state lives in memory and has
// to be written to disk by the persistence scheduler.
type Snapshotter interface {
	Snapshot() *models.Snapshot
	Restore(snapshot *models.Snapshot)
}
