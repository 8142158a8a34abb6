package storage

import (
	"context"
	"fmt"
	"meetsync/internal/models"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type availabilityKey struct {
	groupID  string
	memberID string
}

type MemoryStore struct {
	mu             sync.RWMutex
	groups         map[string]*models.Group
	members        map[string]*models.Member
	groupMembers   map[string][]string
	availability   map[availabilityKey]*models.Availability
	groupResponses map[string][]string
	now            func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		groups:         make(map[string]*models.Group),
		members:        make(map[string]*models.Member),
		groupMembers:   make(map[string][]string),
		availability:   make(map[availabilityKey]*models.Availability),
		groupResponses: make(map[string][]string),
		now:            time.Now,
	}
}

func (s *MemoryStore) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if _, ok := s.groups[group.ID]; ok {
		return fmt.Errorf("group %s already exists", group.ID)
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = s.now().UTC()
	}
	g := *group
	s.groups[g.ID] = &g
	return nil
}

func (s *MemoryStore) GetGroup(_ context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	out := *g
	return &out, nil
}

func (s *MemoryStore) CreateMember(_ context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if _, ok := s.members[member.ID]; ok {
		return fmt.Errorf("member %s already exists", member.ID)
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = s.now().UTC()
	}
	m := *member
	s.members[m.ID] = &m
	s.groupMembers[m.GroupID] = append(s.groupMembers[m.GroupID], m.ID)
	return nil
}

func (s *MemoryStore) GetMember(_ context.Context, id string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	out := *m
	return &out, nil
}

func (s *MemoryStore) ListMembers(_ context.Context, groupID string) ([]*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.groupMembers[groupID]
	out := make([]*models.Member, 0, len(ids))
	for _, id := range ids {
		m := *s.members[id]
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpsertAvailability(_ context.Context, groupID, memberID string, dates []string, slots map[string][]models.TimeSlot) (*models.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := availabilityKey{groupID: groupID, memberID: memberID}
	incoming := (&models.Availability{SelectedDates: dates, TimeSlots: slots}).Clone()

	if existing, ok := s.availability[key]; ok {
		existing.SelectedDates = incoming.SelectedDates
		existing.TimeSlots = incoming.TimeSlots
		existing.UpdatedAt = s.now().UTC()
		return existing.Clone(), nil
	}

	record := &models.Availability{
		ID:            uuid.NewString(),
		GroupID:       groupID,
		MemberID:      memberID,
		SelectedDates: incoming.SelectedDates,
		TimeSlots:     incoming.TimeSlots,
		UpdatedAt:     s.now().UTC(),
	}
	s.availability[key] = record
	s.groupResponses[groupID] = append(s.groupResponses[groupID], memberID)
	return record.Clone(), nil
}

func (s *MemoryStore) ListAvailability(_ context.Context, groupID string) ([]*models.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memberIDs := s.groupResponses[groupID]
	out := make([]*models.Availability, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		out = append(out, s.availability[availabilityKey{groupID: groupID, memberID: memberID}].Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetAvailability(_ context.Context, groupID, memberID string) (*models.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.availability[availabilityKey{groupID: groupID, memberID: memberID}]
	if !ok {
		return nil, fmt.Errorf("availability of member %s in group %s: %w", memberID, groupID, ErrNotFound)
	}
	return record.Clone(), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &models.Snapshot{
		Version:      models.SnapshotVersion,
		Groups:       make([]*models.Group, 0, len(s.groups)),
		Members:      make([]*models.Member, 0, len(s.members)),
		Availability: make([]*models.Availability, 0, len(s.availability)),
	}
	for _, g := range s.groups {
		out := *g
		snap.Groups = append(snap.Groups, &out)
	}
	// Members and records keep insertion order so a restore rebuilds the
	// same per-group ordering.
	for _, groupID := range sortedKeys(s.groupMembers) {
		for _, id := range s.groupMembers[groupID] {
			out := *s.members[id]
			snap.Members = append(snap.Members, &out)
		}
	}
	for _, groupID := range sortedKeys(s.groupResponses) {
		for _, memberID := range s.groupResponses[groupID] {
			snap.Availability = append(snap.Availability, s.availability[availabilityKey{groupID: groupID, memberID: memberID}].Clone())
		}
	}
	return snap
}

// Restore replaces the store content with the snapshot.
func (s *MemoryStore) Restore(snapshot *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = make(map[string]*models.Group)
	s.members = make(map[string]*models.Member)
	s.groupMembers = make(map[string][]string)
	s.availability = make(map[availabilityKey]*models.Availability)
	s.groupResponses = make(map[string][]string)
	if snapshot == nil {
		return
	}

	for _, g := range snapshot.Groups {
		out := *g
		s.groups[g.ID] = &out
	}
	for _, m := range snapshot.Members {
		out := *m
		s.members[m.ID] = &out
		s.groupMembers[m.GroupID] = append(s.groupMembers[m.GroupID], m.ID)
	}
	for _, av := range snapshot.Availability {
		key := availabilityKey{groupID: av.GroupID, memberID: av.MemberID}
		if _, dup := s.availability[key]; !dup {
			s.groupResponses[av.GroupID] = append(s.groupResponses[av.GroupID], av.MemberID)
		}
		s.availability[key] = av.Clone()
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
