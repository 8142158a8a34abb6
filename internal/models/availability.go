package models

import (
	"slices"
	"time"
)

type TimeSlot string

const (
	SlotMorning TimeSlot = "morning"
	SlotEvening TimeSlot = "evening"
)

func (s TimeSlot) Valid() bool {
	return s == SlotMorning || s == SlotEvening
}

// Availability is the single record a member keeps per group. Every write
// replaces SelectedDates and TimeSlots wholesale.
type Availability struct {
	ID            string                `json:"id" gorm:"primaryKey;size:36"`
	GroupID       string                `json:"groupId" gorm:"size:36;not null;uniqueIndex:uk_availability_group_member"`
	MemberID      string                `json:"memberId" gorm:"size:36;not null;uniqueIndex:uk_availability_group_member"`
	SelectedDates []string              `json:"selectedDates" gorm:"serializer:json;not null"`
	TimeSlots     map[string][]TimeSlot `json:"timeSlots" gorm:"serializer:json;not null"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func (Availability) TableName() string { return "availability" }

// HasSlot reports whether the record marks slot on date.
func (a *Availability) HasSlot(date string, slot TimeSlot) bool {
	return slices.Contains(a.TimeSlots[date], slot)
}

// Clone returns a deep copy so callers never share slices with a store.
func (a *Availability) Clone() *Availability {
	if a == nil {
		return nil
	}
	out := *a
	out.SelectedDates = slices.Clone(a.SelectedDates)
	if out.SelectedDates == nil {
		out.SelectedDates = []string{}
	}
	out.TimeSlots = make(map[string][]TimeSlot, len(a.TimeSlots))
	for date, slots := range a.TimeSlots {
		out.TimeSlots[date] = slices.Clone(slots)
	}
	return &out
}

// EmptyAvailability is returned for members that have not answered yet.
type EmptyAvailability struct {
	GroupID       string                `json:"groupId"`
	MemberID      string                `json:"memberId"`
	SelectedDates []string              `json:"selectedDates"`
	TimeSlots     map[string][]TimeSlot `json:"timeSlots"`
}

func NewEmptyAvailability(groupID, memberID string) *EmptyAvailability {
	return &EmptyAvailability{
		GroupID:       groupID,
		MemberID:      memberID,
		SelectedDates: []string{},
		TimeSlots:     map[string][]TimeSlot{},
	}
}
