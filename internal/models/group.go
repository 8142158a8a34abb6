package models

import "time"

type AvailabilityMode string

const (
	ModeFullDay   AvailabilityMode = "full_day"
	ModeTimeSlots AvailabilityMode = "time_slots"
)

func (m AvailabilityMode) Valid() bool {
	return m == ModeFullDay || m == ModeTimeSlots
}

// Group is fixed to its availability mode once created.
type Group struct {
	ID               string           `json:"id" gorm:"primaryKey;size:36"`
	Name             string           `json:"name" gorm:"type:text;not null"`
	Description      *string          `json:"description" gorm:"type:text"`
	CreatedBy        string           `json:"createdBy" gorm:"size:64;not null"`
	AvailabilityMode AvailabilityMode `json:"availabilityMode" gorm:"size:16;not null;default:full_day"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func (Group) TableName() string { return "groups" }
