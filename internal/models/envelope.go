package models

import json "github.com/goccy/go-json"

type MessageType string

const (
	MessageJoinGroup           MessageType = "join_group"
	MessageGroupJoined         MessageType = "group_joined"
	MessageAvailabilityUpdated MessageType = "availability_updated"
)

// Envelope is the {type, data} frame written to real-time listeners.
type Envelope struct {
	Type MessageType `json:"type"`
	Data any         `json:"data,omitempty"`
}

func NewAvailabilityUpdated(record *Availability) Envelope {
	return Envelope{Type: MessageAvailabilityUpdated, Data: record}
}

func NewGroupJoined(groupID string) Envelope {
	return Envelope{Type: MessageGroupJoined, Data: map[string]string{"groupId": groupID}}
}

// InboundMessage decodes both client control messages ({type, groupId})
// and server frames ({type, data}).
type InboundMessage struct {
	Type    MessageType     `json:"type"`
	GroupID string          `json:"groupId,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
