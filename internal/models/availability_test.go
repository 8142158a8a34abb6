package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_HasSlot(t *testing.T) {
	a := &Availability{
		TimeSlots: map[string][]TimeSlot{"2025-07-01": {SlotMorning}},
	}
	assert.True(t, a.HasSlot("2025-07-01", SlotMorning))
	assert.False(t, a.HasSlot("2025-07-01", SlotEvening))
	assert.False(t, a.HasSlot("2025-07-02", SlotMorning))
}

func TestAvailability_CloneIsDeep(t *testing.T) {
	a := &Availability{
		ID:            "a1",
		SelectedDates: []string{"2025-07-01"},
		TimeSlots:     map[string][]TimeSlot{"2025-07-01": {SlotMorning}},
	}
	c := a.Clone()
	c.SelectedDates[0] = "2030-01-01"
	c.TimeSlots["2025-07-01"][0] = SlotEvening

	assert.Equal(t, "2025-07-01", a.SelectedDates[0])
	assert.Equal(t, SlotMorning, a.TimeSlots["2025-07-01"][0])
}

func TestAvailability_CloneNilFields(t *testing.T) {
	c := (&Availability{ID: "a1"}).Clone()
	assert.NotNil(t, c.SelectedDates)
	assert.NotNil(t, c.TimeSlots)

	var nilRecord *Availability
	assert.Nil(t, nilRecord.Clone())
}

func TestEnvelope_RoundTripPreservesDatesAndSlots(t *testing.T) {
	record := &Availability{
		ID:            "a1",
		GroupID:       "g1",
		MemberID:      "m1",
		SelectedDates: []string{"2025-07-02", "2025-07-01"},
		TimeSlots: map[string][]TimeSlot{
			"2025-07-01": {SlotMorning, SlotEvening},
			"2025-07-02": {SlotEvening},
		},
		UpdatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(NewAvailabilityUpdated(record))
	require.NoError(t, err)

	var msg InboundMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MessageAvailabilityUpdated, msg.Type)

	var decoded Availability
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.ElementsMatch(t, record.SelectedDates, decoded.SelectedDates)
	require.Len(t, decoded.TimeSlots, len(record.TimeSlots))
	for date, slots := range record.TimeSlots {
		assert.ElementsMatch(t, slots, decoded.TimeSlots[date])
	}
	assert.True(t, record.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestInboundMessage_JoinGroup(t *testing.T) {
	var msg InboundMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"join_group","groupId":"g1"}`), &msg))
	assert.Equal(t, MessageJoinGroup, msg.Type)
	assert.Equal(t, "g1", msg.GroupID)
}

func TestModeAndSlotValid(t *testing.T) {
	assert.True(t, ModeFullDay.Valid())
	assert.True(t, ModeTimeSlots.Valid())
	assert.False(t, AvailabilityMode("weekly").Valid())
	assert.True(t, SlotMorning.Valid())
	assert.False(t, TimeSlot("noon").Valid())
}

func TestStatus_Color(t *testing.T) {
	assert.Equal(t, "green-500", StatusPerfect.Color())
	assert.Equal(t, "green-400", StatusExcellent.Color())
	assert.Equal(t, "orange-500", StatusGood.Color())
	assert.Equal(t, "orange-300", StatusFair.Color())
}
