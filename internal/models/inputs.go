package models

type CreateGroupInput struct {
	Name             string           `json:"name" validate:"required|maxLen:200"`
	Description      *string          `json:"description"`
	CreatedBy        string           `json:"createdBy" validate:"required"`
	AvailabilityMode AvailabilityMode `json:"availabilityMode"`
	CreatorName      string           `json:"creatorName" validate:"maxLen:200"`
	CreatorEmail     string           `json:"creatorEmail" validate:"email"`
}

type CreateMemberInput struct {
	Name      string `json:"name" validate:"required|maxLen:200"`
	Email     string `json:"email" validate:"required|email"`
	IsCreator bool   `json:"isCreator"`
}

type UpsertAvailabilityInput struct {
	MemberID      string                `json:"memberId" validate:"required"`
	SelectedDates []string              `json:"selectedDates"`
	TimeSlots     map[string][]TimeSlot `json:"timeSlots"`
}

type InviteInput struct {
	Emails string `json:"emails" validate:"required"`
}

type InviteResult struct {
	Invited []*Member      `json:"invited"`
	Failed  []InviteFailed `json:"failed"`
}

type InviteFailed struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// CreatedGroup is returned by group creation; Creator is set when creator
// details were supplied.
type CreatedGroup struct {
	Group   *Group  `json:"group"`
	Creator *Member `json:"creator,omitempty"`
}
