package models

type Status string

const (
	StatusPerfect   Status = "Perfect"
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusFair      Status = "Fair"
)

// Color is the badge color shown next to the status label.
func (s Status) Color() string {
	switch s {
	case StatusPerfect:
		return "green-500"
	case StatusExcellent:
		return "green-400"
	case StatusGood:
		return "orange-500"
	default:
		return "orange-300"
	}
}

// BestDateEntry is derived from a group's availability and never stored.
// TimeSlot and the slot counts are unset in full-day mode.
type BestDateEntry struct {
	Date         string   `json:"date"`
	TimeSlot     TimeSlot `json:"timeSlot,omitempty"`
	Available    int      `json:"available"`
	Total        int      `json:"total"`
	Percentage   float64  `json:"percentage"`
	MorningCount *int     `json:"morningCount,omitempty"`
	EveningCount *int     `json:"eveningCount,omitempty"`
	Status       Status   `json:"status"`
	Color        string   `json:"color"`
}

type DayAvailability struct {
	Date         string `json:"date"`
	Available    int    `json:"available"`
	Total        int    `json:"total"`
	MorningCount *int   `json:"morningCount,omitempty"`
	EveningCount *int   `json:"eveningCount,omitempty"`
}

type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "pending"
	ResponsePartial  ResponseStatus = "partial"
	ResponseComplete ResponseStatus = "complete"
)

type MemberResponse struct {
	MemberID string         `json:"memberId"`
	Name     string         `json:"name"`
	Status   ResponseStatus `json:"status"`
	Count    int            `json:"count"`
}

type ResponseSummary struct {
	Members      []MemberResponse `json:"members"`
	Responded    int              `json:"responded"`
	Total        int              `json:"total"`
	ResponseRate float64          `json:"responseRate"`
}
