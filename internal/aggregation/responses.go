package aggregation

import "meetsync/internal/models"

// CompleteThreshold is the number of selected dates at which a member's
// answer counts as complete rather than partial.
const CompleteThreshold = 5

func Responses(members []*models.Member, availability []*models.Availability) models.ResponseSummary {
	byMember := make(map[string]*models.Availability, len(availability))
	for _, av := range availability {
		if av != nil {
			byMember[av.MemberID] = av
		}
	}

	summary := models.ResponseSummary{
		Members: make([]models.MemberResponse, 0, len(members)),
		Total:   len(members),
	}
	for _, m := range members {
		resp := models.MemberResponse{MemberID: m.ID, Name: m.Name, Status: models.ResponsePending}
		if av, ok := byMember[m.ID]; ok {
			resp.Count = len(av.SelectedDates)
		}
		switch {
		case resp.Count == 0:
			resp.Status = models.ResponsePending
		case resp.Count < CompleteThreshold:
			resp.Status = models.ResponsePartial
		default:
			resp.Status = models.ResponseComplete
		}
		if resp.Count > 0 {
			summary.Responded++
		}
		summary.Members = append(summary.Members, resp)
	}
	summary.ResponseRate = Percentage(summary.Responded, summary.Total)
	return summary
}
