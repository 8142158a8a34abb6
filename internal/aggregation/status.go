package aggregation

import "meetsync/internal/models"

// StatusFor bands a percentage into the label shown on a best-date badge.
func StatusFor(percentage float64) models.Status {
	switch {
	case percentage == 100:
		return models.StatusPerfect
	case percentage >= 80:
		return models.StatusExcellent
	case percentage >= 60:
		return models.StatusGood
	default:
		return models.StatusFair
	}
}
