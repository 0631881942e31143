package schedule

import (
	"time"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
)

// AccumulatedDedication sums the dedication percentages of all Active
// assignments in list whose date range overlaps [start, end], skipping the
// assignment identified by excludeID (the one being created or updated;
// empty means exclude nothing). Returns 0 for an empty list.
func AccumulatedDedication(list []domain.Assignment, start, end time.Time, excludeID string) int {
	total := 0
	for _, a := range list {
		if a.Status != domain.StatusActive {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if Overlaps(a.StartDate, a.EndDate, start, end) {
			total += a.Dedication
		}
	}
	return total
}
