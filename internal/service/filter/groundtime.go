package filter

import (
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
)

// TotalGroundTimeMinutes sums the layovers between adjacent segments in whole
// minutes. Each gap is truncated on its own before summing. Segments out of
// chronological order produce negative gaps, which are added unchanged.
func TotalGroundTimeMinutes(segments []domain.Segment) int {
	total := 0
	for i := 0; i+1 < len(segments); i++ {
		gap := segments[i+1].DepartureTime.Sub(segments[i].ArrivalTime)
		total += int(gap / time.Minute)
	}
	return total
}
