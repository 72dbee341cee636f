package filter

import (
	"github.com/Domenick1991/flightfilter/internal/domain"
	"golang.org/x/sync/errgroup"
)

type predicate func(f domain.Flight) bool

// filter keeps the flights matching keep, in input order. Large inputs are
// split into chunks evaluated concurrently; every verdict lands in its own
// mask slot so the collected result keeps input order.
func (s *FilterService) filter(flights []domain.Flight, keep predicate) []domain.Flight {
	if s.parallelThreshold <= 0 || len(flights) < s.parallelThreshold {
		return filterSequential(flights, keep)
	}

	mask := make([]bool, len(flights))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for start := 0; start < len(flights); start += s.chunkSize {
		end := min(start+s.chunkSize, len(flights))
		g.Go(func() error {
			for i := start; i < end; i++ {
				mask[i] = keep(flights[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	result := make([]domain.Flight, 0)
	for i, ok := range mask {
		if ok {
			result = append(result, flights[i])
		}
	}
	return result
}

func filterSequential(flights []domain.Flight, keep predicate) []domain.Flight {
	result := make([]domain.Flight, 0)
	for _, f := range flights {
		if keep(f) {
			result = append(result, f)
		}
	}
	return result
}
