package filter

import (
	"runtime"
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
	"go.uber.org/zap"
)

const (
	twoHours        = 2 * time.Hour
	twoHoursMinutes = 120
	noonHour        = 12

	defaultParallelThreshold = 4096
	defaultChunkSize         = 1024
)

// FilterService exposes one predicate filter per query shape. Every method
// returns a new, non-nil slice holding the matching flights in input order;
// the input is never modified.
type FilterService struct {
	log               *zap.Logger
	parallelThreshold int
	chunkSize         int
	workers           int
}

type Option func(*FilterService)

func WithLogger(log *zap.Logger) Option {
	return func(s *FilterService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithParallelism sets the input size from which chunks are evaluated
// concurrently. A threshold <= 0 disables the concurrent path.
func WithParallelism(threshold, chunkSize int) Option {
	return func(s *FilterService) {
		s.parallelThreshold = threshold
		if chunkSize > 0 {
			s.chunkSize = chunkSize
		}
	}
}

func NewFilterService(opts ...Option) *FilterService {
	s := &FilterService{
		log:               zap.NewNop(),
		parallelThreshold: defaultParallelThreshold,
		chunkSize:         defaultChunkSize,
		workers:           runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TwoHourDuration keeps single-segment flights whose leg lasts exactly two
// hours. The sign of the duration is ignored.
func (s *FilterService) TwoHourDuration(flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		if len(f.Segments) != 1 {
			return false
		}
		d := f.First().ArrivalTime.Sub(f.First().DepartureTime)
		return d == twoHours || d == -twoHours
	})
}

func (s *FilterService) MultiSegment(flights []domain.Flight) []domain.Flight {
	return s.filter(flights, domain.Flight.IsMultiSegment)
}

// GroundTimeAtLeast keeps multi-segment flights whose total layover is at
// least the given number of hours.
func (s *FilterService) GroundTimeAtLeast(hours int, flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return f.IsMultiSegment() && TotalGroundTimeMinutes(f.Segments) >= hours*60
	})
}

// PresentOrFuture drops flights with any segment departing at or before now.
func (s *FilterService) PresentOrFuture(now time.Time, flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		for _, seg := range f.Segments {
			if !seg.DepartureTime.After(now) {
				return false
			}
		}
		return true
	})
}

// ArrivesAfterDeparts drops flights containing a segment that does not
// depart strictly before it arrives.
func (s *FilterService) ArrivesAfterDeparts(flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		for _, seg := range f.Segments {
			if !seg.DepartureTime.Before(seg.ArrivalTime) {
				return false
			}
		}
		return true
	})
}

func (s *FilterService) GroundTimeOverTwoHoursTwoSegments(flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return len(f.Segments) == 2 && TotalGroundTimeMinutes(f.Segments) > twoHoursMinutes
	})
}

func (s *FilterService) GroundTimeOverTwoHours(flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return TotalGroundTimeMinutes(f.Segments) > twoHoursMinutes
	})
}

// ByDate keeps flights whose first segment departs on date (dd.MM.yyyy).
func (s *FilterService) ByDate(date string, flights []domain.Flight) ([]domain.Flight, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.filter(flights, func(f domain.Flight) bool {
		return dateOf(f.First().DepartureTime).Equal(day)
	}), nil
}

// ByDateRange keeps flights whose first segment departs between startDate
// and endDate, both inclusive.
func (s *FilterService) ByDateRange(startDate, endDate string, flights []domain.Flight) ([]domain.Flight, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	return s.filter(flights, func(f domain.Flight) bool {
		return withinDays(f.First().DepartureTime, start, end)
	}), nil
}

// FlexibleDates keeps flights whose first segment departs within days
// calendar days either side of date, bounds included.
func (s *FilterService) FlexibleDates(date string, days int, flights []domain.Flight) ([]domain.Flight, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	start, end := day.AddDate(0, 0, -days), day.AddDate(0, 0, days)
	return s.filter(flights, func(f domain.Flight) bool {
		return withinDays(f.First().DepartureTime, start, end)
	}), nil
}

// AfterNoon and BeforeNoon both exclude departures in the 12 o'clock hour.
func (s *FilterService) AfterNoon(flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return f.First().DepartureTime.Hour() > noonHour
	})
}

func (s *FilterService) BeforeNoon(flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return f.First().DepartureTime.Hour() < noonHour
	})
}

func (s *FilterService) DeparturesBeforeHour(hour int, flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return f.First().DepartureTime.Hour() <= hour
	})
}

func (s *FilterService) DeparturesAtHour(hour int, flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return f.First().DepartureTime.Hour() == hour
	})
}

// ArrivesAtHour keeps flights whose last segment lands within the given
// clock hour.
func (s *FilterService) ArrivesAtHour(hour int, flights []domain.Flight) []domain.Flight {
	return s.filter(flights, func(f domain.Flight) bool {
		return f.Last().ArrivalTime.Hour() == hour
	})
}
