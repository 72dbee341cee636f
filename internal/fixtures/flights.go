// Package fixtures builds sample itineraries for tests and for seeding a
// development database.
package fixtures

import (
	"errors"
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
)

var ErrOddTimes = errors.New("segment times must come in departure/arrival pairs")

// NewFlight builds an itinerary from departure/arrival pairs.
func NewFlight(times ...time.Time) (domain.Flight, error) {
	if len(times) == 0 || len(times)%2 != 0 {
		return domain.Flight{}, ErrOddTimes
	}
	segments := make([]domain.Segment, 0, len(times)/2)
	for i := 0; i < len(times); i += 2 {
		segments = append(segments, domain.Segment{DepartureTime: times[i], ArrivalTime: times[i+1]})
	}
	return domain.Flight{Segments: segments}, nil
}

func MustFlight(times ...time.Time) domain.Flight {
	f, err := NewFlight(times...)
	if err != nil {
		panic(err)
	}
	return f
}

// Sample returns six itineraries anchored at base:
//
//	0: single leg, two hours
//	1: two legs, one hour on the ground
//	2: single leg departed six days before base
//	3: single leg arriving before it departs
//	4: two legs, three hours on the ground
//	5: three legs, three hours on the ground in total
func Sample(base time.Time) []domain.Flight {
	return []domain.Flight{
		MustFlight(base, base.Add(2*time.Hour)),
		MustFlight(base, base.Add(2*time.Hour), base.Add(3*time.Hour), base.Add(5*time.Hour)),
		MustFlight(base.AddDate(0, 0, -6), base),
		MustFlight(base, base.Add(-6*time.Hour)),
		MustFlight(base, base.Add(2*time.Hour), base.Add(5*time.Hour), base.Add(6*time.Hour)),
		MustFlight(base, base.Add(2*time.Hour), base.Add(3*time.Hour), base.Add(4*time.Hour), base.Add(6*time.Hour), base.Add(7*time.Hour)),
	}
}
