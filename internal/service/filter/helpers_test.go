package filter

import (
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

// itinerary builds a flight from "2006-01-02T15:04" departure/arrival pairs.
func itinerary(id int64, times ...string) domain.Flight {
	f := domain.Flight{ID: id}
	for i := 0; i+1 < len(times); i += 2 {
		f.Segments = append(f.Segments, domain.Segment{DepartureTime: at(times[i]), ArrivalTime: at(times[i+1])})
	}
	return f
}

func ids(flights []domain.Flight) []int64 {
	out := make([]int64, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ID)
	}
	return out
}
