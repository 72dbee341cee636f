package domain

import "time"

// Segment is a single non-stop leg of an itinerary.
type Segment struct {
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// Flight is an itinerary: one or more segments in travel order.
type Flight struct {
	ID       int64     `json:"id,omitempty"`
	Segments []Segment `json:"segments"`
}

func (f Flight) IsMultiSegment() bool {
	return len(f.Segments) > 1
}

// First returns the first leg. Callers guarantee at least one segment.
func (f Flight) First() Segment {
	return f.Segments[0]
}

func (f Flight) Last() Segment {
	return f.Segments[len(f.Segments)-1]
}
