package filter

import (
	"testing"
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTotalGroundTimeMinutes(t *testing.T) {
	tests := []struct {
		name   string
		flight domain.Flight
		want   int
	}{
		{
			name:   "no segments",
			flight: domain.Flight{},
			want:   0,
		},
		{
			name:   "single segment",
			flight: itinerary(1, "2024-01-01T10:00", "2024-01-01T12:00"),
			want:   0,
		},
		{
			name:   "two segments",
			flight: itinerary(1, "2024-01-01T10:00", "2024-01-01T12:00", "2024-01-01T13:30", "2024-01-01T15:00"),
			want:   90,
		},
		{
			name: "three gaps of 50, 40 and 35 minutes",
			flight: itinerary(1,
				"2024-01-01T08:00", "2024-01-01T09:00",
				"2024-01-01T09:50", "2024-01-01T11:00",
				"2024-01-01T11:40", "2024-01-01T12:00",
				"2024-01-01T12:35", "2024-01-01T14:00",
			),
			want: 125,
		},
		{
			name:   "layover across midnight",
			flight: itinerary(1, "2024-01-01T20:00", "2024-01-01T23:30", "2024-01-02T01:15", "2024-01-02T03:00"),
			want:   105,
		},
		{
			name:   "misordered segments go negative",
			flight: itinerary(1, "2024-01-01T10:00", "2024-01-01T12:00", "2024-01-01T11:30", "2024-01-01T13:00"),
			want:   -30,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalGroundTimeMinutes(tc.flight.Segments))
		})
	}
}

func TestTotalGroundTimeMinutes_TruncatesEachGap(t *testing.T) {
	base := at("2024-01-01T10:00")
	gap := 90 * time.Second
	segments := []domain.Segment{
		{DepartureTime: base, ArrivalTime: base.Add(time.Hour)},
		{DepartureTime: base.Add(time.Hour + gap), ArrivalTime: base.Add(2 * time.Hour)},
		{DepartureTime: base.Add(2*time.Hour + gap), ArrivalTime: base.Add(3 * time.Hour)},
	}

	// 1m30s + 1m30s counts as 1 + 1.
	assert.Equal(t, 2, TotalGroundTimeMinutes(segments))
}
