package filter

import (
	"testing"

	"github.com/Domenick1991/flightfilter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr error
	}{
		{name: "known filter", query: Query{Name: NameMultiSegment}},
		{name: "unknown filter", query: Query{Name: "cheapest"}, wantErr: domain.ErrUnknownFilter},
		{name: "empty name", query: Query{}, wantErr: domain.ErrUnknownFilter},
		{name: "hour lower bound", query: Query{Name: NameDeparturesAtHour, Hours: 0}},
		{name: "hour upper bound", query: Query{Name: NameArrivesAtHour, Hours: 23}},
		{name: "hour too large", query: Query{Name: NameDeparturesBeforeHour, Hours: 24}, wantErr: domain.ErrInvalidHour},
		{name: "negative hour", query: Query{Name: NameDeparturesAtHour, Hours: -1}, wantErr: domain.ErrInvalidHour},
		{name: "ground time hours are not clock hours", query: Query{Name: NameGroundTimeAtLeast, Hours: 30}},
		{name: "ground time upper bound", query: Query{Name: NameGroundTimeAtLeast, Hours: MaxGroundTimeHours}},
		{name: "ground time overflowing minutes", query: Query{Name: NameGroundTimeAtLeast, Hours: MaxGroundTimeHours + 1}, wantErr: domain.ErrInvalidGround},
		{name: "negative ground time", query: Query{Name: NameGroundTimeAtLeast, Hours: -1}, wantErr: domain.ErrInvalidGround},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.query.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestQuery_String(t *testing.T) {
	assert.Equal(t, "by-date date=01.02.2024", Query{Name: NameByDate, Date: "01.02.2024", Hours: 5}.String())
	assert.Equal(t, "after-noon", Query{Name: NameAfterNoon, Date: "01.02.2024"}.String())
	assert.Equal(t, "flexible-dates date=01.02.2024 date_range=3", Query{Name: NameFlexibleDates, Date: "01.02.2024", DateRange: 3}.String())
	assert.Equal(t, "date-range start_date=01.02.2024 end_date=05.02.2024", Query{Name: NameDateRange, StartDate: "01.02.2024", EndDate: "05.02.2024"}.String())
	assert.Equal(t, "departs-at-hour hours=7", Query{Name: NameDeparturesAtHour, Hours: 7}.String())
}

func TestFilterService_Apply(t *testing.T) {
	service := NewFilterService(WithLogger(zap.NewNop()))
	now := at("2024-01-01T00:00")

	flights := []domain.Flight{
		itinerary(1, "2024-01-02T08:00", "2024-01-02T10:00"),
		itinerary(2, "2024-01-03T15:00", "2024-01-03T16:00", "2024-01-03T19:00", "2024-01-03T20:00"),
	}

	result, err := service.Apply(Query{Name: NameGroundTimeOverTwoHoursTwoSegments}, now, flights)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(result))

	result, err = service.Apply(Query{Name: NameByDate, Date: "02.01.2024"}, now, flights)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))

	result, err = service.Apply(Query{Name: NameArrivesAtHour, Hours: 20}, now, flights)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(result))

	result, err = service.Apply(Query{Name: NamePresentOrFuture}, at("2024-01-02T09:00"), flights)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(result))
}

func TestFilterService_Apply_Errors(t *testing.T) {
	service := NewFilterService()
	now := at("2024-01-01T00:00")
	flights := []domain.Flight{itinerary(1, "2024-01-02T08:00", "2024-01-02T10:00")}

	result, err := service.Apply(Query{Name: "by-price"}, now, flights)
	assert.ErrorIs(t, err, domain.ErrUnknownFilter)
	assert.Nil(t, result)

	result, err = service.Apply(Query{Name: NameDeparturesAtHour, Hours: 25}, now, flights)
	assert.ErrorIs(t, err, domain.ErrInvalidHour)
	assert.Nil(t, result)

	result, err = service.Apply(Query{Name: NameGroundTimeAtLeast, Hours: MaxGroundTimeHours + 1}, now, flights)
	assert.ErrorIs(t, err, domain.ErrInvalidGround)
	assert.Nil(t, result)

	result, err = service.Apply(Query{Name: NameFlexibleDates, Date: "2024/01/02", DateRange: 1}, now, flights)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Nil(t, result)
}

func TestRequiredParams(t *testing.T) {
	assert.Equal(t, []string{ParamHours}, RequiredParams(NameDeparturesAtHour))
	assert.Equal(t, []string{ParamStartDate, ParamEndDate}, RequiredParams(NameDateRange))
	assert.Equal(t, []string{ParamDate, ParamDateRange}, RequiredParams(NameFlexibleDates))
	assert.Nil(t, RequiredParams(NameAfterNoon))
	assert.Nil(t, RequiredParams("cheapest"))
}
