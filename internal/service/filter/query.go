package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
	"go.uber.org/zap"
)

const (
	NameTwoHourDuration                   = "two-hour-duration"
	NameMultiSegment                      = "multi-segment"
	NameGroundTimeAtLeast                 = "ground-time-at-least"
	NamePresentOrFuture                   = "present-or-future"
	NameArrivesAfterDeparts               = "arrives-after-departs"
	NameGroundTimeOverTwoHoursTwoSegments = "ground-time-over-two-hours-two-segments"
	NameGroundTimeOverTwoHours            = "ground-time-over-two-hours"
	NameByDate                            = "by-date"
	NameDateRange                         = "date-range"
	NameFlexibleDates                     = "flexible-dates"
	NameAfterNoon                         = "after-noon"
	NameBeforeNoon                        = "before-noon"
	NameDeparturesBeforeHour              = "departs-before-hour"
	NameDeparturesAtHour                  = "departs-at-hour"
	NameArrivesAtHour                     = "arrives-at-hour"
)

// Names lists every filter Apply understands.
var Names = []string{
	NameTwoHourDuration,
	NameMultiSegment,
	NameGroundTimeAtLeast,
	NamePresentOrFuture,
	NameArrivesAfterDeparts,
	NameGroundTimeOverTwoHoursTwoSegments,
	NameGroundTimeOverTwoHours,
	NameByDate,
	NameDateRange,
	NameFlexibleDates,
	NameAfterNoon,
	NameBeforeNoon,
	NameDeparturesBeforeHour,
	NameDeparturesAtHour,
	NameArrivesAtHour,
}

// MaxGroundTimeHours bounds ground-time-at-least so hours*60 fits in an int.
const MaxGroundTimeHours = math.MaxInt / 60

// Query parameter names, as read from a request.
const (
	ParamHours     = "hours"
	ParamDate      = "date"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamDateRange = "date_range"
)

var requiredParams = map[string][]string{
	NameGroundTimeAtLeast:    {ParamHours},
	NameByDate:               {ParamDate},
	NameDateRange:            {ParamStartDate, ParamEndDate},
	NameFlexibleDates:        {ParamDate, ParamDateRange},
	NameDeparturesBeforeHour: {ParamHours},
	NameDeparturesAtHour:     {ParamHours},
	NameArrivesAtHour:        {ParamHours},
}

// RequiredParams names the parameters the filter cannot run without. Nil
// for filters without parameters and for unknown names.
func RequiredParams(name string) []string {
	return requiredParams[name]
}

// Query selects a single filter by name together with its parameters.
// Parameters a filter does not use are ignored.
type Query struct {
	Name      string `json:"filter"`
	Hours     int    `json:"hours,omitempty"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	DateRange int    `json:"date_range,omitempty"`
}

// Validate checks the filter name and the hours parameter: a clock hour for
// the hour filters, 0..MaxGroundTimeHours for ground-time-at-least.
func (q Query) Validate() error {
	switch q.Name {
	case NameGroundTimeAtLeast:
		if q.Hours < 0 || q.Hours > MaxGroundTimeHours {
			return fmt.Errorf("%w: got %d", domain.ErrInvalidGround, q.Hours)
		}
		return nil
	case NameDeparturesBeforeHour, NameDeparturesAtHour, NameArrivesAtHour:
		if q.Hours < 0 || q.Hours > 23 {
			return fmt.Errorf("%w: got %d", domain.ErrInvalidHour, q.Hours)
		}
		return nil
	}
	for _, name := range Names {
		if q.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownFilter, q.Name)
}

// String renders the query with only the parameters its filter reads, so
// equal searches render equally.
func (q Query) String() string {
	var b strings.Builder
	b.WriteString(q.Name)
	switch q.Name {
	case NameGroundTimeAtLeast, NameDeparturesBeforeHour, NameDeparturesAtHour, NameArrivesAtHour:
		b.WriteString(" hours=" + strconv.Itoa(q.Hours))
	case NameByDate:
		b.WriteString(" date=" + q.Date)
	case NameDateRange:
		b.WriteString(" start_date=" + q.StartDate + " end_date=" + q.EndDate)
	case NameFlexibleDates:
		b.WriteString(" date=" + q.Date + " date_range=" + strconv.Itoa(q.DateRange))
	}
	return b.String()
}

// Apply runs the single filter named by q. now is only read by
// present-or-future.
func (s *FilterService) Apply(q Query, now time.Time, flights []domain.Flight) ([]domain.Flight, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var (
		result []domain.Flight
		err    error
	)
	switch q.Name {
	case NameTwoHourDuration:
		result = s.TwoHourDuration(flights)
	case NameMultiSegment:
		result = s.MultiSegment(flights)
	case NameGroundTimeAtLeast:
		result = s.GroundTimeAtLeast(q.Hours, flights)
	case NamePresentOrFuture:
		result = s.PresentOrFuture(now, flights)
	case NameArrivesAfterDeparts:
		result = s.ArrivesAfterDeparts(flights)
	case NameGroundTimeOverTwoHoursTwoSegments:
		result = s.GroundTimeOverTwoHoursTwoSegments(flights)
	case NameGroundTimeOverTwoHours:
		result = s.GroundTimeOverTwoHours(flights)
	case NameByDate:
		result, err = s.ByDate(q.Date, flights)
	case NameDateRange:
		result, err = s.ByDateRange(q.StartDate, q.EndDate, flights)
	case NameFlexibleDates:
		result, err = s.FlexibleDates(q.Date, q.DateRange, flights)
	case NameAfterNoon:
		result = s.AfterNoon(flights)
	case NameBeforeNoon:
		result = s.BeforeNoon(flights)
	case NameDeparturesBeforeHour:
		result = s.DeparturesBeforeHour(q.Hours, flights)
	case NameDeparturesAtHour:
		result = s.DeparturesAtHour(q.Hours, flights)
	case NameArrivesAtHour:
		result = s.ArrivesAtHour(q.Hours, flights)
	}
	if err != nil {
		s.log.Debug("filter rejected query", zap.String("query", q.String()), zap.Error(err))
		return nil, err
	}

	s.log.Debug("filter applied",
		zap.String("query", q.String()),
		zap.Int("input_count", len(flights)),
		zap.Int("result_count", len(result)),
	)
	return result, nil
}
