package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
	"github.com/Domenick1991/flightfilter/internal/kafka"
	"github.com/Domenick1991/flightfilter/internal/repository"
	"github.com/Domenick1991/flightfilter/internal/service/filter"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Import(ctx context.Context, flights []domain.Flight) ([]domain.Flight, error)
	Search(ctx context.Context, q filter.Query) ([]domain.Flight, error)
	Filter(ctx context.Context, q filter.Query, flights []domain.Flight) ([]domain.Flight, error)
	RefreshCache(ctx context.Context) (int, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type FlightService struct {
	log         *zap.Logger
	repo        repository.FlightRepository
	cache       FlightCache
	filters     *filter.FilterService
	publisher   EventPublisher
	eventsTopic string
	clock       func() time.Time
}

type FlightServiceOption func(*FlightService)

// WithClock replaces time.Now as the source of the current moment.
func WithClock(clock func() time.Time) FlightServiceOption {
	return func(s *FlightService) {
		s.clock = clock
	}
}

func WithSearchEvents(publisher EventPublisher, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.publisher = publisher
		s.eventsTopic = topic
	}
}

func NewFlightService(log *zap.Logger, repo repository.FlightRepository, cache FlightCache, filters *filter.FilterService, opts ...FlightServiceOption) *FlightService {
	if log == nil {
		log = zap.NewNop()
	}
	if filters == nil {
		filters = filter.NewFilterService(filter.WithLogger(log))
	}
	s := &FlightService{
		log:     log,
		repo:    repo,
		cache:   cache,
		filters: filters,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.log.Warn("flights cache read failed", zap.Error(err))
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn("flights cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Import stores the given itineraries and drops the cached list. The
// returned flights carry their new ids.
func (s *FlightService) Import(ctx context.Context, flights []domain.Flight) ([]domain.Flight, error) {
	if err := checkSegments(flights); err != nil {
		return nil, err
	}

	stored := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if err := s.repo.Create(ctx, &f); err != nil {
			return nil, fmt.Errorf("store itinerary %d of %d: %w", len(stored)+1, len(flights), err)
		}
		stored = append(stored, f)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("flights cache invalidation failed", zap.Error(err))
		}
	}
	s.log.Info("itineraries imported", zap.Int("count", len(stored)))
	return stored, nil
}

// Search runs one filter over the stored itineraries.
func (s *FlightService) Search(ctx context.Context, q filter.Query) ([]domain.Flight, error) {
	flights, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, "flights.Search", q, flights)
}

// Filter runs one filter over a caller-supplied list.
func (s *FlightService) Filter(ctx context.Context, q filter.Query, flights []domain.Flight) ([]domain.Flight, error) {
	if err := checkSegments(flights); err != nil {
		return nil, err
	}
	return s.apply(ctx, "flights.Filter", q, flights)
}

// RefreshCache reloads the itinerary list from storage into the cache.
func (s *FlightService) RefreshCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	flights, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetFlights(ctx, flights); err != nil {
		return 0, err
	}
	return len(flights), nil
}

func (s *FlightService) apply(ctx context.Context, op string, q filter.Query, flights []domain.Flight) ([]domain.Flight, error) {
	ctx, span := otel.Tracer("flightfilter/flights").Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("filter.name", q.Name),
		attribute.Int("filter.input_count", len(flights)),
	)

	logger := s.log.With(zap.String("op", op), zap.String("query", q.String()))

	now := s.clock()
	result, err := s.filters.Apply(q, now, flights)
	if err != nil {
		logger.Info("filter query rejected", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "filter query rejected")
		return nil, err
	}

	span.SetAttributes(attribute.Int("filter.result_count", len(result)))
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Debug("filter query executed", zap.Int("input_count", len(flights)), zap.Int("result_count", len(result)))

	s.publishSearch(ctx, q, len(flights), len(result), now)
	return result, nil
}

func (s *FlightService) publishSearch(ctx context.Context, q filter.Query, inputCount, resultCount int, executedAt time.Time) {
	if s.publisher == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.SearchEvent{
		QueryID:     uuid.NewString(),
		Filter:      q.Name,
		Query:       q.String(),
		Fingerprint: Fingerprint(q),
		InputCount:  inputCount,
		ResultCount: resultCount,
		ExecutedAt:  executedAt,
	}
	if err := s.publisher.Publish(ctx, s.eventsTopic, event.Fingerprint, event); err != nil {
		s.log.Warn("failed to publish search event", zap.String("query_id", event.QueryID), zap.Error(err))
	}
}

// Fingerprint identifies equal queries regardless of unused parameters.
func Fingerprint(q filter.Query) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(q.String()))
}

func checkSegments(flights []domain.Flight) error {
	for i, f := range flights {
		if len(f.Segments) == 0 {
			return fmt.Errorf("flight at position %d: %w", i, domain.ErrEmptyItinerary)
		}
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
