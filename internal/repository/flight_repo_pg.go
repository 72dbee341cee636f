package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightfilter/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

type segmentRow struct {
	itineraryID   int64
	departureTime time.Time
	arrivalTime   time.Time
}

// List returns every itinerary ordered by id, segments in travel order.
func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT s.itinerary_id, s.departure_time, s.arrival_time
		FROM segments s
		JOIN itineraries i ON i.id = s.itinerary_id
		ORDER BY s.itinerary_id, s.position`)
	if err != nil {
		return nil, fmt.Errorf("query itineraries: %w", err)
	}
	defer rows.Close()

	var segs []segmentRow
	for rows.Next() {
		var s segmentRow
		if err := rows.Scan(&s.itineraryID, &s.departureTime, &s.arrivalTime); err != nil {
			return nil, err
		}
		segs = append(segs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupSegments(segs), nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT departure_time, arrival_time FROM segments WHERE itinerary_id=$1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query itinerary %d: %w", id, err)
	}
	defer rows.Close()

	f := domain.Flight{ID: id}
	for rows.Next() {
		var s domain.Segment
		if err := rows.Scan(&s.DepartureTime, &s.ArrivalTime); err != nil {
			return nil, err
		}
		f.Segments = append(f.Segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(f.Segments) == 0 {
		return nil, domain.ErrFlightNotFound
	}
	return &f, nil
}

// Create stores the itinerary and its segments in one transaction and sets
// flight.ID.
func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if len(flight.Segments) == 0 {
		return domain.ErrEmptyItinerary
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx, `INSERT INTO itineraries DEFAULT VALUES RETURNING id`).Scan(&id); err != nil {
		return fmt.Errorf("insert itinerary: %w", err)
	}

	batch := &pgx.Batch{}
	for i, s := range flight.Segments {
		batch.Queue(`INSERT INTO segments (itinerary_id, position, departure_time, arrival_time) VALUES ($1, $2, $3, $4)`,
			id, i, s.DepartureTime, s.ArrivalTime)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert segments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	flight.ID = id
	return nil
}

// groupSegments folds rows sorted by itinerary into flights, keeping the
// row order.
func groupSegments(rows []segmentRow) []domain.Flight {
	flights := make([]domain.Flight, 0)
	for _, row := range rows {
		seg := domain.Segment{DepartureTime: row.departureTime, ArrivalTime: row.arrivalTime}
		if n := len(flights); n > 0 && flights[n-1].ID == row.itineraryID {
			flights[n-1].Segments = append(flights[n-1].Segments, seg)
			continue
		}
		flights = append(flights, domain.Flight{ID: row.itineraryID, Segments: []domain.Segment{seg}})
	}
	return flights
}

var _ FlightRepository = (*PGFlightRepository)(nil)
