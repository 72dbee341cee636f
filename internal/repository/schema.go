package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS itineraries (
	id         BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMP NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS segments (
	itinerary_id   BIGINT    NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
	position       INT       NOT NULL,
	departure_time TIMESTAMP NOT NULL,
	arrival_time   TIMESTAMP NOT NULL,
	PRIMARY KEY (itinerary_id, position)
);`

// Migrate creates the itinerary tables when they are missing.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
