package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// HistoryRepo implements ports.RouteHistory with pgx.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a new HistoryRepo.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record stores one route event.
func (r *HistoryRepo) Record(ctx context.Context, e *domain.RouteComputed) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO route_events (computed_at, profile, mode,
		                          origin_lon, origin_lat, destination_lon, destination_lat,
		                          distance_m, duration_s, straight_line_m)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.Time, string(e.Profile), string(e.Mode),
		e.Origin.Lon, e.Origin.Lat, e.Destination.Lon, e.Destination.Lat,
		e.DistanceMeters, e.DurationSeconds, e.StraightLineMeters)
	if err != nil {
		return fmt.Errorf("insert route event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]domain.RouteComputed, error) {
	if limit <= 0 || limit > 500 {
		limit = 20
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT computed_at, profile, mode,
		       origin_lon, origin_lat, destination_lon, destination_lat,
		       distance_m, duration_s, straight_line_m
		FROM route_events
		ORDER BY computed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query route events: %w", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RouteComputed, error) {
		var (
			e             domain.RouteComputed
			profile, mode string
		)
		err := row.Scan(
			&e.Time, &profile, &mode,
			&e.Origin.Lon, &e.Origin.Lat, &e.Destination.Lon, &e.Destination.Lat,
			&e.DistanceMeters, &e.DurationSeconds, &e.StraightLineMeters,
		)
		e.Profile = domain.Profile(profile)
		e.Mode = domain.OutputMode(mode)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan route events: %w", err)
	}
	return events, nil
}
