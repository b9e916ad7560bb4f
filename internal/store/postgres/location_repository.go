package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
)

// LocationRepository stores per-location latest-state aggregates keyed by
// location identity. The identity is the primary key, so the table itself
// enforces at most one aggregate per identity; FindByIdentity still returns
// a slice to satisfy the store contract, which tolerates anomalous stores
// holding duplicates.
type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) FindByIdentity(ctx context.Context, locationID string) ([]models.LocationAggregate, error) {
	query := `
        SELECT location_id, lat, lon, display_name, updated_at,
               latest_image_id, latest_measurement_id
        FROM locations
        WHERE location_id = $1
    `
	rows, err := r.pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up location %s: %w", locationID, err)
	}
	defer rows.Close()

	var aggs []models.LocationAggregate
	for rows.Next() {
		var agg models.LocationAggregate
		if err := rows.Scan(
			&agg.LocationID,
			&agg.Latitude,
			&agg.Longitude,
			&agg.DisplayName,
			&agg.UpdatedAt,
			&agg.LatestImageID,
			&agg.LatestMeasurementID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location %s: %w", locationID, err)
		}
		aggs = append(aggs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read location %s: %w", locationID, err)
	}
	return aggs, nil
}

func (r *LocationRepository) Create(ctx context.Context, agg *models.LocationAggregate) error {
	query := `
        INSERT INTO locations (
            location_id, lat, lon, display_name, updated_at,
            latest_image_id, latest_measurement_id
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.pool.Exec(ctx, query,
		agg.LocationID,
		agg.Latitude,
		agg.Longitude,
		agg.DisplayName,
		agg.UpdatedAt,
		agg.LatestImageID,
		agg.LatestMeasurementID,
	)
	if err != nil {
		return fmt.Errorf("failed to create location %s: %w", agg.LocationID, err)
	}
	return nil
}

func (r *LocationRepository) UpdateLatest(ctx context.Context, locationID, imageID, measurementID string, at time.Time) error {
	query := `
        UPDATE locations
        SET latest_image_id = $2,
            latest_measurement_id = $3,
            updated_at = $4
        WHERE location_id = $1
    `
	tag, err := r.pool.Exec(ctx, query, locationID, imageID, measurementID, at)
	if err != nil {
		return fmt.Errorf("failed to update location %s: %w", locationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("location %s not found", locationID)
	}
	return nil
}
