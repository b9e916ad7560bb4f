package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
)

// MeasurementRepository appends immutable congestion measurements.
type MeasurementRepository struct {
	pool *pgxpool.Pool
}

func NewMeasurementRepository(pool *pgxpool.Pool) *MeasurementRepository {
	return &MeasurementRepository{pool: pool}
}

// Append stores the measurement under a freshly generated identity and
// returns it. The measurement is never updated afterwards.
func (r *MeasurementRepository) Append(ctx context.Context, m *models.Measurement) (string, error) {
	id := uuid.NewString()

	query := `
        INSERT INTO vehicle_measurements (
            id, vehicle_num, congestion_level, suggestion,
            created_at, location_id, location_name
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.pool.Exec(ctx, query,
		id,
		m.VehicleNum,
		string(m.CongestionLevel),
		m.Suggestion,
		m.CreatedDateTime,
		m.LocationID,
		m.LocationName,
	)
	if err != nil {
		return "", fmt.Errorf("failed to append measurement: %w", err)
	}

	m.ID = id
	return id, nil
}
