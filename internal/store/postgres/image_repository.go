package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
)

// ImageRepository reads candidate image records and writes processed
// markers. Records themselves are created by the external ingestion path.
type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

func (r *ImageRepository) ListCandidates(ctx context.Context) ([]models.ImageRecord, error) {
	query := `
        SELECT id, COALESCE(img_url, ''), COALESCE(location_id, ''), COALESCE(processed_measurement_id, '')
        FROM traffic_images
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate images: %w", err)
	}
	defer rows.Close()

	var records []models.ImageRecord
	for rows.Next() {
		var rec models.ImageRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.LocationID, &rec.ProcessedMeasurementID); err != nil {
			return nil, fmt.Errorf("failed to scan image record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidate images: %w", err)
	}
	return records, nil
}

func (r *ImageRepository) MarkProcessed(ctx context.Context, imageID, measurementID string) error {
	query := `
        UPDATE traffic_images
        SET processed_measurement_id = $2
        WHERE id = $1
    `
	tag, err := r.pool.Exec(ctx, query, imageID, measurementID)
	if err != nil {
		return fmt.Errorf("failed to mark image %s processed: %w", imageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("image %s not found", imageID)
	}
	return nil
}
