// Package store defines the document-store boundaries the pipeline works
// against. Production uses the postgres implementations; tests substitute
// in-memory fakes.
package store

import (
	"context"
	"time"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
)

// ImageSource lists candidate image records and writes the processed marker
// back onto a record once its measurement exists. It never deletes records.
type ImageSource interface {
	// ListCandidates returns all currently stored image records, processed
	// or not; the sweep decides per record. Listing order carries no
	// correctness guarantee.
	ListCandidates(ctx context.Context) ([]models.ImageRecord, error)

	// MarkProcessed sets the processed marker on an image record. Called
	// exactly once per successfully processed record.
	MarkProcessed(ctx context.Context, imageID, measurementID string) error
}

// MeasurementSink appends immutable measurement records and returns the
// generated identity.
type MeasurementSink interface {
	Append(ctx context.Context, m *models.Measurement) (string, error)
}

// LocationSink is the queryable collection of per-location aggregates,
// keyed by location identity.
type LocationSink interface {
	// FindByIdentity returns every aggregate stored under the identity.
	// More than one match is a data anomaly; callers update all of them.
	FindByIdentity(ctx context.Context, locationID string) ([]models.LocationAggregate, error)

	// Create persists a new aggregate.
	Create(ctx context.Context, agg *models.LocationAggregate) error

	// UpdateLatest rewrites the latest-image and latest-measurement
	// references and the update timestamp on every aggregate stored under
	// the identity.
	UpdateLatest(ctx context.Context, locationID, imageID, measurementID string, at time.Time) error
}
