package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
)

// upsertLocation creates or refreshes the latest-state aggregate for the
// record's location identity. This is a read-then-write upsert: the sweep
// is single-threaded, so no one can race the existence check. If the sweep
// is ever parallelised this must become a conditional create keyed by
// location identity.
func (s *Sweeper) upsertLocation(ctx context.Context, rec models.ImageRecord, lat, lon float64, measurementID string, at time.Time) error {
	matches, err := s.locs.FindByIdentity(ctx, rec.LocationID)
	if err != nil {
		return fmt.Errorf("failed to look up location %s: %w", rec.LocationID, err)
	}

	if len(matches) > 0 {
		// More than one aggregate under the same identity is a data
		// anomaly; the identity-keyed update refreshes all of them.
		if len(matches) > 1 {
			log.Printf("Data anomaly: %d aggregates for location %s, updating all", len(matches), rec.LocationID)
		}
		if err := s.locs.UpdateLatest(ctx, rec.LocationID, rec.ID, measurementID, at); err != nil {
			return fmt.Errorf("failed to update location %s: %w", rec.LocationID, err)
		}
		return nil
	}

	// First observation of this location. Name resolution is best effort
	// and degrades to a sentinel; it never blocks aggregate creation.
	name := s.geocoder.ResolveName(ctx, lat, lon)

	agg := &models.LocationAggregate{
		LocationID:          rec.LocationID,
		Latitude:            lat,
		Longitude:           lon,
		DisplayName:         name,
		UpdatedAt:           at,
		LatestImageID:       rec.ID,
		LatestMeasurementID: measurementID,
	}
	if err := s.locs.Create(ctx, agg); err != nil {
		return fmt.Errorf("failed to create location %s: %w", rec.LocationID, err)
	}
	return nil
}
