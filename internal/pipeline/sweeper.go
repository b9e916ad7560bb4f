// Package pipeline contains the idempotent processing sweep: it selects
// unprocessed candidate image records, turns detections into congestion
// measurements, links the records together and keeps per-location latest
// state up to date. Each item is processed in isolation; one bad item never
// corrupts or aborts the rest of the sweep.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/congestion"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/detect"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/fetch"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/queue"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/store"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/pkg/geo"
	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/pkg/location"
)

// EventPublisher publishes a measurement event after an item has been fully
// processed. Publishing is best effort; failures are logged, never fatal to
// the item.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.MeasurementEvent) error
}

// Sweeper runs one batch sweep over the candidate image records. All
// collaborators are injected so tests can substitute fakes. The sweep is
// strictly sequential; the read-then-write location upsert relies on that.
type Sweeper struct {
	images   store.ImageSource
	measures store.MeasurementSink
	locs     store.LocationSink
	fetcher  fetch.Fetcher
	detector detect.Detector
	geocoder location.Geocoder
	events   EventPublisher // optional, nil disables publishing
	now      func() time.Time
}

// NewSweeper wires a Sweeper from its collaborators. events may be nil.
func NewSweeper(
	images store.ImageSource,
	measures store.MeasurementSink,
	locs store.LocationSink,
	fetcher fetch.Fetcher,
	detector detect.Detector,
	geocoder location.Geocoder,
	events EventPublisher,
) *Sweeper {
	return &Sweeper{
		images:   images,
		measures: measures,
		locs:     locs,
		fetcher:  fetcher,
		detector: detector,
		geocoder: geocoder,
		events:   events,
		now:      time.Now,
	}
}

// Run processes every currently-listed candidate record once. Only a failure
// to obtain the candidate listing itself is fatal; everything after that is
// contained at the item boundary. The sweep stops early between items when
// ctx is canceled.
func (s *Sweeper) Run(ctx context.Context) (Summary, error) {
	records, err := s.images.ListCandidates(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list candidate images: %w", err)
	}

	var summary Summary
	for _, rec := range records {
		if ctx.Err() != nil {
			log.Printf("Sweep interrupted after %s", summary)
			return summary, ctx.Err()
		}

		outcome := s.processItem(ctx, rec)
		summary.add(outcome)

		switch outcome.Status {
		case StatusProcessed:
			log.Printf("Processed image %s: measurement %s", rec.ID, outcome.MeasurementID)
		case StatusSkipped:
			log.Printf("Skipped image %s: %s", rec.ID, outcome.Reason)
		case StatusFailed:
			log.Printf("Failed to process image %s: %v", rec.ID, outcome.Err)
		}
	}

	log.Printf("Sweep finished: %s", summary)
	return summary, nil
}

// processItem runs the per-item state machine. A panic anywhere in the
// collaborators is recovered into a failed outcome so the sweep survives it.
func (s *Sweeper) processItem(ctx context.Context, rec models.ImageRecord) (outcome Outcome) {
	outcome = Outcome{ImageID: rec.ID}

	defer func() {
		if r := recover(); r != nil {
			outcome.Status = StatusFailed
			outcome.Err = fmt.Errorf("panic while processing image %s: %v", rec.ID, r)
		}
	}()

	if rec.Processed() {
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonAlreadyProcessed
		return outcome
	}
	if rec.URL == "" {
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonMissingURL
		return outcome
	}
	lat, lon, err := geo.ParseIdentity(rec.LocationID)
	if err != nil {
		outcome.Status = StatusSkipped
		outcome.Reason = ReasonBadLocation
		return outcome
	}

	image, err := s.fetcher.Fetch(ctx, rec.URL)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	detections, err := s.detector.Detect(ctx, image)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	vehicleCount := detect.CountVehicles(detections)
	level, suggestion := congestion.Classify(vehicleCount)

	measurement := &models.Measurement{
		VehicleNum:      vehicleCount,
		CongestionLevel: level,
		Suggestion:      suggestion,
		CreatedDateTime: s.now(),
		LocationID:      rec.LocationID,
	}
	measurementID, err := s.measures.Append(ctx, measurement)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("failed to persist measurement: %w", err)
		return outcome
	}

	if err := s.images.MarkProcessed(ctx, rec.ID, measurementID); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("failed to mark image processed: %w", err)
		return outcome
	}

	if err := s.upsertLocation(ctx, rec, lat, lon, measurementID, measurement.CreatedDateTime); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	s.publishEvent(ctx, rec, measurementID, measurement)

	outcome.Status = StatusProcessed
	outcome.MeasurementID = measurementID
	return outcome
}

func (s *Sweeper) publishEvent(ctx context.Context, rec models.ImageRecord, measurementID string, m *models.Measurement) {
	if s.events == nil {
		return
	}
	event := queue.MeasurementEvent{
		MeasurementID:   measurementID,
		ImageID:         rec.ID,
		LocationID:      m.LocationID,
		VehicleNum:      m.VehicleNum,
		CongestionLevel: m.CongestionLevel,
		Suggestion:      m.Suggestion,
		CreatedDateTime: m.CreatedDateTime,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish measurement event for image %s: %v", rec.ID, err)
	}
}
