package models

import "time"

// CongestionLevel is the severity tier derived from a vehicle count.
type CongestionLevel string

const (
	CongestionLow    CongestionLevel = "Low"
	CongestionMedium CongestionLevel = "Medium"
	CongestionHigh   CongestionLevel = "High"
)

// ImageRecord is a stored reference to a traffic-camera snapshot awaiting
// detection. Records are produced by an external ingestion path; this system
// only reads them and writes the processed marker back once a measurement
// exists.
type ImageRecord struct {
	ID string `json:"id"`
	// URL points at the snapshot, either http(s):// or s3://bucket/key.
	URL string `json:"traffic_img_url"`
	// LocationID encodes the camera coordinates as "lat_lon".
	LocationID string `json:"location_id"`
	// ProcessedMeasurementID is set exactly once, after a measurement has
	// been created for this image. A non-empty value means the record must
	// never be processed again.
	ProcessedMeasurementID string `json:"processed,omitempty"`
}

// Processed reports whether the record already carries a processed marker.
func (r ImageRecord) Processed() bool {
	return r.ProcessedMeasurementID != ""
}

// Measurement is a single congestion observation for one image. Measurements
// are immutable once created.
type Measurement struct {
	ID              string          `json:"id"`
	VehicleNum      int             `json:"vehicleNum"`
	CongestionLevel CongestionLevel `json:"congestionLevel"`
	Suggestion      string          `json:"suggestion"`
	CreatedDateTime time.Time       `json:"createdDateTime"`
	LocationID      string          `json:"location_id"`
	LocationName    string          `json:"location_name,omitempty"`
}

// LocationAggregate is the single "latest state" record per location
// identity. Its latest references always point at the most recently
// processed image and measurement for that identity.
type LocationAggregate struct {
	LocationID          string    `json:"location_id"`
	Latitude            float64   `json:"lat"`
	Longitude           float64   `json:"lon"`
	DisplayName         string    `json:"display_name"`
	UpdatedAt           time.Time `json:"updated_at"`
	LatestImageID       string    `json:"latest_image_id"`
	LatestMeasurementID string    `json:"latest_measurement_id"`
}
