// Package detect wraps the external object-detection model. The pipeline
// treats the detector as a black box: it hands over decoded image bytes and
// trusts the returned label multiset as ground truth.
package detect

import "context"

// Detection is a single classified object reported by the detector.
// Confidence is carried for logging; the pipeline does not threshold on it.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Detector analyses an image and returns the objects found in it.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}

// vehicleLabels is the fixed set of detector classes counted as vehicles.
var vehicleLabels = map[string]struct{}{
	"car":        {},
	"truck":      {},
	"bus":        {},
	"motorcycle": {},
}

// CountVehicles counts the detections whose label is in the vehicle set.
func CountVehicles(detections []Detection) int {
	count := 0
	for _, d := range detections {
		if _, ok := vehicleLabels[d.Label]; ok {
			count++
		}
	}
	return count
}
