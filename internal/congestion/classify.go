// Package congestion maps raw vehicle counts to a severity tier and a
// routing suggestion for drivers.
package congestion

import "github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"

const (
	mediumThreshold = 10
	highThreshold   = 25
)

// Classify reduces a non-negative vehicle count to a congestion level and
// the suggestion text shown to drivers. Thresholds are half-open with an
// inclusive lower bound: counts below 10 are Low, 10 to 24 are Medium, and
// 25 or more are High.
func Classify(vehicleCount int) (models.CongestionLevel, string) {
	switch {
	case vehicleCount < mediumThreshold:
		return models.CongestionLow, "Continue on your current lane"
	case vehicleCount < highThreshold:
		return models.CongestionMedium, "Will be congested soon, try to switch lane or route"
	default:
		return models.CongestionHigh, "Please reroute, road is congested"
	}
}
