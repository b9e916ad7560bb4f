// Package geo derives stable location identities from coordinate pairs.
// Two image records reporting the same coordinates always resolve to the
// same identity, which is what keeps location aggregates deduplicated.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// separator joins latitude and longitude in an identity key, e.g. "1.5_103.8".
const separator = "_"

// Identity returns the deterministic identity key for a coordinate pair.
func Identity(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + separator + strconv.FormatFloat(lon, 'f', -1, 64)
}

// ParseIdentity splits an identity key back into its coordinates. The key
// must be non-empty and contain exactly two numeric components. A parse
// failure is recoverable: callers skip the offending item rather than abort.
func ParseIdentity(key string) (lat, lon float64, err error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, 0, fmt.Errorf("empty location identity")
	}
	parts := strings.Split(key, separator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("location identity %q: want 2 components, got %d", key, len(parts))
	}
	lat, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("location identity %q: bad latitude: %v", key, err)
	}
	lon, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("location identity %q: bad longitude: %v", key, err)
	}
	return lat, lon, nil
}
