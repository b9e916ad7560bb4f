// Package location resolves human-readable place names for coordinate
// pairs using the Nominatim reverse-geocoding API. Name resolution is best
// effort: a missing name must never block location-aggregate creation, so
// the service degrades to sentinel labels instead of returning errors.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// UnknownLocation is returned when the provider cannot be reached or
	// answers with something we cannot use.
	UnknownLocation = "Unknown Location"
	// UnnamedLocation is returned when the provider answers with an address
	// that carries none of the fields we derive a label from.
	UnnamedLocation = "Unnamed Location"

	defaultBaseURL = "https://nominatim.openstreetmap.org/reverse"
	defaultTimeout = 5 * time.Second
)

// Geocoder resolves a display name for a coordinate pair. Implementations
// must not fail: on any error they return a sentinel label instead.
type Geocoder interface {
	ResolveName(ctx context.Context, lat, lon float64) string
}

// ReverseResponse is shaped for the Nominatim reverse API response.
type ReverseResponse struct {
	PlaceID     int64  `json:"place_id"`
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road         string `json:"road"`
		CityBlock    string `json:"city_block"`
		Suburb       string `json:"suburb"`
		CityDistrict string `json:"city_district"`
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Region       string `json:"region"`
		Postcode     string `json:"postcode"`
		Country      string `json:"country"`
		CountryCode  string `json:"country_code"`
	} `json:"address"`
	Error string `json:"error"`
}

// Service is an HTTP client for the Nominatim reverse endpoint.
type Service struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewService returns a Service with a bounded request timeout. A zero
// timeout falls back to the default.
func NewService(timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		userAgent:  "ecocity-traffic-prediction/1.0",
	}
}

// NewServiceWithBaseURL is like NewService but targets a custom endpoint.
// Useful for self-hosted Nominatim instances and for tests.
func NewServiceWithBaseURL(baseURL string, timeout time.Duration) *Service {
	s := NewService(timeout)
	s.baseURL = baseURL
	return s
}

// ResolveName reverse-geocodes the coordinates into a display label.
// Preference order: road, then suburb, then city/town/village. Any failure
// degrades to UnknownLocation; processing never stops on a missing name.
func (s *Service) ResolveName(ctx context.Context, lat, lon float64) string {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("accept-language", "en")

	reqURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Printf("Reverse geocode request for (%v, %v) could not be built: %v", lat, lon, err)
		return UnknownLocation
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Reverse geocode for (%v, %v) failed: %v", lat, lon, err)
		return UnknownLocation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Reverse geocode for (%v, %v) returned status %s", lat, lon, resp.Status)
		return UnknownLocation
	}

	var result ReverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Reverse geocode for (%v, %v): malformed response: %v", lat, lon, err)
		return UnknownLocation
	}
	if result.Error != "" {
		log.Printf("Reverse geocode for (%v, %v): provider error: %s", lat, lon, result.Error)
		return UnknownLocation
	}

	return labelFromAddress(result)
}

// labelFromAddress picks the most specific usable label from an address.
func labelFromAddress(r ReverseResponse) string {
	switch {
	case r.Address.Road != "":
		return r.Address.Road
	case r.Address.Suburb != "":
		return r.Address.Suburb
	case r.Address.City != "":
		return r.Address.City
	case r.Address.Town != "":
		return r.Address.Town
	case r.Address.Village != "":
		return r.Address.Village
	}
	return UnnamedLocation
}
