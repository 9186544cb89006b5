// Package geo provides the Nominatim-backed implementation of the geocoder
// port. Lookups are free-text address searches; an address the service cannot
// resolve is a normal outcome, not an error.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

const (
	// DefaultBaseURL targets the public Nominatim instance. Production
	// deployments point this at a self-hosted mirror via configuration.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// userAgent identifies the service as required by the Nominatim usage
	// policy.
	userAgent = "courier-booking-service"

	requestTimeout = 10 * time.Second
)

// NominatimGeocoder implements ports.Geocoder against a Nominatim endpoint.
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewNominatimGeocoder creates a geocoder for the given base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &NominatimGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// nominatimResult is the subset of the search response the geocoder reads.
// Nominatim returns coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a free-text address to coordinates.
// Returns (nil, nil) when the service finds no match, and
// UpstreamUnavailableError when the service cannot be reached or answers
// with a non-success status.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*kernel.GeoPoint, error) {
	if address == "" {
		return nil, errs.NewValueIsRequiredError("address")
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "jsonv2")
	query.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/search?%s", g.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.NewUpstreamUnavailableError("nominatim", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewUpstreamUnavailableError(
			"nominatim", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errs.NewUpstreamUnavailableError("nominatim", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errs.NewUpstreamUnavailableError("nominatim", err)
	}

	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errs.NewUpstreamUnavailableError("nominatim", err)
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}

	return &point, nil
}
