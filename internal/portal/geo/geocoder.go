// Package geo resolves job-site addresses to map coordinates so the
// portal can serve the job-sites map without the browser talking to
// the geocoding service directly.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoResult is returned when the service finds no match for an
// address. Callers should treat it as a cacheable answer, not a fault.
var ErrNoResult = errors.New("geo: address not found")

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

// NominatimClient geocodes against an OpenStreetMap Nominatim endpoint.
type NominatimClient struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewNominatimClient(baseURL, userAgent string) *NominatimClient {
	return &NominatimClient{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NominatimClient) Geocode(ctx context.Context, address string) (Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s",
		c.BaseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, err
	}
	req.Header.Set("Accept", "application/json")
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geo: unexpected status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, fmt.Errorf("geo: decode response: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: bad latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: bad longitude %q", results[0].Lon)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}
