package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// Location is a geocoded point.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
}

// ukPostcodePattern matches full UK postcodes like "SW1A 1AA" or "m11aa".
var ukPostcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d[A-Z]{2}$`)

// Geocoder resolves UK postcodes via the Postcodes.io API and major UK city
// names via a built-in table.
type Geocoder struct {
	baseURL string
	client  *http.Client
}

// NewGeocoder constructs a Geocoder against the given Postcodes.io base URL.
func NewGeocoder(baseURL string) *Geocoder {
	return &Geocoder{baseURL: baseURL, client: &http.Client{Timeout: httpTimeout}}
}

// Geocode resolves a UK postcode or city name to coordinates.
// Returns nil, nil when the location is unknown.
func (g *Geocoder) Geocode(ctx context.Context, location string) (*Location, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}

	if IsUKPostcode(location) {
		return g.lookupPostcode(ctx, location)
	}

	if loc, ok := ukCities[strings.ToLower(location)]; ok {
		return &loc, nil
	}

	// Not a recognized city; try it as a postcode anyway to cover odd
	// formatting the regex misses.
	return g.lookupPostcode(ctx, location)
}

// IsUKPostcode reports whether text looks like a full UK postcode.
func IsUKPostcode(text string) bool {
	return ukPostcodePattern.MatchString(strings.TrimSpace(text))
}

// NormalizePostcode uppercases a postcode and inserts the canonical space
// before the final three characters, e.g. "sw1a1aa" -> "SW1A 1AA".
func NormalizePostcode(postcode string) string {
	clean := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	if len(clean) > 3 {
		return clean[:len(clean)-3] + " " + clean[len(clean)-3:]
	}
	return clean
}

type postcodeResponse struct {
	Status int `json:"status"`
	Result *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Region    string  `json:"region"`
	} `json:"result"`
}

func (g *Geocoder) lookupPostcode(ctx context.Context, postcode string) (*Location, error) {
	normalized := NormalizePostcode(postcode)
	endpoint := g.baseURL + "/postcodes/" + url.PathEscape(normalized)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating postcode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("postcode lookup for %s returned status %d", normalized, resp.StatusCode)
	}

	var raw postcodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding postcode response for %s: %w", normalized, err)
	}
	if raw.Status != http.StatusOK || raw.Result == nil {
		return nil, nil
	}

	return &Location{
		Latitude:  raw.Result.Latitude,
		Longitude: raw.Result.Longitude,
		Name:      normalized,
		Region:    raw.Result.Region,
	}, nil
}
