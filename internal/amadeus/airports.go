package amadeus

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Airport is an origin candidate near the traveler's location.
type Airport struct {
	Code       string
	Name       string
	DistanceKM *float64
}

type airportsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
		Name     string `json:"name"`
		Distance *struct {
			Value float64 `json:"value"`
		} `json:"distance"`
	} `json:"data"`
}

// NearestAirports returns airports within radiusKM of the given point, in
// upstream relevance order. An empty slice with a nil error means the
// upstream found no airports in range.
func (c *Client) NearestAirports(ctx context.Context, lat, lon float64, radiusKM, limit int) ([]Airport, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("radius", strconv.Itoa(radiusKM))
	query.Set("page[limit]", strconv.Itoa(limit))
	query.Set("sort", "relevance")

	var raw airportsResponse
	if err := c.get(ctx, "/v1/reference-data/locations/airports", query, &raw); err != nil {
		return nil, fmt.Errorf("nearest airports: %w", err)
	}

	airports := make([]Airport, 0, len(raw.Data))
	for _, a := range raw.Data {
		if a.IataCode == "" {
			continue
		}
		ap := Airport{Code: a.IataCode, Name: a.Name}
		if ap.Name == "" {
			ap.Name = a.IataCode
		}
		if a.Distance != nil {
			v := a.Distance.Value
			ap.DistanceKM = &v
		}
		airports = append(airports, ap)
	}

	return airports, nil
}
