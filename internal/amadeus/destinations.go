package amadeus

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DestinationQuery holds the parameters for one Flight Inspiration search.
type DestinationQuery struct {
	Origin        string
	DepartureDate string // YYYY-MM-DD
	Duration      string // trip length in nights
	MaxPrice      int    // price ceiling in the origin currency
	NonStop       bool
}

// FlightDestination is one priced destination returned by the inspiration
// search.
type FlightDestination struct {
	Code          string
	Price         float64
	DepartureDate string
	ReturnDate    string
}

type destinationsResponse struct {
	Data []struct {
		Destination   string `json:"destination"`
		DepartureDate string `json:"departureDate"`
		ReturnDate    string `json:"returnDate"`
		Price         struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}

// FlightDestinations runs a cheapest-first destination search from one
// origin. Records without a destination code or with an unparsable price are
// malformed upstream data and are dropped silently.
func (c *Client) FlightDestinations(ctx context.Context, q DestinationQuery) ([]FlightDestination, error) {
	query := url.Values{}
	query.Set("origin", q.Origin)
	query.Set("oneWay", "false")
	query.Set("viewBy", "DESTINATION")
	if q.DepartureDate != "" {
		query.Set("departureDate", q.DepartureDate)
	}
	if q.Duration != "" {
		query.Set("duration", q.Duration)
	}
	if q.MaxPrice > 0 {
		query.Set("maxPrice", strconv.Itoa(q.MaxPrice))
	}
	if q.NonStop {
		query.Set("nonStop", "true")
	}

	var raw destinationsResponse
	if err := c.get(ctx, "/v1/shopping/flight-destinations", query, &raw); err != nil {
		return nil, fmt.Errorf("flight destinations from %s: %w", q.Origin, err)
	}

	results := make([]FlightDestination, 0, len(raw.Data))
	for _, d := range raw.Data {
		if d.Destination == "" {
			continue
		}
		price, err := strconv.ParseFloat(d.Price.Total, 64)
		if err != nil {
			continue
		}
		results = append(results, FlightDestination{
			Code:          d.Destination,
			Price:         price,
			DepartureDate: d.DepartureDate,
			ReturnDate:    d.ReturnDate,
		})
	}

	return results, nil
}
