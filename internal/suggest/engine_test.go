package suggest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripscout/tripscout/internal/amadeus"
	"github.com/tripscout/tripscout/internal/catalog"
	"github.com/tripscout/tripscout/internal/geo"
	"github.com/tripscout/tripscout/internal/suggest"
)

// ---- mock implementations ----

type mockFlights struct {
	mu              sync.Mutex
	airportsFn      func(ctx context.Context, lat, lon float64, radiusKM, limit int) ([]amadeus.Airport, error)
	destinationsFn  func(ctx context.Context, q amadeus.DestinationQuery) ([]amadeus.FlightDestination, error)
	destinationQrys []amadeus.DestinationQuery
}

func (m *mockFlights) NearestAirports(ctx context.Context, lat, lon float64, radiusKM, limit int) ([]amadeus.Airport, error) {
	return m.airportsFn(ctx, lat, lon, radiusKM, limit)
}

func (m *mockFlights) FlightDestinations(ctx context.Context, q amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
	m.mu.Lock()
	m.destinationQrys = append(m.destinationQrys, q)
	m.mu.Unlock()
	return m.destinationsFn(ctx, q)
}

func (m *mockFlights) queries() []amadeus.DestinationQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]amadeus.DestinationQuery(nil), m.destinationQrys...)
}

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, location string) (*geo.Location, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, location string) (*geo.Location, error) {
	return m.geocodeFn(ctx, location)
}

// ---- helpers ----

func lutonGeocoder() *mockGeocoder {
	return &mockGeocoder{geocodeFn: func(_ context.Context, _ string) (*geo.Location, error) {
		return &geo.Location{Latitude: 51.8787, Longitude: -0.42, Name: "Luton"}, nil
	}}
}

func singleAirport(code, name string) func(context.Context, float64, float64, int, int) ([]amadeus.Airport, error) {
	return func(_ context.Context, _, _ float64, _, _ int) ([]amadeus.Airport, error) {
		return []amadeus.Airport{{Code: code, Name: name}}, nil
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]catalog.Info{
		"BCN": {City: "Barcelona", Country: "Spain", CountryCode: "ES"},
		"MAD": {City: "Madrid", Country: "Spain", CountryCode: "ES"},
		"AMS": {City: "Amsterdam", Country: "Netherlands", CountryCode: "NL"},
	})
}

func newTestEngine(flights suggest.FlightSearcher, geocoder suggest.Geocoder) *suggest.Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC) }
	return suggest.NewEngineWithClock(flights, geocoder, testCatalog(), log, now)
}

func baseRequest() suggest.Request {
	req := suggest.Request{
		StartingLocation: "Luton",
		TravelDates:      suggest.TravelDates{Type: suggest.DateSpecific, StartDate: "2025-06-01"},
		BudgetPerPerson:  200,
	}
	req.ApplyDefaults()
	return req
}

// ---- Suggest ----

func TestSuggest_SingleOriginScenario(t *testing.T) {
	flights := &mockFlights{
		airportsFn: singleAirport("LTN", "LONDON LUTON"),
		destinationsFn: func(_ context.Context, q amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			return []amadeus.FlightDestination{
				{Code: "BCN", Price: 80, DepartureDate: "2025-06-01", ReturnDate: "2025-06-04"},
				{Code: "AMS", Price: 150, DepartureDate: "2025-06-01", ReturnDate: "2025-06-04"},
				{Code: "MAD", Price: 80, DepartureDate: "2025-06-01", ReturnDate: "2025-06-04"},
			}, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	resp, err := engine.Suggest(context.Background(), baseRequest())
	require.NoError(t, err)

	require.Len(t, resp.OriginsUsed, 1)
	assert.Equal(t, "LTN", resp.OriginsUsed[0].IataCode)
	assert.Equal(t, 3, resp.TotalFound)
	require.Len(t, resp.Destinations, 3)

	// BCN and MAD tie at 80; first-seen order is preserved, AMS comes last.
	assert.Equal(t, "BCN", resp.Destinations[0].DestinationCode)
	assert.Equal(t, "MAD", resp.Destinations[1].DestinationCode)
	assert.Equal(t, "AMS", resp.Destinations[2].DestinationCode)

	assert.Equal(t, []string{"Great value - well under budget"}, resp.Destinations[0].Reasons)
	assert.Equal(t, []string{"Great value - well under budget"}, resp.Destinations[1].Reasons)
	// 150 <= 0.75 * 200, boundary inclusive.
	assert.Equal(t, []string{"Good value"}, resp.Destinations[2].Reasons)

	assert.Equal(t, "Barcelona", resp.Destinations[0].DestinationName)
	assert.Equal(t, "ES", resp.Destinations[0].CountryCode)
	assert.Equal(t, "GBP", resp.Destinations[0].Currency)
	assert.Equal(t, 80.0, resp.Destinations[0].PricePerPerson)
	assert.Equal(t, 80.0, resp.Destinations[0].TotalPrice, "defaults to one traveler")
}

func TestSuggest_MergeKeepsCheapestAcrossOrigins(t *testing.T) {
	flights := &mockFlights{
		airportsFn: func(_ context.Context, _, _ float64, _, _ int) ([]amadeus.Airport, error) {
			return []amadeus.Airport{{Code: "LTN", Name: "LUTON"}, {Code: "STN", Name: "STANSTED"}}, nil
		},
		destinationsFn: func(_ context.Context, q amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			if q.Origin == "LTN" {
				return []amadeus.FlightDestination{{Code: "BCN", Price: 120, DepartureDate: "2025-06-01"}}, nil
			}
			return []amadeus.FlightDestination{{Code: "BCN", Price: 90, DepartureDate: "2025-06-02"}}, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	resp, err := engine.Suggest(context.Background(), baseRequest())
	require.NoError(t, err)

	require.Len(t, resp.Destinations, 1)
	got := resp.Destinations[0]
	assert.Equal(t, 90.0, got.PricePerPerson, "best price is the minimum across all legs")
	assert.Equal(t, "STN", got.BestOrigin, "provenance must follow the winning leg")
	assert.Equal(t, "2025-06-02", got.DepartureDate)
}

func TestSuggest_FailedLegIsSkipped(t *testing.T) {
	flights := &mockFlights{
		airportsFn: func(_ context.Context, _, _ float64, _, _ int) ([]amadeus.Airport, error) {
			return []amadeus.Airport{{Code: "LTN", Name: "LUTON"}, {Code: "STN", Name: "STANSTED"}}, nil
		},
		destinationsFn: func(_ context.Context, q amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			if q.Origin == "LTN" {
				return nil, &amadeus.APIError{Status: 500, Body: "boom"}
			}
			return []amadeus.FlightDestination{{Code: "AMS", Price: 150}}, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	resp, err := engine.Suggest(context.Background(), baseRequest())
	require.NoError(t, err, "a failed leg must not fail the request")

	assert.Equal(t, 1, resp.TotalFound)
	require.Len(t, resp.Destinations, 1)
	assert.Equal(t, "AMS", resp.Destinations[0].DestinationCode)
}

func TestSuggest_AllLegsFail_EmptyResponse(t *testing.T) {
	flights := &mockFlights{
		airportsFn: singleAirport("LTN", "LONDON LUTON"),
		destinationsFn: func(_ context.Context, _ amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			return nil, errors.New("timeout")
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	resp, err := engine.Suggest(context.Background(), baseRequest())
	require.NoError(t, err, "zero destinations is a valid, empty response")

	assert.Equal(t, 0, resp.TotalFound)
	assert.Empty(t, resp.Destinations)
}

func TestSuggest_SortedAndTruncated(t *testing.T) {
	flights := &mockFlights{
		airportsFn: singleAirport("LTN", "LONDON LUTON"),
		destinationsFn: func(_ context.Context, _ amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			return []amadeus.FlightDestination{
				{Code: "AMS", Price: 150},
				{Code: "BCN", Price: 80},
				{Code: "PRG", Price: 60},
				{Code: "MAD", Price: 95},
			}, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	req := baseRequest()
	req.MaxResults = 2

	resp, err := engine.Suggest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TotalFound, "total counts destinations before truncation")
	require.Len(t, resp.Destinations, 2)
	assert.Equal(t, "PRG", resp.Destinations[0].DestinationCode)
	assert.Equal(t, "BCN", resp.Destinations[1].DestinationCode)
	// PRG is not in the catalog; it still ranks, just without enrichment.
	assert.Empty(t, resp.Destinations[0].DestinationName)
	assert.Empty(t, resp.Destinations[0].Country)
}

func TestSuggest_FansOutOverOriginsAndWindows(t *testing.T) {
	flights := &mockFlights{
		airportsFn: func(_ context.Context, _, _ float64, _, _ int) ([]amadeus.Airport, error) {
			return []amadeus.Airport{{Code: "LTN"}, {Code: "STN"}}, nil
		},
		destinationsFn: func(_ context.Context, _ amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			return nil, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	req := baseRequest()
	req.TravelDates = suggest.TravelDates{
		Type:            suggest.DateFlexible,
		PreferredMonths: []string{"2026-04", "2026-05", "2026-06"},
	}
	req.NonStopOnly = true

	_, err := engine.Suggest(context.Background(), req)
	require.NoError(t, err)

	queries := flights.queries()
	assert.Len(t, queries, 6, "2 origins x 3 windows")
	for _, q := range queries {
		assert.Equal(t, 200, q.MaxPrice, "budget is passed as the upstream price ceiling")
		assert.True(t, q.NonStop, "non-stop flag must be threaded through")
		assert.Equal(t, "3", q.Duration)
	}
}

func TestSuggest_ReasonBands(t *testing.T) {
	flights := &mockFlights{
		airportsFn: singleAirport("LTN", "LONDON LUTON"),
		destinationsFn: func(_ context.Context, _ amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			return []amadeus.FlightDestination{
				{Code: "BCN", Price: 50},
				{Code: "MAD", Price: 75},
				{Code: "AMS", Price: 90},
			}, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	req := baseRequest()
	req.BudgetPerPerson = 100

	resp, err := engine.Suggest(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Destinations, 3)
	assert.Equal(t, []string{"Great value - well under budget"}, resp.Destinations[0].Reasons)
	assert.Equal(t, []string{"Good value"}, resp.Destinations[1].Reasons)
	assert.Equal(t, []string{"Within budget"}, resp.Destinations[2].Reasons)
}

func TestSuggest_TotalPriceScalesWithTravelers(t *testing.T) {
	flights := &mockFlights{
		airportsFn: singleAirport("LTN", "LONDON LUTON"),
		destinationsFn: func(_ context.Context, _ amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			return []amadeus.FlightDestination{{Code: "BCN", Price: 80}}, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	req := baseRequest()
	req.Travelers = 4

	resp, err := engine.Suggest(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Destinations, 1)
	assert.Equal(t, 80.0, resp.Destinations[0].PricePerPerson)
	assert.Equal(t, 320.0, resp.Destinations[0].TotalPrice)
}

func TestSuggest_LocationNotFound(t *testing.T) {
	geocoder := &mockGeocoder{geocodeFn: func(_ context.Context, _ string) (*geo.Location, error) {
		return nil, nil
	}}
	flights := &mockFlights{
		airportsFn: func(_ context.Context, _, _ float64, _, _ int) ([]amadeus.Airport, error) {
			t.Fatal("airport lookup should not run when geocoding fails")
			return nil, nil
		},
	}

	engine := newTestEngine(flights, geocoder)
	_, err := engine.Suggest(context.Background(), baseRequest())
	require.ErrorIs(t, err, suggest.ErrLocationNotFound)
}

func TestSuggest_NoAirportsNearby(t *testing.T) {
	flights := &mockFlights{
		airportsFn: func(_ context.Context, _, _ float64, _, _ int) ([]amadeus.Airport, error) {
			return nil, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	_, err := engine.Suggest(context.Background(), baseRequest())
	require.ErrorIs(t, err, suggest.ErrNoAirports)
}

func TestSuggest_AirportLookupAuthErrorIsFatal(t *testing.T) {
	flights := &mockFlights{
		airportsFn: func(_ context.Context, _, _ float64, _, _ int) ([]amadeus.Airport, error) {
			return nil, &amadeus.AuthError{Status: 401, Body: "invalid_client"}
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	_, err := engine.Suggest(context.Background(), baseRequest())

	var authErr *amadeus.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestSuggest_EchoesSearchCriteria(t *testing.T) {
	flights := &mockFlights{
		airportsFn: singleAirport("LTN", "LONDON LUTON"),
		destinationsFn: func(_ context.Context, _ amadeus.DestinationQuery) ([]amadeus.FlightDestination, error) {
			return nil, nil
		},
	}

	engine := newTestEngine(flights, lutonGeocoder())
	req := baseRequest()
	req.Travelers = 2
	req.NonStopOnly = true

	resp, err := engine.Suggest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Luton", resp.SearchCriteria.StartingLocation)
	assert.Equal(t, 200, resp.SearchCriteria.BudgetPerPerson)
	assert.Equal(t, 2, resp.SearchCriteria.Travelers)
	assert.Equal(t, 3, resp.SearchCriteria.TripLengthNights)
	assert.True(t, resp.SearchCriteria.NonStopOnly)
}
