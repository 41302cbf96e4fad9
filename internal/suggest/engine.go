package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tripscout/tripscout/internal/amadeus"
	"github.com/tripscout/tripscout/internal/catalog"
	"github.com/tripscout/tripscout/internal/geo"
)

const (
	airportRadiusKM   = 150
	fanOutConcurrency = 4
	currency          = "GBP"
)

// ErrLocationNotFound means the starting location could not be geocoded.
var ErrLocationNotFound = errors.New("starting location not found")

// ErrNoAirports means geocoding worked but no airports lie within radius.
var ErrNoAirports = errors.New("no airports found near starting location")

// FlightSearcher is the Amadeus surface the engine needs.
// Implemented by amadeus.Client.
type FlightSearcher interface {
	NearestAirports(ctx context.Context, lat, lon float64, radiusKM, limit int) ([]amadeus.Airport, error)
	FlightDestinations(ctx context.Context, q amadeus.DestinationQuery) ([]amadeus.FlightDestination, error)
}

// Geocoder resolves a free-text location to coordinates, nil on not-found.
// Implemented by geo.Geocoder and geo.CachedGeocoder.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*geo.Location, error)
}

// Engine runs the multi-origin, multi-window destination search and merges
// the results into a ranked suggestion list.
type Engine struct {
	flights FlightSearcher
	geo     Geocoder
	catalog *catalog.Catalog
	log     *slog.Logger
	now     func() time.Time
}

// NewEngine constructs an Engine.
func NewEngine(flights FlightSearcher, geocoder Geocoder, cat *catalog.Catalog, log *slog.Logger) *Engine {
	return &Engine{flights: flights, geo: geocoder, catalog: cat, log: log, now: time.Now}
}

// NewEngineWithClock constructs an Engine using a custom clock (for tests).
func NewEngineWithClock(flights FlightSearcher, geocoder Geocoder, cat *catalog.Catalog, log *slog.Logger, now func() time.Time) *Engine {
	e := NewEngine(flights, geocoder, cat, log)
	e.now = now
	return e
}

// Suggest resolves the starting location, fans the search out over every
// (origin airport, departure window) pair, and returns destinations ranked
// by best price.
func (e *Engine) Suggest(ctx context.Context, req Request) (*Response, error) {
	loc, err := e.geo.Geocode(ctx, req.StartingLocation)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", req.StartingLocation, err)
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, req.StartingLocation)
	}

	airports, err := e.flights.NearestAirports(ctx, loc.Latitude, loc.Longitude, airportRadiusKM, req.MaxOrigins)
	if err != nil {
		return nil, fmt.Errorf("finding airports near %s: %w", req.StartingLocation, err)
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAirports, req.StartingLocation)
	}

	origins := make([]OriginAirport, 0, len(airports))
	for _, a := range airports {
		origins = append(origins, OriginAirport{IataCode: a.Code, Name: a.Name, DistanceKM: a.DistanceKM})
	}
	e.log.Info("searching destinations", "location", loc.Name, "origins", len(origins))

	windows := deriveWindows(req.TravelDates, req.TripLengthNights, e.now())
	merged := e.fanOut(ctx, airports, windows, req)
	suggestions, total := e.rank(merged, req)

	e.log.Info("suggestion search complete", "found", total, "returned", len(suggestions))

	return &Response{
		OriginsUsed: origins,
		SearchCriteria: Criteria{
			StartingLocation: req.StartingLocation,
			BudgetPerPerson:  req.BudgetPerPerson,
			Travelers:        req.Travelers,
			TripLengthNights: req.TripLengthNights,
			TravelDates:      req.TravelDates,
			NonStopOnly:      req.NonStopOnly,
		},
		Destinations: suggestions,
		TotalFound:   total,
	}, nil
}

// candidate accumulates the cheapest observed price for one destination code.
type candidate struct {
	code          string
	price         float64
	origin        string
	departureDate string
	returnDate    string
}

// mergedResults is the synchronized accumulator the fan-out legs write into.
// Map membership doubles as the "price seen" sentinel, and order preserves
// first-seen insertion order so equal-price destinations sort stably.
type mergedResults struct {
	mu     sync.Mutex
	byCode map[string]*candidate
	order  []string
}

// observe applies the best-price merge rule: replace only on a strictly
// cheaper price, so the first leg seen wins exact ties.
func (m *mergedResults) observe(code string, price float64, origin, departureDate, returnDate string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cand, ok := m.byCode[code]
	if !ok {
		m.byCode[code] = &candidate{
			code:          code,
			price:         price,
			origin:        origin,
			departureDate: departureDate,
			returnDate:    returnDate,
		}
		m.order = append(m.order, code)
		return
	}

	if price < cand.price {
		cand.price = price
		cand.origin = origin
		cand.departureDate = departureDate
		cand.returnDate = returnDate
	}
}

// fanOut issues one destination search per (origin, window) pair with
// bounded parallelism. A failed leg is logged and skipped; the merge rule is
// commutative, so leg completion order does not matter.
func (e *Engine) fanOut(ctx context.Context, origins []amadeus.Airport, windows []Window, req Request) *mergedResults {
	merged := &mergedResults{byCode: make(map[string]*candidate)}

	g := new(errgroup.Group)
	g.SetLimit(fanOutConcurrency)

	for _, origin := range origins {
		for _, window := range windows {
			g.Go(func() error {
				results, err := e.flights.FlightDestinations(ctx, amadeus.DestinationQuery{
					Origin:        origin.Code,
					DepartureDate: window.DepartureDate,
					Duration:      strconv.Itoa(window.Nights),
					MaxPrice:      req.BudgetPerPerson,
					NonStop:       req.NonStopOnly,
				})
				if err != nil {
					e.log.Warn("destination search failed, skipping leg",
						"origin", origin.Code,
						"departure_date", window.DepartureDate,
						"timeout", amadeus.IsTimeout(err),
						"err", err)
					return nil
				}

				for _, d := range results {
					merged.observe(d.Code, d.Price, origin.Code, d.DepartureDate, d.ReturnDate)
				}
				return nil
			})
		}
	}

	// Legs never return errors; failures are contained above.
	_ = g.Wait()

	return merged
}

// rank enriches the merged candidates, sorts them ascending by price, and
// truncates to the result cap. The returned count is taken before truncation.
func (e *Engine) rank(merged *mergedResults, req Request) ([]Suggestion, int) {
	suggestions := make([]Suggestion, 0, len(merged.order))
	for _, code := range merged.order {
		cand := merged.byCode[code]

		s := Suggestion{
			DestinationCode: cand.code,
			BestOrigin:      cand.origin,
			PricePerPerson:  cand.price,
			TotalPrice:      cand.price * float64(req.Travelers),
			DepartureDate:   cand.departureDate,
			ReturnDate:      cand.returnDate,
			Currency:        currency,
			Reasons:         []string{reasonFor(cand.price, req.BudgetPerPerson)},
		}
		if info, ok := e.catalog.Lookup(cand.code); ok {
			s.DestinationName = info.City
			s.Country = info.Country
			s.CountryCode = info.CountryCode
		}

		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].PricePerPerson < suggestions[j].PricePerPerson
	})

	total := len(suggestions)
	if len(suggestions) > req.MaxResults {
		suggestions = suggestions[:req.MaxResults]
	}

	return suggestions, total
}

// reasonFor explains how a price relates to the budget. First match wins.
func reasonFor(price float64, budgetPerPerson int) string {
	budget := float64(budgetPerPerson)
	switch {
	case price <= budget*0.5:
		return "Great value - well under budget"
	case price <= budget*0.75:
		return "Good value"
	default:
		return "Within budget"
	}
}
