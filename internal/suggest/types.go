package suggest

import "errors"

// DateType selects how TravelDates is interpreted.
type DateType string

const (
	DateSpecific DateType = "specific" // exact date range
	DateMonth    DateType = "month"    // any time in one month
	DateFlexible DateType = "flexible" // several candidate months
)

// TravelDates is the caller's date specification. Which fields matter
// depends on Type.
type TravelDates struct {
	Type            DateType `json:"type"`
	StartDate       string   `json:"start_date,omitempty"` // YYYY-MM-DD, for "specific"
	EndDate         string   `json:"end_date,omitempty"`   // informational only
	Month           string   `json:"month,omitempty"`      // YYYY-MM, for "month"
	PreferredMonths []string `json:"preferred_months,omitempty"`
}

// Request is a destination suggestion query.
type Request struct {
	StartingLocation string      `json:"starting_location"`
	TravelDates      TravelDates `json:"travel_dates"`
	BudgetPerPerson  int         `json:"budget_per_person"`
	Travelers        int         `json:"travelers"`
	TripLengthNights int         `json:"trip_length_nights"`
	MaxOrigins       int         `json:"max_origins"`
	MaxResults       int         `json:"max_results"`
	NonStopOnly      bool        `json:"non_stop_only"`
}

// ApplyDefaults fills zero-valued optional fields.
func (r *Request) ApplyDefaults() {
	if r.Travelers == 0 {
		r.Travelers = 1
	}
	if r.TripLengthNights == 0 {
		r.TripLengthNights = 3
	}
	if r.MaxOrigins == 0 {
		r.MaxOrigins = 4
	}
	if r.MaxResults == 0 {
		r.MaxResults = 30
	}
}

// Validate checks field ranges. Call after ApplyDefaults.
func (r *Request) Validate() error {
	switch {
	case r.StartingLocation == "":
		return errors.New("starting_location is required")
	case r.BudgetPerPerson <= 0:
		return errors.New("budget_per_person must be positive")
	case r.Travelers < 1 || r.Travelers > 20:
		return errors.New("travelers must be between 1 and 20")
	case r.TripLengthNights < 1 || r.TripLengthNights > 14:
		return errors.New("trip_length_nights must be between 1 and 14")
	case r.MaxOrigins < 1 || r.MaxOrigins > 6:
		return errors.New("max_origins must be between 1 and 6")
	case r.MaxResults < 1 || r.MaxResults > 100:
		return errors.New("max_results must be between 1 and 100")
	}
	return nil
}

// OriginAirport is one airport the search actually fanned out from.
type OriginAirport struct {
	IataCode   string   `json:"iata_code"`
	Name       string   `json:"name"`
	DistanceKM *float64 `json:"distance_km,omitempty"`
}

// Suggestion is one ranked destination in the response.
type Suggestion struct {
	DestinationCode string   `json:"destination_code"`
	DestinationName string   `json:"destination_name,omitempty"`
	Country         string   `json:"country,omitempty"`
	CountryCode     string   `json:"country_code,omitempty"`
	BestOrigin      string   `json:"best_origin"`
	PricePerPerson  float64  `json:"price_per_person"`
	TotalPrice      float64  `json:"total_price"`
	DepartureDate   string   `json:"departure_date,omitempty"`
	ReturnDate      string   `json:"return_date,omitempty"`
	Currency        string   `json:"currency"`
	Reasons         []string `json:"reasons"`
}

// Criteria echoes the effective search parameters back to the caller.
type Criteria struct {
	StartingLocation string      `json:"starting_location"`
	BudgetPerPerson  int         `json:"budget_per_person"`
	Travelers        int         `json:"travelers"`
	TripLengthNights int         `json:"trip_length_nights"`
	TravelDates      TravelDates `json:"travel_dates"`
	NonStopOnly      bool        `json:"non_stop_only"`
}

// Response is the full suggestion result.
type Response struct {
	OriginsUsed    []OriginAirport `json:"origins_used"`
	SearchCriteria Criteria        `json:"search_criteria"`
	Destinations   []Suggestion    `json:"destinations"`
	TotalFound     int             `json:"total_found"`
}
