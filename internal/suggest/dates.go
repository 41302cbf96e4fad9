package suggest

import "time"

// A request fans out over at most three departure windows.
const maxWindows = 3

// Window is one candidate departure date plus the trip length in nights.
type Window struct {
	DepartureDate string // YYYY-MM-DD
	Nights        int
}

// deriveWindows turns a date specification into the departure windows to
// search. Month-style specifications anchor at day 1 of the month; when
// nothing usable is supplied, the windows are the first day of each of the
// next three calendar months (rolling over the year boundary).
func deriveWindows(dates TravelDates, nights int, now time.Time) []Window {
	var windows []Window

	switch dates.Type {
	case DateSpecific:
		if dates.StartDate != "" {
			windows = append(windows, Window{DepartureDate: dates.StartDate, Nights: nights})
		}
	case DateMonth:
		if dates.Month != "" {
			windows = append(windows, Window{DepartureDate: dates.Month + "-01", Nights: nights})
		}
	case DateFlexible:
		months := dates.PreferredMonths
		if len(months) > maxWindows {
			months = months[:maxWindows]
		}
		for _, m := range months {
			windows = append(windows, Window{DepartureDate: m + "-01", Nights: nights})
		}
	}

	if len(windows) == 0 {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		for i := 1; i <= maxWindows; i++ {
			departure := monthStart.AddDate(0, i, 0)
			windows = append(windows, Window{DepartureDate: departure.Format("2006-01-02"), Nights: nights})
		}
	}

	return windows
}
