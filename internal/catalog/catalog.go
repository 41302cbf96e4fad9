// Package catalog holds the static IATA code to city/country metadata used
// to enrich destination suggestions.
package catalog

import "strings"

// Info is the metadata known for one destination code.
type Info struct {
	City        string
	Country     string
	CountryCode string
}

// Catalog is an immutable, case-insensitive lookup table from IATA code to
// destination metadata.
type Catalog struct {
	entries map[string]Info
}

// New builds a Catalog from the given entries, normalizing codes to uppercase.
func New(entries map[string]Info) *Catalog {
	normalized := make(map[string]Info, len(entries))
	for code, info := range entries {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = info
	}
	return &Catalog{entries: normalized}
}

// Lookup returns the metadata for code. A miss is not an error; the
// suggestion is simply emitted without enrichment.
func (c *Catalog) Lookup(code string) (Info, bool) {
	info, ok := c.entries[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}

// Len returns the number of known destinations.
func (c *Catalog) Len() int {
	return len(c.entries)
}
