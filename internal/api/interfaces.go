package api

import (
	"context"

	"github.com/tripscout/tripscout/internal/suggest"
)

// SuggestionEngine defines the search operation needed by handlers.
// Implemented by suggest.Engine.
type SuggestionEngine interface {
	Suggest(ctx context.Context, req suggest.Request) (*suggest.Response, error)
}
