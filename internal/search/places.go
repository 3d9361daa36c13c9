package search

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Places resolves attraction and restaurant lookups through the Google Places
// Text Search API, mapped into the common Result shape.
type Places struct {
	client *maps.Client
}

// NewPlaces creates a Places client with the given API key.
func NewPlaces(apiKey string) (*Places, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Places{client: client}, nil
}

// Search runs a text search near the destination. placeType narrows the API
// results (e.g. "tourist_attraction", "restaurant"); callers fall back to web
// search on error.
func (p *Places) Search(ctx context.Context, destination, query, placeType string, limit int) ([]Result, error) {
	r := &maps.TextSearchRequest{
		Query: fmt.Sprintf("%s in %s", query, destination),
	}
	if placeType != "" {
		r.Type = maps.PlaceType(placeType)
	}

	resp, err := p.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Result
	for _, item := range resp.Results {
		results = append(results, Result{
			Title:   item.Name,
			Link:    "https://www.google.com/maps/place/?q=place_id:" + item.PlaceID,
			Snippet: fmt.Sprintf("%s (rating %.1f, %d reviews)", item.FormattedAddress, item.Rating, item.UserRatingsTotal),
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}
