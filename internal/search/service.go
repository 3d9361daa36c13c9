package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// resultCount is how many web hits each category query asks for.
const resultCount = 10

// CategoryResult is one category's slice of a search bundle.
type CategoryResult struct {
	Type        string   `json:"type"`
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Date        string   `json:"date,omitempty"`
	ReturnDate  string   `json:"return_date,omitempty"`
	Checkin     string   `json:"checkin,omitempty"`
	Checkout    string   `json:"checkout,omitempty"`
	Results     []Result `json:"results"`
}

// Service answers category searches. Web queries go through Serper (cached when a
// cache is attached); attractions and restaurants prefer the Places API when
// available and fall back to web search.
type Service struct {
	web    WebSearcher
	places PlaceSearcher
	cache  *Cache
	log    *zap.Logger
}

// NewService wires a search service. places and cache may be nil.
func NewService(web WebSearcher, places PlaceSearcher, cache *Cache, log *zap.Logger) *Service {
	return &Service{web: web, places: places, cache: cache, log: log}
}

// searchWeb runs one cached web query. Error markers are never cached.
func (s *Service) searchWeb(ctx context.Context, query string) []Result {
	if s.cache != nil {
		if results, ok := s.cache.Get(ctx, query); ok {
			return results
		}
	}
	results := s.web.Search(ctx, query, resultCount)
	if s.cache != nil && len(results) > 0 && !hasError(results) {
		s.cache.Set(ctx, query, results)
	}
	return results
}

// Flights searches flight options between origin and destination.
func (s *Service) Flights(ctx context.Context, origin, destination, date, returnDate string) CategoryResult {
	query := fmt.Sprintf("cheapest flights from %s to %s on %s", origin, destination, date)
	if returnDate != "" {
		query += fmt.Sprintf(" return %s", returnDate)
	}
	query += " prices booking"

	return CategoryResult{
		Type:        "flights",
		Origin:      origin,
		Destination: destination,
		Date:        date,
		ReturnDate:  returnDate,
		Results:     s.searchWeb(ctx, query),
	}
}

// Hotels searches accommodation at the destination.
func (s *Service) Hotels(ctx context.Context, destination, checkin, checkout string) CategoryResult {
	query := fmt.Sprintf("best hotels in %s checkin %s checkout %s prices booking", destination, checkin, checkout)
	return CategoryResult{
		Type:        "hotels",
		Destination: destination,
		Checkin:     checkin,
		Checkout:    checkout,
		Results:     s.searchWeb(ctx, query),
	}
}

// Attractions searches things to do at the destination.
func (s *Service) Attractions(ctx context.Context, destination string) CategoryResult {
	out := CategoryResult{Type: "attractions", Destination: destination}
	if results, ok := s.searchPlaces(ctx, destination, "top tourist attractions", "tourist_attraction"); ok {
		out.Results = results
		return out
	}
	out.Results = s.searchWeb(ctx, fmt.Sprintf("top tourist attractions things to do in %s", destination))
	return out
}

// Restaurants searches places to eat at the destination.
func (s *Service) Restaurants(ctx context.Context, destination string) CategoryResult {
	out := CategoryResult{Type: "restaurants", Destination: destination}
	if results, ok := s.searchPlaces(ctx, destination, "best restaurants", "restaurant"); ok {
		out.Results = results
		return out
	}
	out.Results = s.searchWeb(ctx, fmt.Sprintf("best restaurants to eat in %s local food recommendations", destination))
	return out
}

func (s *Service) searchPlaces(ctx context.Context, destination, query, placeType string) ([]Result, bool) {
	if s.places == nil {
		return nil, false
	}
	results, err := s.places.Search(ctx, destination, query, placeType, resultCount)
	if err != nil {
		s.log.Warn("places search failed, falling back to web",
			zap.String("destination", destination), zap.String("type", placeType), zap.Error(err))
		return nil, false
	}
	if len(results) == 0 {
		return nil, false
	}
	return results, true
}
