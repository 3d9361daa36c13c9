package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"atlas/internal/llm"
	"atlas/internal/search"
)

// CategorySearcher is the slice of the search service the agent needs.
type CategorySearcher interface {
	Flights(ctx context.Context, origin, destination, date, returnDate string) search.CategoryResult
	Hotels(ctx context.Context, destination, checkin, checkout string) search.CategoryResult
	Attractions(ctx context.Context, destination string) search.CategoryResult
	Restaurants(ctx context.Context, destination string) search.CategoryResult
}

// SearchAgent extracts search parameters from a trip request and gathers the
// relevant category results into one JSON bundle.
type SearchAgent struct {
	gen      llm.Generator
	searcher CategorySearcher
}

func NewSearchAgent(gen llm.Generator, searcher CategorySearcher) *SearchAgent {
	return &SearchAgent{gen: gen, searcher: searcher}
}

type searchParams struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date"`
	Checkin       string   `json:"checkin"`
	Checkout      string   `json:"checkout"`
	SearchTypes   []string `json:"search_types"`
}

// Run performs the searches for a trip request and returns the bundle as
// indented JSON. Parameter extraction degrades to attractions+restaurants with
// the raw request as destination.
func (a *SearchAgent) Run(ctx context.Context, model, request string) string {
	params := a.extractParams(ctx, model, request)

	bundle := map[string]search.CategoryResult{}
	for _, kind := range params.SearchTypes {
		switch kind {
		case "flights":
			if params.Origin != "" && params.Destination != "" {
				bundle["flights"] = a.searcher.Flights(ctx, params.Origin, params.Destination,
					orFlexible(params.DepartureDate), params.ReturnDate)
			}
		case "hotels":
			if params.Destination != "" {
				bundle["hotels"] = a.searcher.Hotels(ctx, params.Destination,
					orFlexible(params.Checkin), orFlexible(params.Checkout))
			}
		case "attractions":
			if params.Destination != "" {
				bundle["attractions"] = a.searcher.Attractions(ctx, params.Destination)
			}
		case "restaurants":
			if params.Destination != "" {
				bundle["restaurants"] = a.searcher.Restaurants(ctx, params.Destination)
			}
		}
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

func (a *SearchAgent) extractParams(ctx context.Context, model, request string) searchParams {
	prompt := fmt.Sprintf(`You are a travel search assistant. Analyze the following user request and extract search parameters.

User request: %s

Extract the following information in JSON format:
- origin: departure city/location (if mentioned)
- destination: destination city/location
- departure_date: travel start date (if mentioned)
- return_date: return date (if mentioned)
- checkin: hotel check-in date (if mentioned)
- checkout: hotel check-out date (if mentioned)
- search_types: list of what to search for (flights, hotels, attractions, restaurants)

If information is not provided, set it to null.
Return only valid JSON without markdown formatting.`, request)

	fallback := searchParams{
		Destination: request,
		SearchTypes: []string{"attractions", "restaurants"},
	}

	resp, err := a.gen.Generate(ctx, llm.Request{
		Model:  model,
		Agent:  "SearchAgent",
		Action: "extract_search_params",
		Prompt: prompt,
	})
	if err != nil {
		return fallback
	}

	var params searchParams
	if err := json.Unmarshal([]byte(llm.CleanJSON(resp.Content)), &params); err != nil {
		return fallback
	}
	return params
}

func orFlexible(v string) string {
	if v == "" {
		return "flexible"
	}
	return v
}
