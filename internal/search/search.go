// README: Web + places search with category bundles and a redis result cache.
package search

import "context"

// Result is one search hit. A Result with Err set is an error marker: callers
// treat it as "no usable results", never as a failure to propagate.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Err     string `json:"error,omitempty"`
}

// errorResults wraps a message as a single-element error-marker list.
func errorResults(msg string) []Result {
	return []Result{{Err: msg}}
}

// hasError reports whether any entry is an error marker.
func hasError(results []Result) bool {
	for _, r := range results {
		if r.Err != "" {
			return true
		}
	}
	return false
}

// WebSearcher issues a free-text web query. Implementations never return an
// error; failures come back as error-marker results.
type WebSearcher interface {
	Search(ctx context.Context, query string, num int) []Result
}

// PlaceSearcher looks up places of a given type near a destination.
type PlaceSearcher interface {
	Search(ctx context.Context, destination, query, placeType string, limit int) ([]Result, error)
}
