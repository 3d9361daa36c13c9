// README: Search agent tests (param extraction fallback, category gating).
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"atlas/internal/search"
)

type fakeCategorySearcher struct {
	flights, hotels, attractions, restaurants int
	lastOrigin, lastDate                      string
}

func stubCategory(kind string) search.CategoryResult {
	return search.CategoryResult{
		Type:    kind,
		Results: []search.Result{{Title: kind + " result", Link: "https://example.com"}},
	}
}

func (f *fakeCategorySearcher) Flights(_ context.Context, origin, _, date, _ string) search.CategoryResult {
	f.flights++
	f.lastOrigin = origin
	f.lastDate = date
	return stubCategory("flights")
}

func (f *fakeCategorySearcher) Hotels(_ context.Context, _, _, _ string) search.CategoryResult {
	f.hotels++
	return stubCategory("hotels")
}

func (f *fakeCategorySearcher) Attractions(_ context.Context, _ string) search.CategoryResult {
	f.attractions++
	return stubCategory("attractions")
}

func (f *fakeCategorySearcher) Restaurants(_ context.Context, _ string) search.CategoryResult {
	f.restaurants++
	return stubCategory("restaurants")
}

func TestRunDispatchesRequestedCategories(t *testing.T) {
	gen := &fakeGen{content: `{"origin":"NYC","destination":"Paris","departure_date":"2026-04-10","search_types":["flights","hotels","attractions"]}`}
	cs := &fakeCategorySearcher{}
	a := NewSearchAgent(gen, cs)

	out := a.Run(context.Background(), "gpt-4o-mini", "NYC to Paris in April")

	if cs.flights != 1 || cs.hotels != 1 || cs.attractions != 1 || cs.restaurants != 0 {
		t.Fatalf("calls = %d/%d/%d/%d", cs.flights, cs.hotels, cs.attractions, cs.restaurants)
	}
	if cs.lastOrigin != "NYC" || cs.lastDate != "2026-04-10" {
		t.Errorf("flight params = %q / %q", cs.lastOrigin, cs.lastDate)
	}

	var bundle map[string]search.CategoryResult
	if err := json.Unmarshal([]byte(out), &bundle); err != nil {
		t.Fatalf("bundle is not valid JSON: %v", err)
	}
	for _, key := range []string{"flights", "hotels", "attractions"} {
		if _, ok := bundle[key]; !ok {
			t.Errorf("bundle missing %q", key)
		}
	}
}

// TestRunSkipsFlightsWithoutOrigin verifies the gating rule: flights need both
// endpoints, the other categories only a destination.
func TestRunSkipsFlightsWithoutOrigin(t *testing.T) {
	gen := &fakeGen{content: `{"destination":"Paris","search_types":["flights","hotels"]}`}
	cs := &fakeCategorySearcher{}
	a := NewSearchAgent(gen, cs)

	a.Run(context.Background(), "gpt-4o-mini", "Paris hotels and flights")

	if cs.flights != 0 {
		t.Error("flights should be skipped without an origin")
	}
	if cs.hotels != 1 {
		t.Error("hotels should still run")
	}
}

// TestRunExtractionFallback verifies a garbage extraction degrades to
// attractions+restaurants keyed on the raw request.
func TestRunExtractionFallback(t *testing.T) {
	gen := &fakeGen{err: errors.New("backend down")}
	cs := &fakeCategorySearcher{}
	a := NewSearchAgent(gen, cs)

	a.Run(context.Background(), "gpt-4o-mini", "somewhere sunny")

	if cs.attractions != 1 || cs.restaurants != 1 {
		t.Errorf("fallback calls = attractions %d, restaurants %d", cs.attractions, cs.restaurants)
	}
	if cs.flights != 0 || cs.hotels != 0 {
		t.Error("fallback must not search flights or hotels")
	}
}

func TestOrFlexible(t *testing.T) {
	if got := orFlexible(""); got != "flexible" {
		t.Errorf("orFlexible(\"\") = %q", got)
	}
	if got := orFlexible("2026-04-10"); got != "2026-04-10" {
		t.Errorf("orFlexible kept = %q", got)
	}
}
