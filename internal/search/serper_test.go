// README: Serper client tests against a local HTTP stub.
package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSerperMissingKey(t *testing.T) {
	s := NewSerper("")
	results := s.Search(context.Background(), "hotels in Paris", 10)

	if len(results) != 1 || results[0].Err != "SERPER_API_KEY not configured" {
		t.Fatalf("results = %+v", results)
	}
}

func TestSerperParsesOrganicResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-KEY"); got != "test-key" {
			t.Errorf("X-API-KEY = %q", got)
		}
		var req serperRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Q != "hotels in Paris" || req.Num != 10 {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"organic":[
			{"title":"Hotel Lutetia","link":"https://example.com/lutetia","snippet":"Left bank classic"},
			{"title":"Le Meurice","link":"https://example.com/meurice","snippet":"Palace hotel"}
		]}`))
	}))
	defer srv.Close()

	s := NewSerper("test-key")
	s.endpoint = srv.URL
	results := s.Search(context.Background(), "hotels in Paris", 10)

	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Title != "Hotel Lutetia" || results[0].Link != "https://example.com/lutetia" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Snippet != "Palace hotel" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestSerperHTTPErrorBecomesMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSerper("test-key")
	s.endpoint = srv.URL
	results := s.Search(context.Background(), "hotels in Paris", 10)

	if len(results) != 1 || !strings.HasPrefix(results[0].Err, "Search failed:") {
		t.Fatalf("results = %+v", results)
	}
}

func TestSerperUnreachableBecomesMarker(t *testing.T) {
	s := NewSerper("test-key")
	s.endpoint = "http://127.0.0.1:1" // nothing listens here
	results := s.Search(context.Background(), "hotels in Paris", 10)

	if len(results) != 1 || !strings.HasPrefix(results[0].Err, "Search failed:") {
		t.Fatalf("results = %+v", results)
	}
}
