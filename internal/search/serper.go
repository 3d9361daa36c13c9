package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

// Serper queries the Serper web-search API. The 30s client timeout guards against
// stalled connections; context cancellation is honoured via NewRequestWithContext.
type Serper struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewSerper returns a client for the given API key. An empty key is allowed; every
// search then degrades to an error-marker result.
func NewSerper(apiKey string) *Serper {
	return &Serper{
		apiKey:   apiKey,
		endpoint: serperEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search runs one web query and returns up to num organic results. All failure
// modes collapse into a single error-marker result.
func (s *Serper) Search(ctx context.Context, query string, num int) []Result {
	if s.apiKey == "" {
		return errorResults("SERPER_API_KEY not configured")
	}

	body, err := json.Marshal(serperRequest{Q: query, Num: num})
	if err != nil {
		return errorResults(fmt.Sprintf("Search failed: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errorResults(fmt.Sprintf("Search failed: %v", err))
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return errorResults(fmt.Sprintf("Search failed: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResults(fmt.Sprintf("Search failed: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return errorResults(fmt.Sprintf("Search failed: status %d", resp.StatusCode))
	}

	var sr serperResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return errorResults(fmt.Sprintf("Search failed: %v", err))
	}

	results := make([]Result, 0, len(sr.Organic))
	for _, item := range sr.Organic {
		results = append(results, Result{Title: item.Title, Link: item.Link, Snippet: item.Snippet})
	}
	return results
}
