package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SearchResult is a single ranked result snippet from the search API.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// TavilyClient calls the Tavily web-search API
type TavilyClient struct {
	apiKey         string
	apiURL         string
	searchDepth    string
	includeDomains []string
	maxResults     int
	client         *http.Client
}

// NewTavilyClient creates a new TavilyClient instance
func NewTavilyClient(apiKey, apiURL, searchDepth string, includeDomains []string, maxResults int) (*TavilyClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY must be set")
	}
	if apiURL == "" {
		apiURL = "https://api.tavily.com/search"
	}

	return &TavilyClient{
		apiKey:         apiKey,
		apiURL:         apiURL,
		searchDepth:    searchDepth,
		includeDomains: includeDomains,
		maxResults:     maxResults,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Search runs a single synchronous query and returns ranked result snippets.
func (c *TavilyClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	payload := map[string]interface{}{
		"query":           query,
		"search_depth":    c.searchDepth,
		"include_domains": c.includeDomains,
		"max_results":     c.maxResults,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: "search", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Service: "search", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Service: "search",
			Err:     fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Results, nil
}
