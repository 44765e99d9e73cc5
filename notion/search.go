package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Searcher resolves a destination page title to its URL. Implementations
// must be safe for concurrent use, note conversions may run in parallel.
type Searcher interface {
	PageURL(ctx context.Context, title string) (string, error)
}

// ErrPageNotFound is returned when no page with exactly the requested title
// exists in the destination workspace.
var ErrPageNotFound = errors.New("page not found")

const searchEndpoint = "https://api.notion.com/v1/search"

// SearchClient implements Searcher against the Notion search API.
type SearchClient struct {
	token      string
	apiVersion string
	endpoint   string
	client     *http.Client
}

// NewSearchClient creates a search client with the given integration token.
func NewSearchClient(token, apiVersion string) *SearchClient {
	return &SearchClient{
		token:      token,
		apiVersion: apiVersion,
		endpoint:   searchEndpoint,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	Query  string `json:"query"`
	Filter struct {
		Value    string `json:"value"`
		Property string `json:"property"`
	} `json:"filter"`
}

type searchResponse struct {
	Results []struct {
		URL        string `json:"url"`
		Properties struct {
			Title struct {
				Title []struct {
					PlainText string `json:"plain_text"`
				} `json:"title"`
			} `json:"title"`
		} `json:"properties"`
	} `json:"results"`
}

// PageURL queries the search API and returns the URL of the page whose title
// exactly equals the requested one. Close matches do not count,
// ErrPageNotFound is returned when nothing matches exactly.
func (c *SearchClient) PageURL(ctx context.Context, title string) (string, error) {

	reqBody := searchRequest{Query: title}
	reqBody.Filter.Value = "page"
	reqBody.Filter.Property = "object"

	payload, err := json.Marshal(&reqBody)
	if err != nil {
		return "", fmt.Errorf("unable to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("unable to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("search request failed: %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("unable to decode search response: %w", err)
	}

	for _, page := range result.Results {
		var pageTitle string
		for _, t := range page.Properties.Title.Title {
			pageTitle += t.PlainText
		}
		if pageTitle == title {
			return page.URL, nil
		}
	}
	return "", ErrPageNotFound
}
