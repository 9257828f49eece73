// Package metadata fetches canonical movie metadata from the OMDb catalog.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelist/models"
	"reelist/services/providers"
)

const (
	providerName   = "omdb"
	defaultBaseURL = "https://www.omdbapi.com"
)

// Service is the OMDb client. One attempt per lookup, no retries.
type Service struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewService builds an OMDb client. baseURL and httpc default when empty.
func NewService(apiKey, baseURL string, httpc *http.Client) *Service {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Service{apiKey: apiKey, baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

type omdbResponse struct {
	Title    string `json:"Title"`
	Director string `json:"Director"`
	Year     string `json:"Year"`
	Genre    string `json:"Genre"`
	Error    string `json:"Error"`
}

// Lookup resolves a title against OMDb. The title goes out verbatim except
// that OMDb wants "+" between words. The returned fields are the provider's
// canonical ones and may differ in casing or spelling from the query.
func (s *Service) Lookup(ctx context.Context, title string) (models.MovieMetadata, error) {
	endpoint := fmt.Sprintf("%s/?t=%s&apikey=%s",
		s.baseURL, strings.ReplaceAll(title, " ", "+"), url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.MovieMetadata{}, providers.Wrap(providerName, "build request", err)
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return models.MovieMetadata{}, providers.Wrap(providerName, "lookup", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return models.MovieMetadata{}, providers.Wrap(providerName, "lookup",
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	var body omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.MovieMetadata{}, providers.Wrap(providerName, "decode response", err)
	}

	if body.Error != "" {
		log.Printf("[omdb] no match for %q: %s", title, body.Error)
		return models.MovieMetadata{}, providers.NotFound(providerName, title)
	}

	return models.MovieMetadata{
		Title:    body.Title,
		Director: body.Director,
		Year:     body.Year,
		Genre:    body.Genre,
	}, nil
}
