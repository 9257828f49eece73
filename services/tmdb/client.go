// Package tmdb implements the TMDB client shared by the artwork and
// similarity services. Both need the same title resolution: run a search and
// take the first hit, no disambiguation.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelist/services/providers"
)

const (
	providerName        = "tmdb"
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w780"
)

// Client talks to the TMDB v3 API and its image CDN.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpc        *http.Client
}

// NewClient builds a TMDB client. Empty URLs and a nil http client fall back
// to production defaults.
func NewClient(apiKey, baseURL, imageBaseURL string, httpc *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(imageBaseURL) == "" {
		imageBaseURL = defaultImageBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		httpc:        httpc,
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return providers.Wrap(providerName, "build request", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return providers.Wrap(providerName, "get "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return providers.Wrap(providerName, "get "+path,
			fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body))))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return providers.Wrap(providerName, "decode "+path, err)
	}
	return nil
}

// ResolveID resolves a human title to TMDB's internal movie id. The first
// search result wins; zero results is a not-found.
func (c *Client) ResolveID(ctx context.Context, title string) (int64, error) {
	var body struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	}
	q := url.Values{}
	q.Set("query", title)
	if err := c.get(ctx, "/search/movie", q, &body); err != nil {
		return 0, err
	}
	if len(body.Results) == 0 {
		return 0, providers.NotFound(providerName, title)
	}
	return body.Results[0].ID, nil
}

// Image is one artwork entry from the images listing.
type Image struct {
	FilePath string `json:"file_path"`
}

// ImageListing groups the poster and backdrop entries for a movie, in the
// order TMDB returned them.
type ImageListing struct {
	Posters   []Image `json:"posters"`
	Backdrops []Image `json:"backdrops"`
}

// Images fetches the artwork listing for a movie id.
func (c *Client) Images(ctx context.Context, id int64) (ImageListing, error) {
	var listing ImageListing
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/images", id), nil, &listing); err != nil {
		return ImageListing{}, err
	}
	return listing, nil
}

// Similar returns the titles TMDB lists as similar to the given id, in
// provider order. An empty listing is a valid result, not an error.
func (c *Client) Similar(ctx context.Context, id int64) ([]string, error) {
	var body struct {
		Results []struct {
			Title string `json:"title"`
		} `json:"results"`
	}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/similar", id), nil, &body); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(body.Results))
	for _, r := range body.Results {
		titles = append(titles, r.Title)
	}
	return titles, nil
}

// DownloadImage retrieves the raw bytes for an artwork path from the image CDN.
func (c *Client) DownloadImage(ctx context.Context, filePath string) ([]byte, error) {
	if !strings.HasPrefix(filePath, "/") {
		filePath = "/" + filePath
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.imageBaseURL+filePath, nil)
	if err != nil {
		return nil, providers.Wrap(providerName, "build request", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, providers.Wrap(providerName, "download "+filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, providers.Wrap(providerName, "download "+filePath,
			fmt.Errorf("unexpected status %s", resp.Status))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.Wrap(providerName, "download "+filePath, err)
	}
	return data, nil
}
