package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// SearchResult is a single candidate picture
type SearchResult struct {
	ID           string
	URL          string
	ThumbnailURL string
	Width        int
	Height       int
	Description  string
	Attribution  string
	Source       string // provider name
	TrackURL     string // pinged when the picture is used, if set
}

// SearchOptions configures a search
type SearchOptions struct {
	Query       string // English search term
	Language    string
	SafeSearch  bool
	PerPage     int
	Page        int    // 1-based
	ImageType   string // photo, illustration, vector, all
	Orientation string // horizontal, vertical, all
}

// DefaultSearchOptions returns the options used for children's example
// words: safe, illustrated, a handful of results.
func DefaultSearchOptions(query string) *SearchOptions {
	return &SearchOptions{
		Query:       query,
		Language:    "en",
		SafeSearch:  true,
		PerPage:     5,
		Page:        1,
		ImageType:   "illustration",
		Orientation: "all",
	}
}

// ImageSearcher finds and downloads pictures
type ImageSearcher interface {
	Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error)
	Download(ctx context.Context, url string) (io.ReadCloser, error)
	// GetAttribution returns the credit line to store next to the
	// picture, or "" when none is required.
	GetAttribution(result *SearchResult) string
	Name() string
}

// SearchError is a non-OK answer from a provider
type SearchError struct {
	Provider string
	Code     string
	Message  string
}

func (e *SearchError) Error() string {
	return e.Provider + ": " + e.Message
}

// RateLimitError means the provider refused the request for quota reasons
type RateLimitError struct {
	Provider   string
	RetryAfter int // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limit exceeded, retry in %ds", e.Provider, e.RetryAfter)
}

// newLimiter allows perWindow requests per window, in bursts of at most
// burst.
func newLimiter(perWindow int, window time.Duration, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(window/time.Duration(perWindow)), burst)
}

// httpDownload fetches url and returns the body of a 200 answer
func httpDownload(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
