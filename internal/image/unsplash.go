package image

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	unsplashAPIURL  = "https://api.unsplash.com"
	unsplashTimeout = 30 * time.Second
)

// UnsplashClient implements ImageSearcher for the Unsplash API
type UnsplashClient struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	// download pings sent for used photos
	tracking sync.WaitGroup
}

type unsplashSearchResponse struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []unsplashPhoto `json:"results"`
}

type unsplashPhoto struct {
	ID          string `json:"id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Description string `json:"description"`
	AltDesc     string `json:"alt_description"`
	URLs        struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	Links struct {
		HTML             string `json:"html"`
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
	User struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
}

// NewUnsplashClient creates an Unsplash client. Unsplash has no anonymous
// access.
func NewUnsplashClient(accessKey string) (*UnsplashClient, error) {
	if accessKey == "" {
		return nil, fmt.Errorf("Unsplash access key is required (set UNSPLASH_ACCESS_KEY or images.unsplash_key)")
	}

	return &UnsplashClient{
		accessKey:  accessKey,
		baseURL:    unsplashAPIURL,
		httpClient: &http.Client{Timeout: unsplashTimeout},
		limiter:    newLimiter(50, time.Hour, 5),
	}, nil
}

// Search queries the Unsplash photo search
func (u *UnsplashClient) Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", opts.Query)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("page", strconv.Itoa(opts.Page))
	if opts.SafeSearch {
		params.Set("content_filter", "high")
	}
	if o := mapOrientation(opts.Orientation); o != "" {
		params.Set("orientation", o)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	u.authorize(req)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusForbidden:
		return nil, &RateLimitError{Provider: "unsplash", RetryAfter: 3600}
	case http.StatusUnauthorized:
		return nil, &SearchError{Provider: "unsplash", Code: "401", Message: "Invalid access key"}
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, &SearchError{
			Provider: "unsplash",
			Code:     strconv.Itoa(resp.StatusCode),
			Message:  string(body),
		}
	}

	var searchResp unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]SearchResult, 0, len(searchResp.Results))
	for _, photo := range searchResp.Results {
		description := photo.Description
		if description == "" {
			description = photo.AltDesc
		}
		results = append(results, SearchResult{
			ID:           photo.ID,
			TrackURL:     photo.Links.DownloadLocation,
			URL:          photo.URLs.Regular,
			ThumbnailURL: photo.URLs.Thumb,
			Width:        photo.Width,
			Height:       photo.Height,
			Description:  description,
			Attribution:  fmt.Sprintf("Photo by %s on Unsplash (%s)", photo.User.Name, photo.Links.HTML),
			Source:       "unsplash",
		})
	}
	return results, nil
}

// Download fetches a result URL
func (u *UnsplashClient) Download(ctx context.Context, imageURL string) (io.ReadCloser, error) {
	return httpDownload(ctx, u.httpClient, imageURL)
}

// TrackDownload tells Unsplash a photo was used, as its API terms
// require. The request runs in the background; Wait blocks until it is
// done.
func (u *UnsplashClient) TrackDownload(ctx context.Context, result *SearchResult) {
	if result.TrackURL == "" {
		return
	}

	u.tracking.Add(1)
	go func() {
		defer u.tracking.Done()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.TrackURL, nil)
		if err != nil {
			return
		}
		u.authorize(req)
		if resp, err := u.httpClient.Do(req); err == nil {
			resp.Body.Close()
		}
	}()
}

// Wait blocks until pending download pings finished
func (u *UnsplashClient) Wait() {
	u.tracking.Wait()
}

// GetAttribution returns the credit line, which Unsplash always requires
func (u *UnsplashClient) GetAttribution(result *SearchResult) string {
	return result.Attribution
}

// Name returns "unsplash"
func (u *UnsplashClient) Name() string {
	return "unsplash"
}

func (u *UnsplashClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")
}

// mapOrientation maps our orientation values to Unsplash's
func mapOrientation(orientation string) string {
	switch orientation {
	case "horizontal":
		return "landscape"
	case "vertical":
		return "portrait"
	default:
		return ""
	}
}
